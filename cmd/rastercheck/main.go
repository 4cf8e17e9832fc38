// Command rastercheck renders test images, writes them to disk, validates
// them and exits 0 when every check passed and 1 otherwise.
//
// Usage:
//
//	rastercheck [flags]
//
// The output directory defaults to $RASTERCHECK_OUT, then to the current
// directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/gogpu/rastercheck"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("rastercheck", flag.ContinueOnError)
	var (
		out      = fs.String("out", envOr("RASTERCHECK_OUT", "."), "directory for written images")
		workers  = fs.Int("workers", 0, "tile render workers (0 = GOMAXPROCS)")
		tile     = fs.String("tile", "400x360", "heatmap tile size as WIDTHxHEIGHT")
		only     = fs.String("only", "", "comma-separated sections to run ("+strings.Join(rastercheck.Sections(), ",")+")")
		cmap     = fs.String("cmap", "magma", "heatmap color map ("+strings.Join(rastercheck.Colormaps(), ",")+")")
		inject   = fs.Bool("inject-failure", false, "add a constant-field fixture that must fail")
		parallel = fs.Bool("parallel", false, "run sections concurrently")
		verbose  = fs.Bool("v", false, "log diagnostics to stderr")
		debug    = fs.Bool("debug", false, "log debug diagnostics to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var tw, th int
	if _, err := fmt.Sscanf(*tile, "%dx%d", &tw, &th); err != nil || tw <= 0 || th <= 0 {
		fmt.Fprintf(os.Stderr, "rastercheck: invalid -tile %q, want WIDTHxHEIGHT\n", *tile)
		return 2
	}

	switch {
	case *debug:
		rastercheck.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	case *verbose:
		rastercheck.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum := rastercheck.Run(ctx,
		rastercheck.WithOutputDir(*out),
		rastercheck.WithWorkers(*workers),
		rastercheck.WithTileSize(tw, th),
		rastercheck.WithSections(*only),
		rastercheck.WithColormap(*cmap),
		rastercheck.WithFailureInjection(*inject),
		rastercheck.WithParallelSections(*parallel),
		rastercheck.WithOutput(os.Stdout),
	)
	return sum.ExitCode
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
