package rastercheck

import (
	"io"
	"strings"
)

// Option configures a Run.
// Use functional options to customize what is run and where output goes.
//
// Example:
//
//	// Everything, artifacts in the working directory, no output
//	sum := rastercheck.Run(ctx)
//
//	// Only the heatmap, on 8 workers, printed to stdout
//	sum := rastercheck.Run(ctx,
//	    rastercheck.WithSections("tiled"),
//	    rastercheck.WithWorkers(8),
//	    rastercheck.WithOutput(os.Stdout),
//	)
type Option func(*runOptions)

// runOptions holds the configuration of one Run.
type runOptions struct {
	outDir     string
	workers    int
	tileWidth  int
	tileHeight int
	sections   []string
	out        io.Writer
	colormap   string
	inject     bool
	parallel   bool
}

// defaultOptions returns the default run options.
func defaultOptions() runOptions {
	return runOptions{
		outDir: ".",
		out:    io.Discard,
	}
}

// WithOutputDir sets the directory that receives the written images.
// It is created if missing.
func WithOutputDir(dir string) Option {
	return func(o *runOptions) {
		if dir != "" {
			o.outDir = dir
		}
	}
}

// WithWorkers sets the number of tile render workers. Zero or negative
// means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *runOptions) {
		o.workers = n
	}
}

// WithTileSize sets the nominal tile size of the heatmap compositor.
func WithTileSize(width, height int) Option {
	return func(o *runOptions) {
		o.tileWidth = width
		o.tileHeight = height
	}
}

// WithSections restricts the run to the named sections, kept in run
// order. Names may also be given comma-separated.
//
// Example:
//
//	rastercheck.Run(ctx, rastercheck.WithSections("tiled,alpha"))
func WithSections(names ...string) Option {
	return func(o *runOptions) {
		for _, n := range names {
			for _, part := range strings.Split(n, ",") {
				if part = strings.TrimSpace(part); part != "" {
					o.sections = append(o.sections, part)
				}
			}
		}
	}
}

// WithOutput sets where the result lines and the summary are printed.
func WithOutput(w io.Writer) Option {
	return func(o *runOptions) {
		if w != nil {
			o.out = w
		}
	}
}

// WithColormap sets the color map of the tiled heatmap. See Colormaps.
func WithColormap(name string) Option {
	return func(o *runOptions) {
		o.colormap = name
	}
}

// WithFailureInjection adds a constant-field fixture whose flat canvas
// fails the non-uniformity check, so the run must exit with code 1.
func WithFailureInjection(enabled bool) Option {
	return func(o *runOptions) {
		o.inject = enabled
	}
}

// WithParallelSections runs sections concurrently. Output stays in section
// order.
func WithParallelSections(enabled bool) Option {
	return func(o *runOptions) {
		o.parallel = enabled
	}
}
