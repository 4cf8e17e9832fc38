package rastercheck

import (
	"context"
	"fmt"
	"os"

	"github.com/gogpu/rastercheck/internal/check"
	"github.com/gogpu/rastercheck/internal/colormap"
	"github.com/gogpu/rastercheck/internal/scenario"
)

// Summary is the final tally of a run: the number of checks by outcome,
// the elapsed time, the status ("PASS" or "FAIL") and the process exit
// code (0 or 1).
type Summary = check.Summary

// Sections returns the names of all sections in run order.
func Sections() []string {
	return scenario.Names()
}

// Colormaps returns the names of the available color maps.
func Colormaps() []string {
	return colormap.Names()
}

// Run executes the selected sections and returns the summary.
//
// Run always completes. Setup problems (an unknown section name, an output
// directory that cannot be created) are counted as failed checks instead
// of being returned, so the summary alone decides the exit code.
func Run(ctx context.Context, opts ...Option) Summary {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := Logger()

	cfg := scenario.Config{
		OutDir:        o.outDir,
		Workers:       o.workers,
		TileWidth:     o.tileWidth,
		TileHeight:    o.tileHeight,
		Colormap:      o.colormap,
		InjectFailure: o.inject,
		Logger:        log,
	}

	runnerOpts := []check.RunnerOption{
		check.WithOutput(o.out),
		check.WithLogger(log),
	}
	if o.parallel {
		runnerOpts = append(runnerOpts, check.WithParallel(o.workers))
	}
	runner := check.NewRunner(runnerOpts...)

	sections, err := scenario.Select(scenario.Sections(cfg), o.sections)
	if err == nil {
		err = os.MkdirAll(o.outDir, 0o755)
	}
	if err != nil {
		sections = []check.Section{setupFailure(err)}
	}
	log.Info("run started",
		"sections", len(sections),
		"out", o.outDir,
		"workers", o.workers,
		"parallel", o.parallel)

	return runner.Run(ctx, sections)
}

// setupFailure is a section that only reports err.
func setupFailure(err error) check.Section {
	return check.Section{
		Name:  "setup",
		Title: "Setup",
		Run: func(context.Context) ([]check.Result, error) {
			return nil, fmt.Errorf("cannot start: %w", err)
		},
	}
}
