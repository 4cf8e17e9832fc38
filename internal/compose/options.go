package compose

import (
	"log/slog"

	"github.com/gogpu/rastercheck/internal/field"
	"github.com/gogpu/rastercheck/internal/parallel"
)

// Option configures a Compositor.
//
// Example:
//
//	c := compose.New(
//	    compose.WithTileSize(360, 400),
//	    compose.WithWorkers(4),
//	)
type Option func(*options)

type options struct {
	tileWidth  int
	tileHeight int
	workers    int
	rng        *field.Range
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		tileWidth:  parallel.DefaultTileWidth,
		tileHeight: parallel.DefaultTileHeight,
		logger:     slog.New(slog.DiscardHandler),
	}
}

// WithTileSize sets the nominal tile size in pixels. Non-positive sizes are
// rejected when a canvas is assembled.
func WithTileSize(width, height int) Option {
	return func(o *options) {
		o.tileWidth = width
		o.tileHeight = height
	}
}

// WithWorkers sets the number of render workers.
// Zero or negative means GOMAXPROCS; 1 renders tiles one after another.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRange pins the color range instead of resolving it from the field.
func WithRange(r field.Range) Option {
	return func(o *options) {
		o.rng = &r
	}
}

// WithLogger sets the logger for tiling diagnostics. Nil keeps the
// default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
