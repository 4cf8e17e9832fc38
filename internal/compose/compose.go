// Package compose assembles a canvas from independently rendered tiles.
//
// The canvas is cut into a parallel.TileGrid. Each tile is rendered on a
// worker, converted to RGBA and pasted at its grid offset. Tiles are disjoint,
// so workers write into the shared canvas without locking, and the result
// does not depend on the order in which tiles finish.
//
// For field heatmaps the color range is resolved over the whole field before
// any tile starts. Every tile therefore maps equal values to equal colors and
// the seams between tiles are invisible.
package compose

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/rastercheck/internal/colormap"
	"github.com/gogpu/rastercheck/internal/field"
	"github.com/gogpu/rastercheck/internal/parallel"
	"github.com/gogpu/rastercheck/internal/pixbuf"
	"github.com/gogpu/rastercheck/internal/render"
)

// TileFunc renders one tile and returns it in RGBA8 at the tile's size.
type TileFunc func(t parallel.Tile) (*pixbuf.Buffer, error)

// Compositor renders canvases tile by tile.
//
// A Compositor holds configuration only and is safe for concurrent use;
// every call creates its own grid, canvas and worker pool.
type Compositor struct {
	opts options
}

// New creates a Compositor.
func New(opts ...Option) *Compositor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Compositor{opts: o}
}

// TileSize returns the nominal tile size as (width, height).
func (c *Compositor) TileSize() (int, int) {
	return c.opts.tileWidth, c.opts.tileHeight
}

// Plan returns the tile grid used for a width x height canvas.
func (c *Compositor) Plan(width, height int) (*parallel.TileGrid, error) {
	return parallel.NewTileGrid(width, height, c.opts.tileWidth, c.opts.tileHeight)
}

// Assemble allocates a width x height RGBA8 canvas and fills it by calling fn
// once per tile.
//
// Tile failures do not stop the other tiles; all of them are returned joined.
// A panic inside fn is reported as that tile's error. If ctx is canceled,
// tiles that have not started are skipped and ctx.Err() is returned.
func (c *Compositor) Assemble(ctx context.Context, width, height int, fn TileFunc) (*pixbuf.Buffer, error) {
	grid, err := c.Plan(width, height)
	if err != nil {
		return nil, err
	}
	canvas, err := pixbuf.New(width, height, pixbuf.FormatRGBA8)
	if err != nil {
		return nil, err
	}

	log := c.opts.logger
	log.Debug("compose: tiling plan",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("rows", grid.Rows()),
		slog.Int("cols", grid.Cols()),
		slog.Int("tiles", grid.TileCount()))

	pool := parallel.NewWorkerPool(c.opts.workers)
	defer pool.Close()

	// One slot per tile; each worker writes only its own slots.
	errs := make([]error, grid.TileCount())
	took := make([]time.Duration, grid.TileCount())

	work := make([]func(), 0, grid.TileCount())
	grid.ForEach(func(t parallel.Tile) {
		work = append(work, func() {
			if ctx.Err() != nil {
				return
			}
			start := time.Now()
			errs[t.Index] = c.renderTile(canvas, t, fn)
			took[t.Index] = time.Since(start)
		})
	})

	start := time.Now()
	pool.ExecuteAll(work)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if log.Enabled(ctx, slog.LevelDebug) {
		for row := range grid.Rows() {
			var sum time.Duration
			for col := range grid.Cols() {
				sum += took[row*grid.Cols()+col]
			}
			log.Debug("compose: row rendered", slog.Int("row", row), slog.Duration("render", sum))
		}
	}
	log.Info("compose: canvas assembled",
		slog.String("canvas", canvas.String()),
		slog.Int("tiles", grid.TileCount()),
		slog.Int("workers", pool.Workers()),
		slog.Duration("elapsed", time.Since(start)))

	return canvas, nil
}

// renderTile renders t and pastes it into canvas.
func (c *Compositor) renderTile(canvas *pixbuf.Buffer, t parallel.Tile, fn TileFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compose: %s: panic: %v", t, r)
		}
	}()

	buf, err := fn(t)
	if err != nil {
		return fmt.Errorf("compose: %s: %w", t, err)
	}
	if buf.Width() != t.Width || buf.Height() != t.Height {
		return fmt.Errorf("compose: %s: %w: got %dx%d",
			t, render.ErrRenderSizeMismatch, buf.Width(), buf.Height())
	}
	if err := canvas.Paste(buf, t.ColOffset, t.RowOffset); err != nil {
		return fmt.Errorf("compose: %s: %w", t, err)
	}
	return nil
}

// Compose renders f through m into an RGBA8 canvas of the field's size, one
// sample per pixel.
//
// The color range is the one set with WithRange, or the range of the whole
// field. It is fixed before the first tile renders.
func (c *Compositor) Compose(ctx context.Context, f *field.Field, m *colormap.Map) (*pixbuf.Buffer, error) {
	if f == nil || m == nil {
		return nil, errors.New("compose: nil field or color map")
	}

	rng := field.ResolveRange(f)
	if c.opts.rng != nil {
		rng = *c.opts.rng
	}
	c.opts.logger.Debug("compose: color range",
		slog.String("range", rng.String()),
		slog.Bool("degenerate", rng.Degenerate()),
		slog.String("cmap", m.Name()))

	return c.Assemble(ctx, f.Width(), f.Height(), HeatmapTiles(f, rng, m))
}

// HeatmapTiles returns a TileFunc that renders the tile's window of f with
// the shared range rng and reorders the alpha-first result to RGBA.
func HeatmapTiles(f *field.Field, rng field.Range, m *colormap.Map) TileFunc {
	return func(t parallel.Tile) (*pixbuf.Buffer, error) {
		hm, err := render.NewHeatmap(f, t.Rect(), rng, m)
		if err != nil {
			return nil, err
		}
		argb, err := render.RenderTile(hm, t.Width, t.Height)
		if err != nil {
			return nil, err
		}
		return pixbuf.ARGBToRGBA(argb)
	}
}
