// Package scenario holds the sections of a validation run. Each section
// renders something, writes it to the output directory, reads it back and
// checks the result.
package scenario

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gogpu/rastercheck/internal/check"
	"github.com/gogpu/rastercheck/internal/codec"
	"github.com/gogpu/rastercheck/internal/parallel"
	"github.com/gogpu/rastercheck/internal/pixbuf"
	"github.com/gogpu/rastercheck/internal/render"
)

// Config controls the sections.
type Config struct {
	// OutDir receives every artifact. Empty means the working directory.
	OutDir string

	// Workers is the compositor worker count; 0 means GOMAXPROCS.
	Workers int

	// TileWidth and TileHeight set the compositor tile size;
	// zero means 400x360.
	TileWidth  int
	TileHeight int

	// Colormap names the heatmap color map; empty means magma.
	Colormap string

	// TiledWidth and TiledHeight set the tiled heatmap canvas;
	// zero means 2400x1800.
	TiledWidth  int
	TiledHeight int

	// InjectFailure adds the fixture section, whose flat canvas must fail
	// the non-uniformity check.
	InjectFailure bool

	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.TileWidth <= 0 {
		c.TileWidth = parallel.DefaultTileWidth
	}
	if c.TileHeight <= 0 {
		c.TileHeight = parallel.DefaultTileHeight
	}
	if c.Colormap == "" {
		c.Colormap = "magma"
	}
	if c.TiledWidth <= 0 {
		c.TiledWidth = 2400
	}
	if c.TiledHeight <= 0 {
		c.TiledHeight = 1800
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Section names in run order.
const (
	Example   = "example"
	Static    = "static"
	Animation = "animation"
	Contour   = "contour"
	Tiled     = "tiled"
	DPI       = "dpi"
	Alpha     = "alpha"
	Metadata  = "metadata"
	Batch     = "batch"
	Fixture   = "fixture"
)

// Names returns every section name in run order, fixture included.
func Names() []string {
	return []string{Example, Static, Animation, Contour, Tiled, DPI, Alpha, Metadata, Batch, Fixture}
}

// Sections returns the sections for cfg in run order. The fixture section
// is included only when cfg.InjectFailure is set.
func Sections(cfg Config) []check.Section {
	e := &env{cfg: cfg.withDefaults()}
	e.log = e.cfg.Logger

	sections := []check.Section{
		{Name: Example, Title: "Line plot PNG/JPEG", Run: collect(e.example)},
		{Name: Static, Title: "Static PNG/JPEG", Run: collect(e.static)},
		{Name: Animation, Title: "Animated GIF", Run: collect(e.animation)},
		{Name: Contour, Title: "Contour", Run: collect(e.contour)},
		{Name: Tiled, Title: "Tiled large heatmap", Run: collect(e.tiled)},
		{Name: DPI, Title: "DPI & pixel size validation", Run: collect(e.dpi)},
		{Name: Alpha, Title: "Alpha overlay & safe JPEG", Run: collect(e.alpha)},
		{Name: Metadata, Title: "PNG text metadata", Run: collect(e.metadata)},
		{Name: Batch, Title: "Small multi-DPI batch", Run: collect(e.batch)},
	}
	if e.cfg.InjectFailure {
		sections = append(sections, check.Section{
			Name:  Fixture,
			Title: "Constant field fixture",
			Run:   collect(e.fixture),
		})
	}
	return sections
}

// Select keeps the sections named in names, in run order. An empty list
// keeps everything. Unknown names are an error.
func Select(sections []check.Section, names []string) ([]check.Section, error) {
	if len(names) == 0 {
		return sections, nil
	}

	var unknown []string
	for _, n := range names {
		if !slices.Contains(Names(), n) {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("scenario: unknown sections %s (known: %s)",
			strings.Join(unknown, ", "), strings.Join(Names(), ", "))
	}

	out := make([]check.Section, 0, len(names))
	for _, s := range sections {
		if slices.Contains(names, s.Name) {
			out = append(out, s)
		}
	}
	return out, nil
}

var (
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	royalBlue = color.NRGBA{R: 65, G: 105, B: 225, A: 255}
	steelBlue = color.NRGBA{R: 70, G: 130, B: 180, A: 255}
	teal      = color.NRGBA{R: 0, G: 128, B: 128, A: 255}
	crimson   = color.NRGBA{R: 220, G: 20, B: 60, A: 255}
)

// env is the state shared by the sections of one run.
type env struct {
	cfg Config
	log *slog.Logger
}

func (e *env) path(name string) string {
	return filepath.Join(e.cfg.OutDir, name)
}

// results collects the outcome of a section.
type results []check.Result

func (r *results) add(res check.Result) check.Result {
	*r = append(*r, res)
	return res
}

// write stores buf and records the outcome. It reports whether the file
// was written, so callers can stop before reading it back.
func (e *env) write(rs *results, label, name string, buf *pixbuf.Buffer, f codec.Format, opts ...codec.WriteOption) bool {
	path := e.path(name)
	n, err := codec.Write(path, buf, f, opts...)
	return rs.add(check.Written(label, path, n, err)).Status == check.StatusOK
}

// renderRGBA renders s at fs and reorders the alpha-first pixels to RGBA.
func renderRGBA(s render.Surface, fs render.FigureSize) (*pixbuf.Buffer, error) {
	argb, err := render.Render(s, fs)
	if err != nil {
		return nil, err
	}
	return pixbuf.ARGBToRGBA(argb)
}

// flattenedJPEG flattens buf onto white, writes it as JPEG and checks that
// the file reads back as RGB. The flattened buffer is returned.
func (e *env) flattenedJPEG(rs *results, label, name string, buf *pixbuf.Buffer, quality int, nonUniform bool) (*pixbuf.Buffer, error) {
	flat, err := pixbuf.Flatten(buf, white)
	if err != nil {
		return nil, err
	}
	if !e.write(rs, label+" JPEG", name, flat, codec.JPEG, codec.WithQuality(quality)) {
		return flat, nil
	}

	jpg, err := codec.Read(e.path(name))
	if err != nil {
		return flat, err
	}
	if rs.add(check.ChannelCount(label+" JPEG", jpg, 3)).Status == check.StatusOK && nonUniform {
		rs.add(check.NonUniformity(label+" JPEG", jpg))
	}
	return flat, nil
}

// collect adapts a section body to check.SectionFunc. Results recorded
// before an error are kept.
func collect(fn func(ctx context.Context, rs *results) error) check.SectionFunc {
	return func(ctx context.Context) ([]check.Result, error) {
		var rs results
		err := fn(ctx, &rs)
		return rs, err
	}
}
