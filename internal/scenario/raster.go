package scenario

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/gogpu/rastercheck/internal/check"
	"github.com/gogpu/rastercheck/internal/codec"
	"github.com/gogpu/rastercheck/internal/colormap"
	"github.com/gogpu/rastercheck/internal/compose"
	"github.com/gogpu/rastercheck/internal/field"
	"github.com/gogpu/rastercheck/internal/pixbuf"
)

// TiledDomain is the coordinate rectangle of the tiled heatmap field.
var TiledDomain = field.Domain{XMin: -5, XMax: 5, YMin: -3.5, YMax: 3.5}

func (e *env) compositor() *compose.Compositor {
	return compose.New(
		compose.WithTileSize(e.cfg.TileWidth, e.cfg.TileHeight),
		compose.WithWorkers(e.cfg.Workers),
		compose.WithLogger(e.log),
	)
}

func (e *env) tiled(ctx context.Context, rs *results) error {
	w, h := e.cfg.TiledWidth, e.cfg.TiledHeight
	f, err := field.Sample(TiledDomain, h, w, field.SincRadial)
	if err != nil {
		return err
	}
	rng := field.ResolveRange(f)
	e.log.Info("field sampled",
		slog.Int("width", w),
		slog.Int("height", h),
		slog.String("range", rng.String()))

	m, err := colormap.Lookup(e.cfg.Colormap)
	if err != nil {
		return err
	}

	c := e.compositor()
	if grid, err := c.Plan(w, h); err == nil {
		tw, th := grid.TileSize()
		e.log.Info("tiling plan",
			slog.Int("rows", grid.Rows()),
			slog.Int("cols", grid.Cols()),
			slog.Int("tile_width", tw),
			slog.Int("tile_height", th))
	}

	canvas, err := c.Compose(ctx, f, m)
	if err != nil {
		return err
	}
	if !e.write(rs, "tiled PNG", "tiled.png", canvas, codec.PNG) {
		return nil
	}

	// Resize first, then flatten the thumbnail once at its final size.
	thumb, err := pixbuf.Resize(canvas, max(w/6, 1), max(h/6, 1))
	if err != nil {
		return err
	}
	flat, err := pixbuf.Flatten(thumb, white)
	if err != nil {
		return err
	}
	thumbOK := e.write(rs, "thumbnail JPEG", "tiled_thumb.jpg", flat, codec.JPEG, codec.WithQuality(88))

	png, err := codec.Read(e.path("tiled.png"))
	if err != nil {
		return err
	}
	rs.add(check.NonUniformity("tiled PNG", png))

	if !thumbOK {
		return nil
	}
	jpg, err := codec.Read(e.path("tiled_thumb.jpg"))
	if err != nil {
		return err
	}
	if rs.add(check.ChannelCount("thumbnail JPEG", jpg, 3)).Status == check.StatusOK {
		rs.add(check.NonUniformity("thumbnail JPEG", jpg))
	}
	return nil
}

// AlphaOverlay returns a width x height RGBA image: a horizontal gradient
// that is fully transparent except for a centered circle of alpha 160.
func AlphaOverlay(width, height int) (*pixbuf.Buffer, error) {
	buf, err := pixbuf.New(width, height, pixbuf.FormatRGBA8)
	if err != nil {
		return nil, err
	}

	cx, cy := width/2, height/2
	r := min(width, height) / 3
	for y := range height {
		for x := range width {
			g := byte(0)
			if width > 1 {
				g = byte(255 * x / (width - 1))
			}
			var a byte
			if dx, dy := x-cx, y-cy; dx*dx+dy*dy <= r*r {
				a = 160
			}
			_ = buf.SetPixel(x, y, g, 255-g, 128, a)
		}
	}
	return buf, nil
}

func (e *env) alpha(_ context.Context, rs *results) error {
	src, err := AlphaOverlay(360, 240)
	if err != nil {
		return err
	}
	if !e.write(rs, "RGBA PNG", "alpha.png", src, codec.PNG) {
		return nil
	}

	arr, err := codec.Read(e.path("alpha.png"))
	if err != nil {
		return err
	}
	rs.add(check.Expect(arr.Channels() == 4, check.StatusWarn,
		"RGBA PNG loaded with %d channels (%s)", arr.Channels(), arr.Format()))

	flat, err := e.flattenedJPEG(rs, "alpha", "alpha.jpg", arr, 92, false)
	if err != nil {
		return err
	}
	if flat != nil {
		rs.add(check.NonUniformity("flattened RGB", flat))
	}
	return nil
}

func (e *env) metadata(_ context.Context, rs *results) error {
	img, err := pixbuf.New(140, 100, pixbuf.FormatRGB8)
	if err != nil {
		return err
	}
	if err := img.Fill(10, 20, 30); err != nil {
		return err
	}

	text := map[string]string{
		"Author":      "rastercheck",
		"Description": "PNG metadata demo",
	}
	if !e.write(rs, "metadata PNG", "meta.png", img, codec.PNG, codec.WithText(text)) {
		return nil
	}

	got, err := codec.ReadText(e.path("meta.png"))
	if err != nil {
		return err
	}
	keys := slices.Sorted(maps.Keys(got))
	e.log.Info("PNG text keys", slog.Any("keys", keys))

	_, author := got["Author"]
	_, desc := got["Description"]
	if author && desc {
		rs.add(check.OK("PNG text metadata keys present"))
	} else {
		rs.add(check.Warn("PNG text metadata keys missing on readback (found %v)", keys))
	}
	return nil
}

// fixture composes a constant field. Its canvas is flat by construction,
// so the non-uniformity check must fail.
func (e *env) fixture(ctx context.Context, rs *results) error {
	f, err := field.Sample(TiledDomain, 120, 160, field.Constant(5))
	if err != nil {
		return err
	}
	m, err := colormap.Lookup(e.cfg.Colormap)
	if err != nil {
		return err
	}

	canvas, err := e.compositor().Compose(ctx, f, m)
	if err != nil {
		return err
	}
	rs.add(check.NonUniformity("constant-field canvas", canvas))
	return nil
}
