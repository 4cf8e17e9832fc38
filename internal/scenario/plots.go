package scenario

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/gogpu/rastercheck/internal/check"
	"github.com/gogpu/rastercheck/internal/codec"
	"github.com/gogpu/rastercheck/internal/colormap"
	"github.com/gogpu/rastercheck/internal/field"
	"github.com/gogpu/rastercheck/internal/pixbuf"
	"github.com/gogpu/rastercheck/internal/render"
)

// Animation parameters.
const (
	AnimationFrames   = 24
	AnimationWidth    = 640
	AnimationHeight   = 360
	AnimationDuration = 60 * time.Millisecond
)

// curve samples fn at n points over [lo, hi].
func curve(lo, hi float64, n int, fn func(float64) float64) (xs, ys []float64) {
	xs = field.Linspace(lo, hi, n)
	ys = make([]float64, n)
	for i, x := range xs {
		ys[i] = fn(x)
	}
	return xs, ys
}

// plotChain renders a line figure, stores it as PNG, reads it back and
// then stores the flattened copy as JPEG.
func (e *env) plotChain(rs *results, label, base string, p *render.LinePlot, fs render.FigureSize, jpegNonUniform bool) error {
	img, err := renderRGBA(p, fs)
	if err != nil {
		return err
	}
	if !e.write(rs, label+" PNG", base+".png", img, codec.PNG) {
		return nil
	}

	arr, err := codec.Read(e.path(base + ".png"))
	if err != nil {
		return err
	}
	e.log.Info("PNG loaded", slog.String("file", base+".png"), slog.String("buffer", arr.String()))
	rs.add(check.NonUniformity(label+" PNG", arr))

	_, err = e.flattenedJPEG(rs, label, base+".jpg", arr, 92, jpegNonUniform)
	return err
}

func (e *env) example(_ context.Context, rs *results) error {
	xs, ys := curve(0, 2*math.Pi, 600, func(x float64) float64 {
		return math.Sin(x) * math.Exp(-0.08*x)
	})
	e.log.Info("data prepared", slog.Int("samples", len(xs)))

	p := &render.LinePlot{
		Title:  "Line plot example",
		XLabel: "x",
		YLabel: "y",
		Series: []render.Series{{
			Label: "sin(x)*exp(-0.08x)",
			X:     xs,
			Y:     ys,
			Color: royalBlue,
			Width: 2,
		}},
		Grid:       true,
		Legend:     true,
		Background: color.Transparent,
		DPI:        120,
	}
	return e.plotChain(rs, "example", "example", p, render.FigureSize{WidthIn: 6.5, HeightIn: 4, DPI: 120}, false)
}

func (e *env) static(_ context.Context, rs *results) error {
	ts, ys := curve(0, 1, 700, func(t float64) float64 {
		return math.Cos(10*math.Pi*t) * math.Exp(-3*t)
	})
	series, err := field.FromValues(1, len(ys), ys)
	if err != nil {
		return err
	}
	rng := field.ResolveRange(series)
	pad := 0.05 * (rng.Max - rng.Min)
	e.log.Info("data prepared", slog.Int("samples", len(ts)), slog.String("range", rng.String()))

	p := &render.LinePlot{
		Title:  "Damped cosine",
		XLabel: "t",
		YLabel: "y",
		Series: []render.Series{{X: ts, Y: ys, Color: steelBlue, Width: 2}},
		Grid:   true,
		FixY:   true,
		YMin:   rng.Min - pad,
		YMax:   rng.Max + pad,
		DPI:    120,
	}
	return e.plotChain(rs, "static", "static", p, render.FigureSize{WidthIn: 7, HeightIn: 4, DPI: 120}, true)
}

// Frames renders the animation: n frames of sin(x + i*2pi/n) at
// AnimationWidth x AnimationHeight, in RGBA. log may be nil.
func Frames(ctx context.Context, n int, log *slog.Logger) ([]*pixbuf.Buffer, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	frames := make([]*pixbuf.Buffer, 0, n)
	for i := range n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		wave := field.Wave(float64(i) * 2 * math.Pi / float64(n))
		xs, ys := curve(0, 2*math.Pi, 400, func(x float64) float64 { return wave(x, 0) })
		p := &render.LinePlot{
			Title:  fmt.Sprintf("frame %d/%d", i+1, n),
			XLabel: "x",
			YLabel: "sin(x+phase)",
			Series: []render.Series{{X: xs, Y: ys, Color: teal, Width: 2}},
			Grid:   true,
			FixY:   true,
			YMin:   -1.2,
			YMax:   1.2,
		}

		argb, err := render.RenderTile(p, AnimationWidth, AnimationHeight)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		rgba, err := pixbuf.ARGBToRGBA(argb)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, rgba)

		if (i+1)%max(1, n/4) == 0 {
			log.Info("frames rendered", slog.Int("done", i+1), slog.Int("total", n))
		}
	}
	return frames, nil
}

func (e *env) animation(ctx context.Context, rs *results) error {
	e.log.Info("GIF config",
		slog.Int("frames", AnimationFrames),
		slog.String("canvas", fmt.Sprintf("%dx%d", AnimationWidth, AnimationHeight)))

	frames, err := Frames(ctx, AnimationFrames, e.log)
	if err != nil {
		return err
	}

	path := e.path("wave.gif")
	n, err := codec.WriteAnimation(path, frames, AnimationDuration)
	if rs.add(check.Written("GIF", path, n, err)).Status != check.StatusOK {
		return nil
	}

	back, err := codec.ReadAnimation(path)
	if err != nil {
		return err
	}
	rs.add(check.Expect(len(back) == AnimationFrames, check.StatusFail,
		"GIF has %d frames (expected %d)", len(back), AnimationFrames))

	if len(frames) < 2 {
		rs.add(check.Fail("GIF has fewer than 2 frames"))
		return nil
	}
	rs.add(check.FrameMotion("GIF", frames[0], frames[1]))
	return nil
}

func (e *env) contour(_ context.Context, rs *results) error {
	d := field.Domain{XMin: -4, XMax: 4, YMin: -3, YMax: 3}
	f, err := field.Sample(d, 360, 480, field.Ripple)
	if err != nil {
		return err
	}
	e.log.Info("grid sampled",
		slog.Int("width", f.Width()),
		slog.Int("height", f.Height()),
		slog.String("range", field.ResolveRange(f).String()))

	m, err := colormap.Lookup("viridis")
	if err != nil {
		return err
	}
	p := &render.ContourPlot{
		Title:      "Filled contour",
		XLabel:     "x",
		YLabel:     "y",
		Field:      f,
		Domain:     d,
		Map:        m,
		FillLevels: 24,
		LineLevels: 12,
		DPI:        150,
	}
	img, err := renderRGBA(p, render.FigureSize{WidthIn: 7, HeightIn: 4.5, DPI: 150})
	if err != nil {
		return err
	}
	if !e.write(rs, "contour PNG", "contour.png", img, codec.PNG) {
		return nil
	}

	arr, err := codec.Read(e.path("contour.png"))
	if err != nil {
		return err
	}
	rs.add(check.NonUniformity("contour PNG", arr))
	return nil
}

func (e *env) dpi(_ context.Context, rs *results) error {
	fs := render.FigureSize{WidthIn: 5.2, HeightIn: 3.1, DPI: 137}
	xs, ys := curve(0, 2*math.Pi, 400, math.Sin)

	p := &render.LinePlot{
		Title:  fmt.Sprintf("DPI test (%d)", fs.DPI),
		Series: []render.Series{{X: xs, Y: ys, Color: crimson}},
		Grid:   true,
		DPI:    fs.DPI,
	}
	img, err := renderRGBA(p, fs)
	if err != nil {
		return err
	}
	if !e.write(rs, "DPI PNG", "dpi.png", img, codec.PNG) {
		return nil
	}

	arr, err := codec.Read(e.path("dpi.png"))
	if err != nil {
		return err
	}
	w, h := fs.Pixels()
	e.log.Info("pixel size", slog.String("expected", fmt.Sprintf("%dx%d", w, h)), slog.String("actual", arr.String()))
	rs.add(check.DimensionMatch("DPI PNG", arr.Size(), image.Pt(w, h)))
	return nil
}

func (e *env) batch(ctx context.Context, rs *results) error {
	ts, ys := curve(0, 1, 200, func(t float64) float64 { return math.Sin(8 * math.Pi * t) })

	for _, d := range []int{72, 100, 200} {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := &render.LinePlot{
			Title:    fmt.Sprintf("DPI %d", d),
			Series:   []render.Series{{X: ts, Y: ys, Color: royalBlue}},
			HideAxes: true,
			DPI:      d,
		}
		img, err := renderRGBA(p, render.FigureSize{WidthIn: 3, HeightIn: 2, DPI: d})
		if err != nil {
			return err
		}
		e.write(rs, "batch PNG", fmt.Sprintf("batch_dpi%d.png", d), img, codec.PNG)
	}
	return nil
}
