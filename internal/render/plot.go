package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/gogpu/rastercheck/internal/colormap"
	"github.com/gogpu/rastercheck/internal/field"
	"github.com/gogpu/rastercheck/internal/pixbuf"
)

// DefaultDPI is the pixel density used when a figure does not set one.
const DefaultDPI = 100

// Series is one polyline of a LinePlot.
type Series struct {
	Label string
	X, Y  []float64

	// Color defaults to black, Width (in points) to 1.
	Color color.Color
	Width float64
}

// LinePlot is a 2-D line figure drawn with gonum/plot.
type LinePlot struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series

	Grid     bool
	Legend   bool
	HideAxes bool

	// FixY pins the y axis to [YMin, YMax] instead of fitting the data.
	FixY       bool
	YMin, YMax float64

	// Background fills the figure; nil means opaque white. A transparent
	// background produces an image with a meaningful alpha channel.
	Background color.Color

	// DPI sets the scale of text and line widths; 0 means DefaultDPI.
	DPI int
}

// RenderARGB implements Surface.
func (p *LinePlot) RenderARGB(width, height int) (*pixbuf.Buffer, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = p.XLabel
	pl.Y.Label.Text = p.YLabel

	if p.Grid {
		pl.Add(plotter.NewGrid())
	}

	for i, s := range p.Series {
		if len(s.X) != len(s.Y) {
			return nil, fmt.Errorf("render: series %d has %d x and %d y values", i, len(s.X), len(s.Y))
		}
		xys := make(plotter.XYs, len(s.X))
		for j := range s.X {
			xys[j].X = s.X[j]
			xys[j].Y = s.Y[j]
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("render: series %d: %w", i, err)
		}
		if s.Color != nil {
			line.LineStyle.Color = s.Color
		}
		if s.Width > 0 {
			line.LineStyle.Width = vg.Points(s.Width)
		}
		pl.Add(line)

		if p.Legend && s.Label != "" {
			pl.Legend.Add(s.Label, line)
		}
	}

	if p.FixY {
		pl.Y.Min = p.YMin
		pl.Y.Max = p.YMax
	}
	if p.HideAxes {
		pl.HideAxes()
	}

	return rasterize(pl, width, height, p.DPI, p.Background)
}

// ContourPlot is a filled contour figure of a field with contour lines on
// top, drawn with gonum/plot.
type ContourPlot struct {
	Title  string
	XLabel string
	YLabel string

	Field  *field.Field
	Domain field.Domain
	Map    *colormap.Map

	// FillLevels is the number of discrete fill colors (default 24).
	FillLevels int

	// LineLevels is the number of contour lines between the field
	// minimum and maximum (default 12). NoLines disables them.
	LineLevels int
	NoLines    bool

	Background color.Color
	DPI        int
}

// RenderARGB implements Surface.
func (p *ContourPlot) RenderARGB(width, height int) (*pixbuf.Buffer, error) {
	if p.Field == nil || p.Map == nil {
		return nil, fmt.Errorf("render: contour plot needs a field and a color map")
	}

	grid := fieldGrid{
		f:  p.Field,
		xs: field.Linspace(p.Domain.XMin, p.Domain.XMax, p.Field.Width()),
		ys: field.Linspace(p.Domain.YMin, p.Domain.YMax, p.Field.Height()),
	}

	fill := p.FillLevels
	if fill <= 0 {
		fill = 24
	}

	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = p.XLabel
	pl.Y.Label.Text = p.YLabel
	pl.Add(plotter.NewHeatMap(grid, p.Map.Palette(fill)))

	if !p.NoLines {
		n := p.LineLevels
		if n <= 0 {
			n = 12
		}
		rng := field.ResolveRange(p.Field)
		levels := field.Linspace(rng.Min, rng.Max, n)
		lines := plotter.NewContour(grid, levels, blackPalette{})
		lines.LineStyles = []draw.LineStyle{{Color: color.Black, Width: vg.Points(0.7)}}
		pl.Add(lines)
	}

	return rasterize(pl, width, height, p.DPI, p.Background)
}

// fieldGrid adapts a field to plotter.GridXYZ (column = X, row = Y).
type fieldGrid struct {
	f      *field.Field
	xs, ys []float64
}

func (g fieldGrid) Dims() (c, r int)   { return g.f.Width(), g.f.Height() }
func (g fieldGrid) Z(c, r int) float64 { return g.f.At(r, c) }
func (g fieldGrid) X(c int) float64    { return g.xs[c] }
func (g fieldGrid) Y(r int) float64    { return g.ys[r] }

type blackPalette struct{}

func (blackPalette) Colors() []color.Color { return []color.Color{color.Black, color.Black} }

var _ palette.Palette = blackPalette{}

// rasterize draws pl onto a width x height image canvas and returns the
// pixels un-premultiplied in alpha-first order.
func rasterize(pl *plot.Plot, width, height, dpi int, bg color.Color) (*pixbuf.Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", pixbuf.ErrInvalidDimensions, width, height)
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if bg == nil {
		bg = color.White
	}
	pl.BackgroundColor = bg

	w := vg.Length(width) / vg.Length(dpi) * vg.Inch
	h := vg.Length(height) / vg.Length(dpi) * vg.Inch
	c := vgimg.NewWith(
		vgimg.UseWH(w, h),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(bg),
	)
	pl.Draw(draw.New(c))

	return pixbuf.FromImage(c.Image(), DeviceFormat)
}
