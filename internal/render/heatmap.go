package render

import (
	"fmt"
	"image"

	"github.com/gogpu/rastercheck/internal/colormap"
	"github.com/gogpu/rastercheck/internal/field"
	"github.com/gogpu/rastercheck/internal/pixbuf"
)

// Heatmap renders a window of a field through a color map.
//
// Range must be the range resolved over the whole field, not over the
// window, so that adjacent tiles map equal values to equal colors.
type Heatmap struct {
	Window field.Window
	Range  field.Range
	Map    *colormap.Map
}

// NewHeatmap returns the heatmap surface for region r of f.
func NewHeatmap(f *field.Field, r image.Rectangle, rng field.Range, m *colormap.Map) (Heatmap, error) {
	w, err := f.Window(r)
	if err != nil {
		return Heatmap{}, err
	}
	return Heatmap{Window: w, Range: rng, Map: m}, nil
}

// RenderARGB implements Surface.
//
// Every pixel is clamped to the range, mapped linearly to a color map entry
// and written opaque in alpha-first order. At the window's native size each
// sample becomes one pixel; other sizes sample the nearest field value.
func (h Heatmap) RenderARGB(width, height int) (*pixbuf.Buffer, error) {
	if h.Map == nil {
		return nil, fmt.Errorf("render: heatmap without color map")
	}
	out, err := pixbuf.New(width, height, DeviceFormat)
	if err != nil {
		return nil, err
	}

	sw, sh := h.Window.Width(), h.Window.Height()
	rng := h.Range.Normalize()
	data := out.Data()

	i := 0
	for py := range height {
		row := py * sh / height
		for px := range width {
			c := h.Map.At(rng.Scale(h.Window.At(row, px*sw/width)))
			data[i+0] = c.A
			data[i+1] = c.R
			data[i+2] = c.G
			data[i+3] = c.B
			i += 4
		}
	}
	return out, nil
}
