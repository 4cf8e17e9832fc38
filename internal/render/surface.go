// Package render turns fields and plots into pixel buffers.
//
// Everything that draws implements Surface: given a pixel size, it returns a
// buffer in DeviceFormat, the alpha-first byte order of the drawing backend.
// Callers reorder to canonical RGBA themselves (see pixbuf.ARGBToRGBA); the
// device order is never assumed to be RGBA.
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/rastercheck/internal/pixbuf"
)

// DeviceFormat is the byte order produced by every Surface: (A,R,G,B).
const DeviceFormat = pixbuf.FormatARGB8

// ErrRenderSizeMismatch is returned when a surface produces a buffer whose
// size or layout differs from the one requested.
var ErrRenderSizeMismatch = errors.New("render: rendered size mismatch")

// Surface renders itself into an alpha-first buffer of the requested size.
// Implementations must be deterministic for identical inputs.
type Surface interface {
	RenderARGB(width, height int) (*pixbuf.Buffer, error)
}

// RenderTile renders s at width x height and verifies that the surface
// returned exactly width*height pixels in DeviceFormat.
func RenderTile(s Surface, width, height int) (*pixbuf.Buffer, error) {
	buf, err := s.RenderARGB(width, height)
	if err != nil {
		return nil, err
	}
	if buf.Format() != DeviceFormat {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrRenderSizeMismatch, buf.Format(), DeviceFormat)
	}
	if got := len(buf.Data()) / buf.Channels(); got != width*height ||
		buf.Width() != width || buf.Height() != height {
		return nil, fmt.Errorf("%w: got %dx%d (%d px), want %dx%d",
			ErrRenderSizeMismatch, buf.Width(), buf.Height(), got, width, height)
	}
	return buf, nil
}

// FigureSize is a physical figure size and a pixel density.
type FigureSize struct {
	WidthIn  float64
	HeightIn float64
	DPI      int
}

// Pixels returns the pixel size round(inches*dpi) in each dimension.
func (s FigureSize) Pixels() (width, height int) {
	d := float64(s.DPI)
	return int(math.Round(s.WidthIn * d)), int(math.Round(s.HeightIn * d))
}

// Render renders s at the pixel size of fs.
func Render(s Surface, fs FigureSize) (*pixbuf.Buffer, error) {
	w, h := fs.Pixels()
	return RenderTile(s, w, h)
}
