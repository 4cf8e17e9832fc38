package pixbuf

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Resize returns a copy of src scaled to width x height with bilinear
// interpolation. The result keeps the format of src, alpha included.
func Resize(src *Buffer, width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resize to %dx%d", ErrInvalidDimensions, width, height)
	}

	from := src.ToImage()
	rect := image.Rect(0, 0, width, height)

	var to draw.Image
	switch src.format {
	case FormatGray8:
		to = image.NewGray(rect)
	case FormatRGB8:
		to = image.NewRGBA(rect)
	default:
		to = image.NewNRGBA(rect)
	}

	draw.BiLinear.Scale(to, rect, from, from.Bounds(), draw.Src, nil)

	return FromImage(to, src.format)
}
