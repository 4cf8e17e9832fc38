package pixbuf

import (
	"fmt"
	"image/color"
)

// Flatten composites src over an opaque background and returns an RGB8
// buffer suitable for formats without alpha, such as JPEG.
//
// For every pixel and color channel:
//
//	out = alpha/255*c + (1 - alpha/255)*bg
//
// rounded to the nearest integer. Where alpha is 255 the result equals the
// source color exactly. Grayscale input is broadcast to three equal channels
// and RGB8 input is copied unchanged. The alpha of bg is ignored.
//
// When a thumbnail is needed, resize first and flatten the resized image, so
// the background is blended exactly once at the final resolution.
func Flatten(src *Buffer, bg color.RGBA) (*Buffer, error) {
	out, err := New(src.width, src.height, FormatRGB8)
	if err != nil {
		return nil, err
	}

	info := src.format.Info()
	s, d := src.data, out.data

	switch {
	case info.IsGrayscale:
		for i, v := range s {
			d[i*3+0] = v
			d[i*3+1] = v
			d[i*3+2] = v
		}

	case !info.HasAlpha:
		copy(d, s)

	case info.Channels == 4:
		bgc := [3]uint32{uint32(bg.R), uint32(bg.G), uint32(bg.B)}
		offs := [3]int{info.Red, info.Green, info.Blue}
		for i, j := 0, 0; i < len(s); i, j = i+4, j+3 {
			a := uint32(s[i+info.Alpha])
			for c := range 3 {
				d[j+c] = blend(uint32(s[i+offs[c]]), bgc[c], a)
			}
		}

	default:
		return nil, fmt.Errorf("%w: cannot flatten %s", ErrFormatMismatch, src.format)
	}

	return out, nil
}

// blend computes round((a*c + (255-a)*bg) / 255). The numerator is an
// integer, so a fraction of exactly one half cannot occur and adding 127
// before the division rounds to nearest.
func blend(c, bg, a uint32) byte {
	v := (a*c + (255-a)*bg + 127) / 255
	return byte(min(v, 255))
}
