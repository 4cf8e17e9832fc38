package pixbuf

import (
	"image"
	"image/color"
)

// ToImage converts the buffer to a standard library image.
//
// Gray8 becomes *image.Gray, RGB8 an opaque *image.RGBA and the straight
// alpha formats *image.NRGBA. The pixels are copied.
func (b *Buffer) ToImage() image.Image {
	rect := b.Bounds()
	info := b.format.Info()

	switch b.format {
	case FormatGray8:
		gray := image.NewGray(rect)
		copy(gray.Pix, b.data)
		return gray

	case FormatRGB8:
		rgba := image.NewRGBA(rect)
		for i, j := 0, 0; i < len(b.data); i, j = i+3, j+4 {
			rgba.Pix[j+0] = b.data[i+0]
			rgba.Pix[j+1] = b.data[i+1]
			rgba.Pix[j+2] = b.data[i+2]
			rgba.Pix[j+3] = 0xff
		}
		return rgba

	default:
		nrgba := image.NewNRGBA(rect)
		for i := 0; i < len(b.data); i += 4 {
			nrgba.Pix[i+0] = b.data[i+info.Red]
			nrgba.Pix[i+1] = b.data[i+info.Green]
			nrgba.Pix[i+2] = b.data[i+info.Blue]
			nrgba.Pix[i+3] = b.data[i+info.Alpha]
		}
		return nrgba
	}
}

// FromImage converts a standard library image into a buffer of the given
// format. Premultiplied sources are converted to straight alpha; formats
// without alpha keep the straight color and drop alpha.
func FromImage(img image.Image, format Format) (*Buffer, error) {
	r := img.Bounds()
	out, err := New(r.Dx(), r.Dy(), format)
	if err != nil {
		return nil, err
	}

	info := format.Info()
	ch := info.Channels

	// Fast path for the common NRGBA source.
	if src, ok := img.(*image.NRGBA); ok && ch == 4 {
		for y := range out.height {
			start := src.PixOffset(r.Min.X, r.Min.Y+y)
			row := src.Pix[start : start+out.width*4]
			dst := out.RowBytes(y)
			for x := 0; x < len(row); x += 4 {
				dst[x+info.Red] = row[x+0]
				dst[x+info.Green] = row[x+1]
				dst[x+info.Blue] = row[x+2]
				dst[x+info.Alpha] = row[x+3]
			}
		}
		return out, nil
	}

	// Fast path for the Gray source into Gray8.
	if src, ok := img.(*image.Gray); ok && info.IsGrayscale {
		for y := range out.height {
			start := src.PixOffset(r.Min.X, r.Min.Y+y)
			copy(out.RowBytes(y), src.Pix[start:start+out.width])
		}
		return out, nil
	}

	for y := range out.height {
		dst := out.RowBytes(y)
		for x := range out.width {
			c := img.At(r.Min.X+x, r.Min.Y+y)
			off := x * ch
			if info.IsGrayscale {
				dst[off] = color.GrayModel.Convert(c).(color.Gray).Y
				continue
			}
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			dst[off+info.Red] = n.R
			dst[off+info.Green] = n.G
			dst[off+info.Blue] = n.B
			if info.HasAlpha {
				dst[off+info.Alpha] = n.A
			}
		}
	}
	return out, nil
}
