package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"os"
	"time"

	"golang.org/x/image/draw"

	"github.com/gogpu/rastercheck/internal/pixbuf"
)

// ErrEmptyAnimation is returned by WriteAnimation for an empty sequence.
var ErrEmptyAnimation = errors.New("codec: animation has no frames")

// WriteAnimation stores frames as a looping GIF at path and returns the
// number of bytes written.
//
// Every frame is quantized to the Plan 9 palette with Floyd-Steinberg
// dithering. GIF delays have a resolution of 10ms, so frameDuration is
// rounded to that, with a minimum of one unit. All frames must have the
// size of the first one.
func WriteAnimation(path string, frames []*pixbuf.Buffer, frameDuration time.Duration) (int64, error) {
	if len(frames) == 0 {
		return 0, ErrEmptyAnimation
	}

	delay := max(int(frameDuration.Round(10*time.Millisecond)/(10*time.Millisecond)), 1)
	bounds := frames[0].Bounds()

	anim := &gif.GIF{
		Image: make([]*image.Paletted, len(frames)),
		Delay: make([]int, len(frames)),
	}
	for i, fr := range frames {
		if fr.Bounds() != bounds {
			return 0, fmt.Errorf("%w: frame %d is %v, frame 0 is %v",
				ErrCodecRejection, i, fr.Bounds(), bounds)
		}
		p := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(p, bounds, fr.ToImage(), image.Point{})
		anim.Image[i] = p
		anim.Delay[i] = delay
	}

	var b bytes.Buffer
	if err := gif.EncodeAll(&b, anim); err != nil {
		return 0, fmt.Errorf("codec: encode %s: %w", path, err)
	}
	return writeFile(path, b.Bytes())
}

// ReadAnimation decodes every frame of the GIF at path. Frames are
// composited onto the logical screen in order, so each returned buffer is
// the full picture shown at that step.
func ReadAnimation(path string) ([]*pixbuf.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("codec: decode %s: %w", path, err)
	}

	screen := image.NewNRGBA(image.Rect(0, 0, anim.Config.Width, anim.Config.Height))
	out := make([]*pixbuf.Buffer, 0, len(anim.Image))
	for i, fr := range anim.Image {
		draw.Draw(screen, fr.Bounds(), fr, fr.Bounds().Min, draw.Over)

		format := pixbuf.FormatRGBA8
		if screen.Opaque() {
			format = pixbuf.FormatRGB8
		}
		buf, err := pixbuf.FromImage(screen, format)
		if err != nil {
			return nil, fmt.Errorf("codec: %s frame %d: %w", path, i, err)
		}
		out = append(out, buf)

		if i < len(anim.Disposal) && anim.Disposal[i] == gif.DisposalBackground {
			draw.Draw(screen, fr.Bounds(), image.Transparent, image.Point{}, draw.Src)
		}
	}
	return out, nil
}
