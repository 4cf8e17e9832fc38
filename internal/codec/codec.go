// Package codec reads and writes pixel buffers as image files.
//
// Encoding and decoding go through github.com/disintegration/imaging. On
// top of that the package enforces the channel rules of each format (JPEG
// takes RGB only), reports the channel layout stored in a file on read, and
// handles what imaging does not: PNG text metadata and multi-frame GIFs.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	// Registered for image.DecodeConfig.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/gogpu/rastercheck/internal/pixbuf"
)

// ErrCodecRejection is returned when a buffer cannot be stored in the
// requested format, for example a 4-channel buffer as JPEG.
var ErrCodecRejection = errors.New("codec: rejected")

// WriteOption configures Write.
type WriteOption func(*writeOptions)

type writeOptions struct {
	quality     int
	compression png.CompressionLevel
	text        map[string]string
}

// WithQuality sets the JPEG quality, clamped to 1..100.
// Without it the imaging default is used.
func WithQuality(q int) WriteOption {
	return func(o *writeOptions) {
		o.quality = min(max(q, 1), 100)
	}
}

// WithCompression sets the PNG compression level.
func WithCompression(level png.CompressionLevel) WriteOption {
	return func(o *writeOptions) {
		o.compression = level
	}
}

// WithText attaches text metadata. Only PNG can carry it; keys are written
// in sorted order as tEXt chunks.
func WithText(kv map[string]string) WriteOption {
	return func(o *writeOptions) {
		if o.text == nil {
			o.text = make(map[string]string, len(kv))
		}
		for k, v := range kv {
			o.text[k] = v
		}
	}
}

// Write encodes buf in format f and stores it at path, creating the parent
// directory if needed. It returns the number of bytes written.
func Write(path string, buf *pixbuf.Buffer, f Format, opts ...WriteOption) (int64, error) {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := accepts(buf, f, &o); err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	imgFormat, err := f.imaging()
	if err != nil {
		return 0, err
	}

	var encOpts []imaging.EncodeOption
	if o.quality > 0 {
		encOpts = append(encOpts, imaging.JPEGQuality(o.quality))
	}
	if o.compression != 0 {
		encOpts = append(encOpts, imaging.PNGCompressionLevel(o.compression))
	}

	var b bytes.Buffer
	if err := imaging.Encode(&b, buf.ToImage(), imgFormat, encOpts...); err != nil {
		return 0, fmt.Errorf("codec: encode %s: %w", path, err)
	}

	data := b.Bytes()
	if len(o.text) > 0 {
		if data, err = insertText(data, o.text); err != nil {
			return 0, fmt.Errorf("codec: %s: %w", path, err)
		}
	}
	return writeFile(path, data)
}

// accepts reports whether buf can be encoded as f.
func accepts(buf *pixbuf.Buffer, f Format, o *writeOptions) error {
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", ErrCodecRejection)
	}
	if f == JPEG && buf.Channels() != 3 {
		return fmt.Errorf("%w: JPEG needs 3 channels, got %d (%s)",
			ErrCodecRejection, buf.Channels(), buf.Format())
	}
	if len(o.text) > 0 && f != PNG {
		return fmt.Errorf("%w: text metadata needs PNG, got %s", ErrCodecRejection, f)
	}
	return nil
}

func writeFile(path string, data []byte) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// Read decodes the image at path.
//
// The returned buffer keeps the channel layout stored in the file: PNG
// truecolor decodes to RGB8, truecolor with alpha to RGBA8, grayscale to
// Gray8, and JPEG to RGB8 or Gray8. Paletted and other formats decode to
// RGBA8 when any pixel is translucent and to RGB8 otherwise.
func Read(path string) (*pixbuf.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("codec: %s: %w", path, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("codec: decode %s: %w", path, err)
	}

	f, _ := formatFromName(name)
	return pixbuf.FromImage(img, nativeFormat(f, cfg, img))
}

// nativeFormat picks the buffer format matching what the file stores.
func nativeFormat(f Format, cfg image.Config, img image.Image) pixbuf.Format {
	switch cfg.ColorModel {
	case color.GrayModel, color.Gray16Model:
		return pixbuf.FormatGray8
	}

	switch f {
	case PNG:
		switch cfg.ColorModel {
		case color.RGBAModel, color.RGBA64Model:
			return pixbuf.FormatRGB8
		case color.NRGBAModel, color.NRGBA64Model:
			return pixbuf.FormatRGBA8
		}
	case JPEG:
		return pixbuf.FormatRGB8
	}

	if opaque(img) {
		return pixbuf.FormatRGB8
	}
	return pixbuf.FormatRGBA8
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
