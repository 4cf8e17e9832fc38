// Package pixbuf provides the 8-bit pixel buffers passed between the
// rendering, composition, export and validation stages.
//
// A Buffer is a dense (height, width, channels) array of bytes. Its format,
// and with it the channel count, is fixed at creation; operations that change
// the layout (reordering, flattening, resizing) return new buffers.
package pixbuf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
)

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("pixbuf: invalid format")

	// ErrDataSize is returned when raw data does not match width*height*channels.
	ErrDataSize = errors.New("pixbuf: data size does not match dimensions")

	// ErrFormatMismatch is returned when an operation receives a buffer of the wrong format.
	ErrFormatMismatch = errors.New("pixbuf: format mismatch")

	// ErrOutOfBounds is returned when a region lies outside the buffer.
	ErrOutOfBounds = errors.New("pixbuf: region out of bounds")
)

// Buffer is a dense 8-bit pixel buffer.
//
// Thread safety: Buffer is safe for concurrent reads. Concurrent writes are
// safe only when they touch disjoint pixel regions (as Paste calls for
// distinct tiles do).
type Buffer struct {
	data   []byte
	width  int
	height int
	format Format
}

// New creates a zeroed buffer with the given dimensions and format.
func New(width, height int, format Format) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	return &Buffer{
		data:   make([]byte, format.RowBytes(width)*height),
		width:  width,
		height: height,
		format: format,
	}, nil
}

// FromRaw wraps existing data without copying.
// The length of data must be exactly width*height*channels.
func FromRaw(data []byte, width, height int, format Format) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if want := format.RowBytes(width) * height; len(data) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrDataSize, len(data), want)
	}

	return &Buffer{data: data, width: width, height: height, format: format}, nil
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Buffer{data: data, width: b.width, height: b.height, format: b.format}
}

// Width returns the width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Format returns the pixel format.
func (b *Buffer) Format() Format {
	return b.format
}

// Channels returns the number of samples per pixel (the last dimension).
func (b *Buffer) Channels() int {
	return b.format.Channels()
}

// Shape returns (height, width, channels).
func (b *Buffer) Shape() (int, int, int) {
	return b.height, b.width, b.format.Channels()
}

// Size returns the dimensions as an image.Point (X = width, Y = height).
func (b *Buffer) Size() image.Point {
	return image.Pt(b.width, b.height)
}

// Bounds returns the buffer rectangle anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Stride returns the number of bytes per row.
func (b *Buffer) Stride() int {
	return b.format.RowBytes(b.width)
}

// Data returns the raw samples in row-major, channel-interleaved order.
func (b *Buffer) Data() []byte {
	return b.data
}

// RowBytes returns the samples of row y, or nil if y is out of bounds.
func (b *Buffer) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	stride := b.Stride()
	return b.data[y*stride : (y+1)*stride]
}

// PixelOffset returns the byte offset of pixel (x, y), or -1 if out of bounds.
func (b *Buffer) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.Stride() + x*b.format.Channels()
}

// Pixel returns the samples of pixel (x, y), or nil if out of bounds.
// The returned slice aliases the buffer.
func (b *Buffer) Pixel(x, y int) []byte {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return nil
	}
	return b.data[off : off+b.format.Channels()]
}

// SetPixel writes the samples of pixel (x, y).
// The number of samples must equal the channel count.
func (b *Buffer) SetPixel(x, y int, samples ...byte) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	if len(samples) != b.format.Channels() {
		return fmt.Errorf("%w: %d samples for %s", ErrFormatMismatch, len(samples), b.format)
	}
	copy(b.data[off:], samples)
	return nil
}

// Fill sets every pixel to the given samples.
func (b *Buffer) Fill(samples ...byte) error {
	ch := b.format.Channels()
	if len(samples) != ch {
		return fmt.Errorf("%w: %d samples for %s", ErrFormatMismatch, len(samples), b.format)
	}
	for i := 0; i < len(b.data); i += ch {
		copy(b.data[i:i+ch], samples)
	}
	return nil
}

// Equal reports whether two buffers have the same format, size and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.format == o.format && b.width == o.width && b.height == o.height &&
		bytes.Equal(b.data, o.data)
}

// Paste copies src into b with its top-left corner at (x, y).
//
// Paste overwrites; there is no blending. Both buffers must share a format
// and src must lie entirely within b. Concurrent Paste calls are safe when
// their target regions are disjoint.
func (b *Buffer) Paste(src *Buffer, x, y int) error {
	if src.format != b.format {
		return fmt.Errorf("%w: pasting %s into %s", ErrFormatMismatch, src.format, b.format)
	}
	r := image.Rect(x, y, x+src.width, y+src.height)
	if !r.In(b.Bounds()) {
		return fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, r, b.Bounds())
	}

	rowLen := src.Stride()
	off := x * b.format.Channels()
	for row := range src.height {
		dst := b.RowBytes(y + row)
		copy(dst[off:off+rowLen], src.RowBytes(row))
	}
	return nil
}

// SubImage returns a copy of the region r.
func (b *Buffer) SubImage(r image.Rectangle) (*Buffer, error) {
	if r.Empty() || !r.In(b.Bounds()) {
		return nil, fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, r, b.Bounds())
	}

	out, err := New(r.Dx(), r.Dy(), b.format)
	if err != nil {
		return nil, err
	}

	ch := b.format.Channels()
	for row := range out.height {
		src := b.RowBytes(r.Min.Y + row)
		copy(out.RowBytes(row), src[r.Min.X*ch:r.Max.X*ch])
	}
	return out, nil
}

// String returns a description such as "RGBA8 640x360".
func (b *Buffer) String() string {
	return fmt.Sprintf("%s %dx%d", b.format, b.width, b.height)
}
