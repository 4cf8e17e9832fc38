// Package field samples scalar functions over rectangular grids and resolves
// the value range used to map samples to colors.
//
// A Field is immutable once created. It is safe to share between goroutines,
// which is what lets tiles of one field render concurrently.
package field

import (
	"errors"
	"fmt"
	"image"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidDimension is returned for non-positive grid sizes and for
// windows that do not fit inside a field.
var ErrInvalidDimension = errors.New("field: invalid dimension")

// Func is a scalar function of a grid coordinate.
type Func func(x, y float64) float64

// Domain is the coordinate rectangle a field is sampled over. Samples are
// placed on an inclusive, evenly spaced grid: column 0 is at XMin, the last
// column at XMax, row 0 at YMin and the last row at YMax.
type Domain struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Field is a height x width grid of float64 samples stored in row-major order.
type Field struct {
	width  int
	height int
	data   []float64
}

// Sample evaluates fn on a height x width grid over d.
func Sample(d Domain, height, width int, fn Func) (*Field, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, height, width)
	}

	xs := Linspace(d.XMin, d.XMax, width)
	ys := Linspace(d.YMin, d.YMax, height)

	f := &Field{width: width, height: height, data: make([]float64, width*height)}
	for row, y := range ys {
		base := row * width
		for col, x := range xs {
			f.data[base+col] = fn(x, y)
		}
	}
	return f, nil
}

// FromValues builds a field from row-major samples. The values are copied.
func FromValues(height, width int, values []float64) (*Field, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, height, width)
	}
	if len(values) != height*width {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrInvalidDimension, len(values), height, width)
	}

	data := make([]float64, len(values))
	copy(data, values)
	return &Field{width: width, height: height, data: data}, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
// For n == 1 it returns lo.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Width returns the number of columns.
func (f *Field) Width() int {
	return f.width
}

// Height returns the number of rows.
func (f *Field) Height() int {
	return f.height
}

// Bounds returns the field extent as a rectangle (X = column, Y = row).
func (f *Field) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// At returns the sample at (row, col).
func (f *Field) At(row, col int) float64 {
	return f.data[row*f.width+col]
}

// Values returns a copy of the samples in row-major order.
func (f *Field) Values() []float64 {
	out := make([]float64, len(f.data))
	copy(out, f.data)
	return out
}

// Window returns a read-only view of the rectangle r (X = column, Y = row).
func (f *Field) Window(r image.Rectangle) (Window, error) {
	if r.Empty() || !r.In(f.Bounds()) {
		return Window{}, fmt.Errorf("%w: window %v outside %v", ErrInvalidDimension, r, f.Bounds())
	}
	return Window{field: f, rect: r}, nil
}

// Window is a rectangular view into a Field. It shares the field's samples.
type Window struct {
	field *Field
	rect  image.Rectangle
}

// Width returns the number of columns in the window.
func (w Window) Width() int {
	return w.rect.Dx()
}

// Height returns the number of rows in the window.
func (w Window) Height() int {
	return w.rect.Dy()
}

// Rect returns the window rectangle in field coordinates.
func (w Window) Rect() image.Rectangle {
	return w.rect
}

// At returns the sample at (row, col) relative to the window origin.
func (w Window) At(row, col int) float64 {
	return w.field.At(w.rect.Min.Y+row, w.rect.Min.X+col)
}
