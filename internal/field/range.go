package field

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Range is the value interval mapped onto a color map.
//
// A range must be resolved once over a whole field and shared by every tile
// rendered from it. Ranges resolved per tile would map equal values to
// different colors on either side of a tile boundary.
type Range struct {
	Min float64
	Max float64
}

// ResolveRange returns the minimum and maximum sample of f.
func ResolveRange(f *Field) Range {
	return Range{Min: floats.Min(f.data), Max: floats.Max(f.data)}
}

// Degenerate reports whether the range has no extent.
func (r Range) Degenerate() bool {
	return !(r.Max > r.Min)
}

// Normalize returns r, or the unit range starting at r.Min when r is
// degenerate, so that mapping never divides by zero.
func (r Range) Normalize() Range {
	if r.Degenerate() {
		return Range{Min: r.Min, Max: r.Min + 1}
	}
	return r
}

// Scale clamps v to the range and maps it linearly onto [0, 1].
func (r Range) Scale(v float64) float64 {
	n := r.Normalize()
	switch {
	case v <= n.Min:
		return 0
	case v >= n.Max:
		return 1
	}
	return (v - n.Min) / (n.Max - n.Min)
}

// String formats the range as "[min, max]".
func (r Range) String() string {
	return fmt.Sprintf("[%.4f, %.4f]", r.Min, r.Max)
}
