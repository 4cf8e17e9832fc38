package pixbuf

import "fmt"

// Permutation reorders the four samples of a pixel: destination sample i is
// taken from source sample p[i]. It is an exact index permutation; sample
// values are never altered.
type Permutation [4]int

// Channel permutations between the alpha-first device order and the
// canonical alpha-last order.
var (
	// ARGBToRGBAPermutation maps (A,R,G,B) to (R,G,B,A).
	ARGBToRGBAPermutation = Permutation{1, 2, 3, 0}

	// RGBAToARGBPermutation maps (R,G,B,A) to (A,R,G,B).
	RGBAToARGBPermutation = Permutation{3, 0, 1, 2}
)

// Inverse returns the permutation that undoes p.
func (p Permutation) Inverse() Permutation {
	var q Permutation
	for i, src := range p {
		q[src] = i
	}
	return q
}

// Valid reports whether p uses every index 0..3 exactly once.
func (p Permutation) Valid() bool {
	var seen [4]bool
	for _, src := range p {
		if src < 0 || src > 3 || seen[src] {
			return false
		}
		seen[src] = true
	}
	return true
}

// Permute applies p to every pixel of a 4-channel buffer and labels the
// result with format to.
func Permute(src *Buffer, p Permutation, to Format) (*Buffer, error) {
	if src.Channels() != 4 || to.Channels() != 4 {
		return nil, fmt.Errorf("%w: permute %s -> %s needs 4 channels", ErrFormatMismatch, src.format, to)
	}
	if !p.Valid() {
		return nil, fmt.Errorf("pixbuf: invalid permutation %v", p)
	}

	out := &Buffer{
		data:   make([]byte, len(src.data)),
		width:  src.width,
		height: src.height,
		format: to,
	}

	s, d := src.data, out.data
	for i := 0; i < len(s); i += 4 {
		d[i+0] = s[i+p[0]]
		d[i+1] = s[i+p[1]]
		d[i+2] = s[i+p[2]]
		d[i+3] = s[i+p[3]]
	}
	return out, nil
}

// ARGBToRGBA converts an alpha-first buffer to canonical RGBA order.
func ARGBToRGBA(src *Buffer) (*Buffer, error) {
	if src.format != FormatARGB8 {
		return nil, fmt.Errorf("%w: want ARGB8, got %s", ErrFormatMismatch, src.format)
	}
	return Permute(src, ARGBToRGBAPermutation, FormatRGBA8)
}

// RGBAToARGB converts a canonical RGBA buffer to alpha-first order.
func RGBAToARGB(src *Buffer) (*Buffer, error) {
	if src.format != FormatRGBA8 {
		return nil, fmt.Errorf("%w: want RGBA8, got %s", ErrFormatMismatch, src.format)
	}
	return Permute(src, RGBAToARGBPermutation, FormatARGB8)
}
