package field

import "math"

// Sinc is the normalized sinc function sin(pi*x)/(pi*x), with Sinc(0) = 1.
func Sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// SincRadial is sinc(r)*cos(2x)*sin(2y) with r the distance from the origin.
// It is the field behind the large tiled heatmap.
func SincRadial(x, y float64) float64 {
	return Sinc(math.Hypot(x, y)) * math.Cos(2*x) * math.Sin(2*y)
}

// Ripple is sin(x)*cos(y) + 0.1*(x-y), used for the contour figure.
func Ripple(x, y float64) float64 {
	return math.Sin(x)*math.Cos(y) + 0.1*(x-y)
}

// Wave returns sin(x + phase), constant along y.
func Wave(phase float64) Func {
	return func(x, _ float64) float64 {
		return math.Sin(x + phase)
	}
}

// Constant returns a function with the same value everywhere.
func Constant(v float64) Func {
	return func(_, _ float64) float64 {
		return v
	}
}
