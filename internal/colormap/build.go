package colormap

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// Anchor colors sampled at evenly spaced positions of the perceptually
// uniform maps; entries between anchors are interpolated linearly.
var (
	magmaStops = []string{
		"#000004", "#1c1044", "#4f127b", "#812581", "#b5367a",
		"#e55064", "#fb8761", "#fec287", "#fcfdbf",
	}
	viridisStops = []string{
		"#440154", "#472c7a", "#3b518b", "#2c718e", "#21908d",
		"#27ad81", "#5cc863", "#aadc32", "#fde725",
	}
	infernoStops = []string{
		"#000004", "#1f0c48", "#550f6d", "#88226a", "#ba3655",
		"#e35933", "#f98e09", "#f8c931", "#fcffa4",
	}
)

// fromStops builds a table by linear interpolation between hex anchors.
func fromStops(name string, stops []string) *Map {
	anchors := make([]color.NRGBA, len(stops))
	for i, s := range stops {
		anchors[i] = mustParseHex(s)
	}

	m := &Map{name: name}
	segments := float64(len(anchors) - 1)
	for i := range Size {
		pos := float64(i) / (Size - 1) * segments
		lo := min(int(pos), len(anchors)-2)
		frac := pos - float64(lo)
		a, b := anchors[lo], anchors[lo+1]
		m.lut[i] = color.NRGBA{
			R: lerp(a.R, b.R, frac),
			G: lerp(a.G, b.G, frac),
			B: lerp(a.B, b.B, frac),
			A: 0xff,
		}
	}
	return m
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func mustParseHex(s string) color.NRGBA {
	if len(s) != 7 || s[0] != '#' {
		panic(fmt.Sprintf("colormap: bad hex color %q", s))
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		panic(fmt.Sprintf("colormap: bad hex color %q: %v", s, err))
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// fromColorMap samples a gonum color map over [0, 1] into a table.
func fromColorMap(name string, cm palette.ColorMap) (*Map, error) {
	cm.SetMin(0)
	cm.SetMax(1)

	m := &Map{name: name}
	for i := range Size {
		c, err := cm.At(float64(i) / (Size - 1))
		if err != nil {
			return nil, fmt.Errorf("colormap: sample %s at %d: %w", name, i, err)
		}
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		n.A = 0xff
		m.lut[i] = n
	}
	return m, nil
}

func mustFromColorMap(name string, cm palette.ColorMap) *Map {
	m, err := fromColorMap(name, cm)
	if err != nil {
		panic(err)
	}
	return m
}

func smoothBlueRed() palette.ColorMap { return moreland.SmoothBlueRed() }

func blackBody() palette.ColorMap { return moreland.BlackBody() }
