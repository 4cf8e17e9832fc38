// Package colormap provides named, deterministic value-to-color maps.
//
// Every map is a 256-entry lookup table. A normalized value t in [0, 1]
// selects entry min(floor(t*256), 255), so the table is indexed the same way
// for every tile of an image.
package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/plot/palette"
)

// Size is the number of entries in every lookup table.
const Size = 256

// ErrUnknown is returned by Lookup for names that are not registered.
var ErrUnknown = errors.New("colormap: unknown color map")

// Map is an immutable color lookup table. It is safe for concurrent use.
type Map struct {
	name string
	lut  [Size]color.NRGBA
}

// Name returns the registered name of the map.
func (m *Map) Name() string {
	return m.name
}

// Index returns the table entry selected by t. Values outside [0, 1] are clamped.
func (m *Map) Index(t float64) int {
	switch {
	case t <= 0 || math.IsNaN(t):
		return 0
	case t >= 1:
		return Size - 1
	}
	return min(int(t*Size), Size-1)
}

// At returns the opaque color for the normalized value t.
func (m *Map) At(t float64) color.NRGBA {
	return m.lut[m.Index(t)]
}

// Entry returns table entry i.
func (m *Map) Entry(i int) color.NRGBA {
	return m.lut[i]
}

// Colors returns the full table. It satisfies gonum's palette.Palette, so a
// Map can color gonum/plot heat maps and contours directly.
func (m *Map) Colors() []color.Color {
	out := make([]color.Color, Size)
	for i, c := range m.lut {
		out[i] = c
	}
	return out
}

// Palette returns n colors sampled evenly from the map (n >= 2).
func (m *Map) Palette(n int) palette.Palette {
	if n < 2 {
		n = 2
	}
	cs := make([]color.Color, n)
	for i := range n {
		cs[i] = m.At(float64(i) / float64(n-1))
	}
	return fixedPalette(cs)
}

type fixedPalette []color.Color

func (p fixedPalette) Colors() []color.Color { return p }

var (
	registryOnce sync.Once
	registry     map[string]*Map
)

func load() {
	registry = map[string]*Map{
		"magma":     fromStops("magma", magmaStops),
		"viridis":   fromStops("viridis", viridisStops),
		"inferno":   fromStops("inferno", infernoStops),
		"gray":      fromStops("gray", []string{"#000000", "#ffffff"}),
		"coolwarm":  mustFromColorMap("coolwarm", smoothBlueRed()),
		"blackbody": mustFromColorMap("blackbody", blackBody()),
	}
}

// Lookup returns the map registered under name.
func Lookup(name string) (*Map, error) {
	registryOnce.Do(load)
	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return m, nil
}

// Names returns the registered map names in sorted order.
func Names() []string {
	registryOnce.Do(load)
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
