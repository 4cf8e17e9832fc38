package rastercheck

import (
	"bytes"
	"io"
	"slices"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.outDir != "." || o.out != io.Discard {
		t.Errorf("defaultOptions() = %+v", o)
	}
	if o.inject || o.parallel || len(o.sections) != 0 {
		t.Errorf("defaultOptions() enables extras: %+v", o)
	}
}

func TestOptions(t *testing.T) {
	var out bytes.Buffer
	o := defaultOptions()
	for _, opt := range []Option{
		WithOutputDir("artifacts"),
		WithWorkers(3),
		WithTileSize(64, 48),
		WithSections("tiled, alpha", "dpi"),
		WithOutput(&out),
		WithColormap("viridis"),
		WithFailureInjection(true),
		WithParallelSections(true),
	} {
		opt(&o)
	}

	if o.outDir != "artifacts" || o.workers != 3 || o.tileWidth != 64 || o.tileHeight != 48 {
		t.Errorf("options = %+v", o)
	}
	if !slices.Equal(o.sections, []string{"tiled", "alpha", "dpi"}) {
		t.Errorf("sections = %q", o.sections)
	}
	if o.out != &out || o.colormap != "viridis" || !o.inject || !o.parallel {
		t.Errorf("options = %+v", o)
	}
}

func TestOptions_IgnoreEmpty(t *testing.T) {
	o := defaultOptions()
	WithOutputDir("")(&o)
	WithOutput(nil)(&o)
	WithSections("", " , ")(&o)

	if o.outDir != "." || o.out != io.Discard || len(o.sections) != 0 {
		t.Errorf("empty values changed options: %+v", o)
	}
}
