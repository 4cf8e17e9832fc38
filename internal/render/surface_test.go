package render

import (
	"errors"
	"testing"

	"github.com/gogpu/rastercheck/internal/pixbuf"
)

// fixedSurface ignores the requested size and returns its own buffer.
type fixedSurface struct {
	buf *pixbuf.Buffer
}

func (s fixedSurface) RenderARGB(int, int) (*pixbuf.Buffer, error) {
	return s.buf, nil
}

type failingSurface struct{}

func (failingSurface) RenderARGB(int, int) (*pixbuf.Buffer, error) {
	return nil, errors.New("backend unavailable")
}

func TestRenderTile_SizeMismatch(t *testing.T) {
	small, _ := pixbuf.New(4, 4, DeviceFormat)

	if _, err := RenderTile(fixedSurface{small}, 4, 4); err != nil {
		t.Fatalf("RenderTile(matching) error = %v", err)
	}
	if _, err := RenderTile(fixedSurface{small}, 4, 5); !errors.Is(err, ErrRenderSizeMismatch) {
		t.Errorf("RenderTile(4x5) error = %v, want ErrRenderSizeMismatch", err)
	}
	if _, err := RenderTile(fixedSurface{small}, 2, 8); !errors.Is(err, ErrRenderSizeMismatch) {
		t.Errorf("RenderTile(2x8, same pixel count) error = %v, want ErrRenderSizeMismatch", err)
	}
}

func TestRenderTile_WrongByteOrder(t *testing.T) {
	rgba, _ := pixbuf.New(4, 4, pixbuf.FormatRGBA8)
	if _, err := RenderTile(fixedSurface{rgba}, 4, 4); !errors.Is(err, ErrRenderSizeMismatch) {
		t.Errorf("RenderTile(RGBA surface) error = %v, want ErrRenderSizeMismatch", err)
	}
}

func TestRenderTile_PropagatesError(t *testing.T) {
	if _, err := RenderTile(failingSurface{}, 4, 4); err == nil {
		t.Error("RenderTile should return the surface error")
	}
}

func TestDeviceFormat_IsAlphaFirst(t *testing.T) {
	if DeviceFormat.Info().Alpha != 0 {
		t.Errorf("DeviceFormat alpha offset = %d, want 0", DeviceFormat.Info().Alpha)
	}
}

func TestFigureSize_Pixels(t *testing.T) {
	tests := []struct {
		size         FigureSize
		wantW, wantH int
	}{
		{FigureSize{5.2, 3.1, 137}, 712, 425},
		{FigureSize{6.4, 3.6, 100}, 640, 360},
		{FigureSize{7, 4.5, 150}, 1050, 675},
		{FigureSize{3, 2, 72}, 216, 144},
	}
	for _, tt := range tests {
		w, h := tt.size.Pixels()
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("%+v.Pixels() = %dx%d, want %dx%d", tt.size, w, h, tt.wantW, tt.wantH)
		}
	}
}
