package pixbuf

import (
	"errors"
	"testing"
)

func TestResize_Uniform(t *testing.T) {
	src, _ := New(12, 6, FormatRGBA8)
	_ = src.Fill(200, 100, 50, 255)

	out, err := Resize(src, 4, 2)
	if err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if out.Width() != 4 || out.Height() != 2 || out.Format() != FormatRGBA8 {
		t.Fatalf("Resize() = %v, want RGBA8 4x2", out)
	}
	for i := 0; i < len(out.Data()); i += 4 {
		px := out.Data()[i : i+4]
		if px[0] != 200 || px[1] != 100 || px[2] != 50 || px[3] != 255 {
			t.Fatalf("pixel %d = %v, want [200 100 50 255]", i/4, px)
		}
	}
}

func TestResize_KeepsFormat(t *testing.T) {
	for _, f := range []Format{FormatGray8, FormatRGB8, FormatRGBA8} {
		src := randomBuffer(t, 30, 18, f, 5)
		out, err := Resize(src, 5, 3)
		if err != nil {
			t.Fatalf("Resize(%v) error = %v", f, err)
		}
		if out.Format() != f {
			t.Errorf("Resize(%v) format = %v", f, out.Format())
		}
	}
}

func TestResize_Invalid(t *testing.T) {
	src, _ := New(4, 4, FormatRGB8)
	if _, err := Resize(src, 0, 2); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(0x2) error = %v, want ErrInvalidDimensions", err)
	}
}
