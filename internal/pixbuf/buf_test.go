package pixbuf

import (
	"errors"
	"image"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		format       Format
		wantErr      error
		wantChannels int
	}{
		{"gray", 4, 3, FormatGray8, nil, 1},
		{"rgb", 4, 3, FormatRGB8, nil, 3},
		{"rgba", 4, 3, FormatRGBA8, nil, 4},
		{"argb", 4, 3, FormatARGB8, nil, 4},
		{"zero width", 0, 3, FormatRGBA8, ErrInvalidDimensions, 0},
		{"negative height", 4, -1, FormatRGBA8, ErrInvalidDimensions, 0},
		{"unknown format", 4, 3, Format(99), ErrInvalidFormat, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.w, tt.h, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			h, w, c := b.Shape()
			if h != tt.h || w != tt.w || c != tt.wantChannels {
				t.Errorf("Shape() = (%d,%d,%d), want (%d,%d,%d)", h, w, c, tt.h, tt.w, tt.wantChannels)
			}
			if len(b.Data()) != tt.w*tt.h*tt.wantChannels {
				t.Errorf("len(Data()) = %d, want %d", len(b.Data()), tt.w*tt.h*tt.wantChannels)
			}
		})
	}
}

func TestFromRaw(t *testing.T) {
	if _, err := FromRaw(make([]byte, 12), 2, 2, FormatRGB8); err != nil {
		t.Errorf("FromRaw(exact) error = %v", err)
	}
	if _, err := FromRaw(make([]byte, 11), 2, 2, FormatRGB8); !errors.Is(err, ErrDataSize) {
		t.Errorf("FromRaw(short) error = %v, want ErrDataSize", err)
	}
	if _, err := FromRaw(make([]byte, 16), 2, 2, FormatRGB8); !errors.Is(err, ErrDataSize) {
		t.Errorf("FromRaw(long) error = %v, want ErrDataSize", err)
	}

	data := make([]byte, 4)
	b, err := FromRaw(data, 1, 1, FormatRGBA8)
	if err != nil {
		t.Fatalf("FromRaw() error = %v", err)
	}
	data[0] = 42
	if b.Pixel(0, 0)[0] != 42 {
		t.Error("FromRaw should not copy data")
	}
}

func TestBuffer_PixelAccess(t *testing.T) {
	b, _ := New(3, 2, FormatRGB8)

	if err := b.SetPixel(2, 1, 10, 20, 30); err != nil {
		t.Fatalf("SetPixel() error = %v", err)
	}
	if got := b.Pixel(2, 1); got[0] != 10 || got[1] != 20 || got[2] != 30 {
		t.Errorf("Pixel(2,1) = %v, want [10 20 30]", got)
	}
	if off := b.PixelOffset(2, 1); off != (1*3+2)*3 {
		t.Errorf("PixelOffset(2,1) = %d, want %d", off, (1*3+2)*3)
	}

	if err := b.SetPixel(3, 0, 1, 2, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetPixel(out of bounds) error = %v", err)
	}
	if err := b.SetPixel(0, 0, 1, 2); !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("SetPixel(wrong sample count) error = %v", err)
	}
	if b.Pixel(-1, 0) != nil || b.RowBytes(2) != nil {
		t.Error("out-of-bounds accessors should return nil")
	}
}

func TestBuffer_FillCloneEqual(t *testing.T) {
	b, _ := New(4, 4, FormatRGBA8)
	if err := b.Fill(1, 2, 3, 4); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}

	c := b.Clone()
	if !b.Equal(c) {
		t.Fatal("Clone() should be equal to the original")
	}

	c.Pixel(0, 0)[0] = 99
	if b.Equal(c) {
		t.Error("modifying the clone changed equality")
	}
	if b.Pixel(0, 0)[0] != 1 {
		t.Error("Clone() shares data with the original")
	}

	if err := b.Fill(1, 2, 3); !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("Fill(3 samples) error = %v", err)
	}
}

func TestBuffer_Paste(t *testing.T) {
	canvas, _ := New(5, 4, FormatRGBA8)
	tile, _ := New(2, 3, FormatRGBA8)
	_ = tile.Fill(9, 8, 7, 6)

	if err := canvas.Paste(tile, 3, 1); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}

	for y := range 4 {
		for x := range 5 {
			inside := x >= 3 && y >= 1
			px := canvas.Pixel(x, y)
			if inside && px[0] != 9 {
				t.Errorf("pixel (%d,%d) = %v, want pasted value", x, y, px)
			}
			if !inside && px[0] != 0 {
				t.Errorf("pixel (%d,%d) = %v, want untouched", x, y, px)
			}
		}
	}

	if err := canvas.Paste(tile, 4, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Paste(overflow) error = %v, want ErrOutOfBounds", err)
	}

	rgb, _ := New(1, 1, FormatRGB8)
	if err := canvas.Paste(rgb, 0, 0); !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("Paste(RGB into RGBA) error = %v, want ErrFormatMismatch", err)
	}
}

func TestBuffer_SubImage(t *testing.T) {
	b, _ := New(4, 4, FormatGray8)
	for i := range b.Data() {
		b.Data()[i] = byte(i)
	}

	sub, err := b.SubImage(image.Rect(1, 2, 3, 4))
	if err != nil {
		t.Fatalf("SubImage() error = %v", err)
	}
	want := []byte{9, 10, 13, 14}
	for i, v := range sub.Data() {
		if v != want[i] {
			t.Fatalf("SubImage data = %v, want %v", sub.Data(), want)
		}
	}

	if _, err := b.SubImage(image.Rect(3, 3, 5, 5)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SubImage(outside) error = %v", err)
	}
}

func TestFormatForChannels(t *testing.T) {
	for ch, want := range map[int]Format{1: FormatGray8, 3: FormatRGB8, 4: FormatRGBA8} {
		got, ok := FormatForChannels(ch)
		if !ok || got != want {
			t.Errorf("FormatForChannels(%d) = %v,%v, want %v", ch, got, ok, want)
		}
	}
	if _, ok := FormatForChannels(2); ok {
		t.Error("FormatForChannels(2) should fail")
	}
}

func TestFormat_Info(t *testing.T) {
	argb := FormatARGB8.Info()
	if argb.Alpha != 0 || argb.Red != 1 || argb.Green != 2 || argb.Blue != 3 {
		t.Errorf("ARGB8 offsets = %+v, want alpha first", argb)
	}
	rgba := FormatRGBA8.Info()
	if rgba.Alpha != 3 || rgba.Red != 0 {
		t.Errorf("RGBA8 offsets = %+v, want alpha last", rgba)
	}
	if Format(42).String() != "Unknown" {
		t.Errorf("Format(42).String() = %q", Format(42).String())
	}
}
