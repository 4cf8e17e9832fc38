package pixbuf

import (
	"errors"
	"math/rand"
	"testing"
)

func randomBuffer(t *testing.T, w, h int, f Format, seed int64) *Buffer {
	t.Helper()
	b, err := New(w, h, f)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Read(b.Data())
	return b
}

func TestARGBToRGBA(t *testing.T) {
	src, _ := FromRaw([]byte{
		0xA0, 0x01, 0x02, 0x03,
		0xFF, 0x10, 0x20, 0x30,
	}, 2, 1, FormatARGB8)

	got, err := ARGBToRGBA(src)
	if err != nil {
		t.Fatalf("ARGBToRGBA() error = %v", err)
	}
	if got.Format() != FormatRGBA8 {
		t.Errorf("Format() = %v, want RGBA8", got.Format())
	}

	want := []byte{0x01, 0x02, 0x03, 0xA0, 0x10, 0x20, 0x30, 0xFF}
	for i, v := range got.Data() {
		if v != want[i] {
			t.Fatalf("data = %x, want %x", got.Data(), want)
		}
	}
}

func TestReorder_Involution(t *testing.T) {
	src := randomBuffer(t, 37, 19, FormatARGB8, 1)

	rgba, err := ARGBToRGBA(src)
	if err != nil {
		t.Fatalf("ARGBToRGBA() error = %v", err)
	}
	back, err := RGBAToARGB(rgba)
	if err != nil {
		t.Fatalf("RGBAToARGB() error = %v", err)
	}

	if !back.Equal(src) {
		t.Error("forward then inverse permutation did not restore the buffer")
	}
}

func TestPermutation_Inverse(t *testing.T) {
	if inv := ARGBToRGBAPermutation.Inverse(); inv != RGBAToARGBPermutation {
		t.Errorf("Inverse() = %v, want %v", inv, RGBAToARGBPermutation)
	}

	perms := []Permutation{{0, 1, 2, 3}, {3, 2, 1, 0}, {2, 0, 3, 1}, {1, 2, 3, 0}}
	for _, p := range perms {
		src := randomBuffer(t, 8, 8, FormatRGBA8, int64(p[0]+1))
		fwd, err := Permute(src, p, FormatRGBA8)
		if err != nil {
			t.Fatalf("Permute(%v) error = %v", p, err)
		}
		back, err := Permute(fwd, p.Inverse(), FormatRGBA8)
		if err != nil {
			t.Fatalf("Permute(%v inverse) error = %v", p, err)
		}
		if !back.Equal(src) {
			t.Errorf("permutation %v is not undone by its inverse", p)
		}
	}
}

func TestPermute_Errors(t *testing.T) {
	rgb, _ := New(2, 2, FormatRGB8)
	if _, err := Permute(rgb, ARGBToRGBAPermutation, FormatRGBA8); !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("Permute(RGB) error = %v, want ErrFormatMismatch", err)
	}

	rgba, _ := New(2, 2, FormatRGBA8)
	if _, err := Permute(rgba, Permutation{0, 0, 1, 2}, FormatRGBA8); err == nil {
		t.Error("Permute(invalid permutation) should fail")
	}
	if _, err := ARGBToRGBA(rgba); !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("ARGBToRGBA(RGBA) error = %v, want ErrFormatMismatch", err)
	}
	argb, _ := New(2, 2, FormatARGB8)
	if _, err := RGBAToARGB(argb); !errors.Is(err, ErrFormatMismatch) {
		t.Errorf("RGBAToARGB(ARGB) error = %v, want ErrFormatMismatch", err)
	}
}
