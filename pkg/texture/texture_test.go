package texture

import (
	"image"
	"image/color"
	"testing"
)

func TestGenerateDimensions(t *testing.T) {
	s := New(WithSeed(1))

	tests := []struct {
		kind Kind
		w, h int
	}{
		{Concrete, 256, 256},
		{Wood, 256, 256},
		{Pegboard, 256, 256},
		{Cleat, 256, 256},
		{DoorPanel, 256, 256},
		{WarningLabel, 256, 128},
		{LicensePlate, 192, 96},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			img := s.Generate(tt.kind)
			b := img.Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("%s size = %dx%d, want %dx%d", tt.kind, b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

// pixelsEqual compares two images byte for byte.
func pixelsEqual(a, b image.Image) bool {
	ab, bb := a.Bounds(), b.Bounds()
	if ab != bb {
		return false
	}
	for y := ab.Min.Y; y < ab.Max.Y; y++ {
		for x := ab.Min.X; x < ab.Max.X; x++ {
			ar, ag, abl, aa := a.At(x, y).RGBA()
			br, bg, bbl, ba := b.At(x, y).RGBA()
			if ar != br || ag != bg || abl != bbl || aa != ba {
				return false
			}
		}
	}
	return true
}

func TestSeededOutputReproducible(t *testing.T) {
	a := New(WithSeed(42)).Concrete()
	b := New(WithSeed(42)).Concrete()
	if !pixelsEqual(a, b) {
		t.Error("same seed produced different concrete textures")
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := New(WithSeed(1)).Concrete()
	b := New(WithSeed(2)).Concrete()
	if pixelsEqual(a, b) {
		t.Error("different seeds produced identical concrete textures")
	}
}

// rgbAt reads an 8-bit RGB triple.
func rgbAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestPegboardHoleGrid(t *testing.T) {
	img := New(WithSeed(1)).Pegboard()

	// Hole centers sit on a 16px pitch starting at 8,8.
	r, g, b := rgbAt(img, 8, 8)
	if r != 0x5a || g != 0x4a || b != 0x39 {
		t.Errorf("hole center = #%02x%02x%02x, want #5a4a39", r, g, b)
	}

	// Midway between holes is base panel color.
	r, g, b = rgbAt(img, 16, 16)
	if r != 0xc4 || g != 0xa5 || b != 0x74 {
		t.Errorf("panel field = #%02x%02x%02x, want #c4a574", r, g, b)
	}
}

func TestLabelBackground(t *testing.T) {
	bg := color.RGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff}
	img := New(WithSeed(1)).Label("CAUTION", bg)

	// Inside the border but away from the text.
	r, g, b := rgbAt(img, 20, 20)
	if r != bg.R || g != bg.G || b != bg.B {
		t.Errorf("label background = #%02x%02x%02x, want #%02x%02x%02x", r, g, b, bg.R, bg.G, bg.B)
	}
}

func TestPlateBand(t *testing.T) {
	img := New(WithSeed(1)).Plate("ABC-1234")

	// The state band covers the top rows inside the border.
	r, g, b := rgbAt(img, 96, 10)
	if r != 0x1d || g != 0x4e || b != 0x89 {
		t.Errorf("plate band = #%02x%02x%02x, want #1d4e89", r, g, b)
	}
}

func TestMarkerDisc(t *testing.T) {
	img := New(WithSeed(1)).Marker("N", color.RGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff})

	// Outside the disc the sprite is fully transparent.
	_, _, _, a := img.At(2, 2).RGBA()
	if a != 0 {
		t.Errorf("marker corner alpha = %d, want 0", a)
	}

	// Inside the disc (off-center, away from the glyph) it is not.
	_, _, _, a = img.At(30, 64).RGBA()
	if a == 0 {
		t.Error("marker disc should not be transparent")
	}
}

func TestUnknownKindFallsBack(t *testing.T) {
	img := New(WithSeed(1)).Generate(Kind(99))
	b := img.Bounds()
	if b.Dx() != 256 || b.Dy() != 256 {
		t.Errorf("fallback texture size = %dx%d, want 256x256", b.Dx(), b.Dy())
	}
}
