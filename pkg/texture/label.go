package texture

import (
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Label textures render short text onto a colored background: warning
// labels, license plates, and the cardinal compass markers.

var (
	fontOnce   sync.Once
	fontParsed *opentype.Font
	fontErr    error
)

// face builds a font face at the given point size. The embedded Go
// Regular font parses once; face construction is per call since sizes
// vary by label kind.
func face(points float64) (font.Face, error) {
	fontOnce.Do(func() {
		fontParsed, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return opentype.NewFace(fontParsed, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Label renders short text centered on a colored background with a dark
// border, sized for warning and caution placards.
func (s *Synthesizer) Label(text string, bg color.RGBA) image.Image {
	const w, h = 256, 128
	dc := gg.NewContext(w, h)
	dc.SetColor(bg)
	dc.Clear()

	dc.SetRGB255(0x1a, 0x1a, 0x1a)
	dc.SetLineWidth(6)
	dc.DrawRectangle(3, 3, w-6, h-6)
	dc.Stroke()

	if f, err := face(28); err == nil {
		dc.SetFontFace(f)
		dc.SetRGB255(0x1a, 0x1a, 0x1a)
		dc.DrawStringAnchored(text, w/2, h/2, 0.5, 0.5)
	}
	return dc.Image()
}

// Plate renders a rear license plate: white field, state band, embossed
// text.
func (s *Synthesizer) Plate(text string) image.Image {
	const w, h = 192, 96
	dc := gg.NewContext(w, h)
	dc.SetRGB255(0xf8, 0xf8, 0xf4)
	dc.Clear()

	// State band across the top.
	dc.SetRGB255(0x1d, 0x4e, 0x89)
	dc.DrawRectangle(0, 0, w, 20)
	dc.Fill()

	dc.SetRGB255(0x60, 0x60, 0x60)
	dc.SetLineWidth(3)
	dc.DrawRectangle(1.5, 1.5, w-3, h-3)
	dc.Stroke()

	if f, err := face(30); err == nil {
		dc.SetFontFace(f)
		dc.SetRGB255(0x20, 0x30, 0x55)
		dc.DrawStringAnchored(text, w/2, (h+20)/2, 0.5, 0.5)
	}
	return dc.Image()
}

// Marker renders a cardinal-direction disc: a dark translucent circle
// with a colored letter, matching the floating N/E/S/W scene markers.
func (s *Synthesizer) Marker(letter string, fg color.RGBA) image.Image {
	const size = 128
	dc := gg.NewContext(size, size)

	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawCircle(size/2, size/2, 50)
	dc.Fill()

	if f, err := face(64); err == nil {
		dc.SetFontFace(f)
		dc.SetColor(fg)
		dc.DrawStringAnchored(letter, size/2, size/2, 0.5, 0.5)
	}
	return dc.Image()
}
