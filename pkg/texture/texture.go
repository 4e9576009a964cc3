package texture

import (
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/fogleman/gg"
)

// Kind names a procedural material.
type Kind int

// Material kinds.
const (
	Concrete Kind = iota
	Wood
	Pegboard
	Cleat
	DoorPanel
	WarningLabel
	LicensePlate
)

// String returns the material name.
func (k Kind) String() string {
	switch k {
	case Concrete:
		return "concrete"
	case Wood:
		return "wood"
	case Pegboard:
		return "pegboard"
	case Cleat:
		return "cleat"
	case DoorPanel:
		return "door_panel"
	case WarningLabel:
		return "warning_label"
	case LicensePlate:
		return "license_plate"
	}
	return "unknown"
}

// surfaceSize is the edge length of square surface textures.
const surfaceSize = 256

// Synthesizer generates material images. The zero value is not usable;
// create one with New.
type Synthesizer struct {
	rng *rand.Rand
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSeed pins the random source so output is reproducible. Without it
// the generator seeds from the clock and no two runs match.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// New creates a texture synthesizer.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Generate produces a fresh image for the given material kind. Label
// kinds render their default text; use [Synthesizer.Label] or
// [Synthesizer.Plate] for custom text.
func (s *Synthesizer) Generate(kind Kind) image.Image {
	switch kind {
	case Concrete:
		return s.Concrete()
	case Wood:
		return s.Wood()
	case Pegboard:
		return s.Pegboard()
	case Cleat:
		return s.Cleat()
	case DoorPanel:
		return s.DoorPanel()
	case WarningLabel:
		return s.Label("HIGH VOLTAGE", color.RGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff})
	case LicensePlate:
		return s.Plate(s.plateText())
	}
	return s.Concrete()
}

// Concrete renders a speckled gray slab with a few crack strokes.
func (s *Synthesizer) Concrete() image.Image {
	dc := gg.NewContext(surfaceSize, surfaceSize)
	dc.SetRGB255(0x8a, 0x8a, 0x8a)
	dc.Clear()

	// Speckle: single-pixel grains in nearby grays.
	for i := 0; i < 1400; i++ {
		g := 0x70 + s.rng.Intn(0x40)
		dc.SetRGB255(g, g, g)
		dc.DrawRectangle(s.randF(surfaceSize), s.randF(surfaceSize), 1.5, 1.5)
		dc.Fill()
	}

	// Cracks: short random walks.
	dc.SetRGBA255(0x55, 0x55, 0x55, 0xb0)
	dc.SetLineWidth(1)
	for i := 0; i < 7; i++ {
		x, y := s.randF(surfaceSize), s.randF(surfaceSize)
		dc.MoveTo(x, y)
		for seg := 0; seg < 6; seg++ {
			x += (s.rng.Float64() - 0.5) * 40
			y += (s.rng.Float64() - 0.5) * 40
			dc.LineTo(x, y)
		}
		dc.Stroke()
	}
	return dc.Image()
}

// Wood renders plank-colored board with randomized bezier grain lines.
func (s *Synthesizer) Wood() image.Image {
	dc := gg.NewContext(surfaceSize, surfaceSize)
	dc.SetRGB255(0x9a, 0x6b, 0x43)
	dc.Clear()

	dc.SetLineWidth(1.5)
	for i := 0; i < 14; i++ {
		y := s.randF(surfaceSize)
		shade := 0x4a + s.rng.Intn(0x20)
		dc.SetRGBA255(shade, shade/2+0x10, 0x18, 0x90)
		dc.MoveTo(0, y)
		dc.CubicTo(
			surfaceSize*0.33, y+(s.rng.Float64()-0.5)*22,
			surfaceSize*0.66, y+(s.rng.Float64()-0.5)*22,
			surfaceSize, y+(s.rng.Float64()-0.5)*10,
		)
		dc.Stroke()
	}
	return dc.Image()
}

// Pegboard renders a tan panel with the regular hole grid.
func (s *Synthesizer) Pegboard() image.Image {
	dc := gg.NewContext(surfaceSize, surfaceSize)
	dc.SetRGB255(0xc4, 0xa5, 0x74)
	dc.Clear()

	dc.SetRGB255(0x5a, 0x4a, 0x39)
	const pitch = 16.0
	for y := pitch / 2; y < surfaceSize; y += pitch {
		for x := pitch / 2; x < surfaceSize; x += pitch {
			dc.DrawCircle(x, y, 2.5)
			dc.Fill()
		}
	}
	return dc.Image()
}

// Cleat renders the angled slat bands of a french-cleat wall.
func (s *Synthesizer) Cleat() image.Image {
	dc := gg.NewContext(surfaceSize, surfaceSize)
	dc.SetRGB255(0xb0, 0x8d, 0x5a)
	dc.Clear()

	dc.RotateAbout(gg.Radians(-8), surfaceSize/2, surfaceSize/2)
	const band = 28.0
	for i, y := 0, -band*2; y < surfaceSize+band*2; i, y = i+1, y+band {
		if i%2 == 0 {
			dc.SetRGB255(0x8f, 0x6e, 0x42)
		} else {
			dc.SetRGB255(0xa3, 0x80, 0x4e)
		}
		dc.DrawRectangle(-band*2, y, surfaceSize+band*4, band-4)
		dc.Fill()
	}
	return dc.Image()
}

// DoorPanel renders a paneled garage-door front with accent rectangles.
func (s *Synthesizer) DoorPanel() image.Image {
	dc := gg.NewContext(surfaceSize, surfaceSize)
	dc.SetRGB255(0xf5, 0xf5, 0xf5)
	dc.Clear()

	const cols, rows = 4, 4
	cellW := float64(surfaceSize) / cols
	cellH := float64(surfaceSize) / rows
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := float64(c)*cellW + 6
			y := float64(r)*cellH + 6
			dc.SetRGB255(0xd8, 0xd8, 0xd8)
			dc.SetLineWidth(2)
			dc.DrawRectangle(x, y, cellW-12, cellH-12)
			dc.Stroke()

			// Accent inset.
			dc.SetRGB255(0xe6, 0xe6, 0xe6)
			dc.DrawRectangle(x+8, y+8, cellW-28, cellH-28)
			dc.Fill()
		}
	}
	return dc.Image()
}

// randF returns a uniform float in [0, n).
func (s *Synthesizer) randF(n float64) float64 {
	return s.rng.Float64() * n
}

// plateText fabricates a plausible plate string.
func (s *Synthesizer) plateText() string {
	const letters = "ABCDEFGHJKLMNPRSTUVWXYZ"
	b := []byte{
		letters[s.rng.Intn(len(letters))],
		letters[s.rng.Intn(len(letters))],
		letters[s.rng.Intn(len(letters))],
		'-',
		byte('0' + s.rng.Intn(10)),
		byte('0' + s.rng.Intn(10)),
		byte('0' + s.rng.Intn(10)),
		byte('0' + s.rng.Intn(10)),
	}
	return string(b)
}
