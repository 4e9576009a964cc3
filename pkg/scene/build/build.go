package build

import (
	"image"
	"image/color"

	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
	"github.com/mehinger01/garage-layout-planner/pkg/texture"
)

// wallStorageMountHeight is the default mounting elevation, in inches, for
// wall storage zones that do not specify heightFromFloor.
const wallStorageMountHeight = 24

// builder carries per-Build state: the plan, the texture synthesizer, and
// a cache so each material is synthesized at most once per build.
type builder struct {
	plan  *layout.Plan
	synth *texture.Synthesizer
	tex   map[texture.Kind]image.Image

	// Envelope in scene units.
	w, d, h float64
}

// Build composes the full scene for a plan. Every zone in the plan yields
// exactly one composite tagged with that zone; zone order is preserved.
func Build(plan *layout.Plan, synth *texture.Synthesizer) *scene.Scene {
	b := &builder{
		plan:  plan,
		synth: synth,
		tex:   make(map[texture.Kind]image.Image),
		w:     plan.Envelope.Width * scene.InchScale,
		d:     plan.Envelope.Depth * scene.InchScale,
		h:     plan.Envelope.Height * scene.InchScale,
	}

	sc := scene.New()
	sc.Root.Add(b.statics()...)
	for i := range plan.Zones {
		zone := &plan.Zones[i]
		sc.AddComposite(b.composite(zone), zone)
	}
	return sc
}

// composite dispatches a zone to its sub-builder. The returned group is
// already positioned in world space, rotated for wall mounting.
func (b *builder) composite(z *layout.Zone) *scene.Node {
	var g *scene.Node
	switch z.Type {
	case layout.ZoneVehicle:
		g = b.vehicle(z)
	case layout.ZoneWorkbench:
		g = b.workbench(z)
	case layout.ZoneWallStorage:
		g = b.wallStorage(z)
	case layout.ZoneOverhead:
		g = b.overhead(z)
	default:
		g = b.defaultBox(z)
	}
	g.Yaw = z.Wall.Yaw()
	return g
}

// texFor returns the cached image for a material kind, synthesizing it on
// first use.
func (b *builder) texFor(kind texture.Kind) image.Image {
	img, ok := b.tex[kind]
	if !ok {
		img = b.synth.Generate(kind)
		b.tex[kind] = img
	}
	return img
}

// units converts inches to scene units.
func units(inches float64) float64 {
	return inches * scene.InchScale
}

// zoneAnchor returns the world-space XZ center of a zone's footprint.
func zoneAnchor(z *layout.Zone) (x, zz float64) {
	return units(z.X + z.Width/2), units(z.Y + z.Depth/2)
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

func solid(c color.RGBA) scene.Material {
	return scene.Material{Color: c, Opacity: 1}
}

func translucent(c color.RGBA, opacity float64) scene.Material {
	return scene.Material{Color: c, Opacity: opacity}
}

func textured(c color.RGBA, img image.Image) scene.Material {
	return scene.Material{Color: c, Opacity: 1, Texture: img}
}
