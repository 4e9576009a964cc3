package build

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
	"github.com/mehinger01/garage-layout-planner/pkg/texture"
)

// binColors cycle across overhead storage bins.
var binColors = []uint32{0x3b82f6, 0xef4444, 0x22c55e}

// wallStorage assembles a cleat-backed panel with two shelves and a pair
// of stored items. The panel mounts at heightFromFloor, or a standard
// reach height when unspecified. Geometry is identical for every wall;
// the mount-wall rotation applied by the dispatcher swaps the world
// footprint for vertical walls.
func (b *builder) wallStorage(z *layout.Zone) *scene.Node {
	w, d, h := units(z.Width), units(z.Depth), units(z.Height)
	tint := layout.ParseColor(z.Color)

	mount := z.HeightFromFloor
	if mount == 0 {
		mount = wallStorageMountHeight
	}

	g := scene.NewGroup(z.Name)
	ax, az := zoneAnchor(z)
	g.At(ax, units(mount)+h/2, az)

	panel := scene.NewBox("panel", mgl64.Vec3{w, h, 0.03}, textured(tint, b.texFor(texture.Cleat)))
	panel.At(0, 0, -d/2+0.015)
	g.Add(panel)

	shelfMat := textured(rgb(0x8a6b4a), b.texFor(texture.Wood))
	for i, sy := range []float64{-h * 0.22, h * 0.22} {
		shelf := scene.NewBox(fmt.Sprintf("shelf:%d", i), mgl64.Vec3{w * 0.9, 0.03, d * 0.8}, shelfMat)
		shelf.At(0, sy, 0)
		g.Add(shelf)
	}

	// Two representative items resting on the lower shelf.
	bin := scene.NewBox("item:bin", mgl64.Vec3{w * 0.3, h * 0.2, d * 0.6}, solid(rgb(0xef4444)))
	bin.At(-w*0.18, -h*0.22+0.015+h*0.1, 0)
	crate := scene.NewBox("item:crate", mgl64.Vec3{w * 0.22, h * 0.16, d * 0.5}, solid(rgb(0x3b82f6)))
	crate.At(w*0.2, -h*0.22+0.015+h*0.08, 0)
	g.Add(bin, crate)

	return g
}

// overhead assembles a ceiling-hung platform: deck with a translucent
// mesh overlay and frame edges, four suspension rods reaching the
// ceiling with brackets, and up to three bins on the deck.
func (b *builder) overhead(z *layout.Zone) *scene.Node {
	w, d, h := units(z.Width), units(z.Depth), units(z.Height)
	tint := layout.ParseColor(z.Color)

	g := scene.NewGroup(z.Name)
	ax, az := zoneAnchor(z)
	g.At(ax, units(z.HeightFromFloor)+h/2, az)

	deck := scene.NewBox("deck", mgl64.Vec3{w, 0.05, d}, translucent(tint, 0.85))
	g.Add(deck)

	mesh := scene.NewPlane("mesh", w, d, translucent(tint, 0.25))
	mesh.At(0, 0.035, 0).RotatedX(-mgl64.DegToRad(90))
	g.Add(mesh)

	frameColor := rgb(0x6b21a8)
	corners := []mgl64.Vec3{
		{-w / 2, 0.03, -d / 2}, {w / 2, 0.03, -d / 2},
		{w / 2, 0.03, d / 2}, {-w / 2, 0.03, d / 2},
	}
	for i := range corners {
		g.Add(scene.NewLine(fmt.Sprintf("frame:%d", i), corners[i], corners[(i+1)%4], frameColor))
	}

	// Rods run from the deck center plane up to the ceiling.
	rodLen := b.h - units(z.HeightFromFloor) - h/2
	rodMat := solid(rgb(0x555555))
	bracketMat := solid(rgb(0x374151))
	for i, p := range [][2]float64{
		{-w/2 + 0.1, -d/2 + 0.1}, {w/2 - 0.1, -d/2 + 0.1},
		{-w/2 + 0.1, d/2 - 0.1}, {w/2 - 0.1, d/2 - 0.1},
	} {
		rod := scene.NewCylinder(fmt.Sprintf("rod:%d", i), 0.03, rodLen, rodMat)
		rod.At(p[0], rodLen/2, p[1])
		bracket := scene.NewBox(fmt.Sprintf("bracket:%d", i), mgl64.Vec3{0.08, 0.03, 0.08}, bracketMat)
		bracket.At(p[0], rodLen-0.015, p[1])
		g.Add(rod, bracket)
	}

	binCount := int(w / 0.4)
	if binCount > 3 {
		binCount = 3
	}
	for i := 0; i < binCount; i++ {
		bw := w / float64(binCount)
		bin := scene.NewBox(fmt.Sprintf("bin:%d", i), mgl64.Vec3{bw * 0.7, 0.15, d * 0.6}, solid(rgb(binColors[i%len(binColors)])))
		bin.At(-w/2+bw*(float64(i)+0.5), 0.1, 0)
		g.Add(bin)
	}

	return g
}

// defaultBox renders any unrecognized zone type as a translucent block,
// keeping malformed plans visible instead of rejecting them.
func (b *builder) defaultBox(z *layout.Zone) *scene.Node {
	w, d, h := units(z.Width), units(z.Depth), units(z.Height)

	g := scene.NewGroup(z.Name)
	ax, az := zoneAnchor(z)
	g.At(ax, units(z.HeightFromFloor)+h/2, az)

	box := scene.NewBox("box", mgl64.Vec3{w, h, d}, translucent(layout.ParseColor(z.Color), 0.8))
	g.Add(box)
	return g
}
