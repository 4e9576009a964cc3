package build

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
	"github.com/mehinger01/garage-layout-planner/pkg/texture"
)

// toolSpot is one silhouette on the pegboard, offsets relative to the
// panel extents.
type toolSpot struct {
	name string
	x    float64 // fraction of bench width from panel center
	w, h float64 // silhouette size in scene units
}

// toolCatalog is the fixed set of pegboard silhouettes. Offsets stay
// constant so repeated builds hang the tools in the same places.
var toolCatalog = []toolSpot{
	{name: "tool:hammer", x: -0.32, w: 0.035, h: 0.16},
	{name: "tool:wrench", x: -0.12, w: 0.025, h: 0.14},
	{name: "tool:screwdriver", x: 0.08, w: 0.02, h: 0.12},
	{name: "tool:pliers", x: 0.28, w: 0.03, h: 0.13},
}

// workbench assembles a bench against its back edge (north, local -Z):
// slab top on four legs with crossbars and a lower shelf, a pegboard
// rising behind it, drawers under the front lip, a vise, and a power
// strip on the pegboard.
func (b *builder) workbench(z *layout.Zone) *scene.Node {
	w, d, h := units(z.Width), units(z.Depth), units(z.Height)
	top := layout.ParseColor(z.Color)

	g := scene.NewGroup(z.Name)
	ax, az := zoneAnchor(z)
	g.At(ax, units(z.HeightFromFloor), az)

	slab := scene.NewBox("top", mgl64.Vec3{w, 0.06, d}, textured(top, b.texFor(texture.Wood)))
	slab.At(0, h, 0)
	g.Add(slab)

	legMat := solid(rgb(0x333333))
	for i, p := range [][2]float64{
		{-w/2 + 0.05, -d/2 + 0.05}, {w/2 - 0.05, -d/2 + 0.05},
		{-w/2 + 0.05, d/2 - 0.05}, {w/2 - 0.05, d/2 - 0.05},
	} {
		leg := scene.NewBox(fmt.Sprintf("leg:%d", i), mgl64.Vec3{0.06, h, 0.06}, legMat)
		leg.At(p[0], h/2, p[1])
		g.Add(leg)
	}

	// Crossbars brace the legs front and back; the shelf rests between.
	for i, zz := range []float64{-d/2 + 0.05, d/2 - 0.05} {
		bar := scene.NewBox(fmt.Sprintf("crossbar:%d", i), mgl64.Vec3{w - 0.1, 0.04, 0.04}, legMat)
		bar.At(0, h*0.25, zz)
		g.Add(bar)
	}
	shelf := scene.NewBox("shelf", mgl64.Vec3{w - 0.12, 0.03, d - 0.12}, textured(rgb(0x8a6b4a), b.texFor(texture.Wood)))
	shelf.At(0, h*0.28, 0)
	g.Add(shelf)

	peg := scene.NewBox("pegboard", mgl64.Vec3{w, h * 0.8, 0.03}, textured(rgb(0xc4a574), b.texFor(texture.Pegboard)))
	peg.At(0, h*1.4, -d/2+0.02)
	g.Add(peg)

	toolMat := solid(rgb(0x2f2f35))
	for _, t := range toolCatalog {
		tool := scene.NewBox(t.name, mgl64.Vec3{t.w, t.h, 0.012}, toolMat)
		tool.At(w*t.x, h*1.4, -d/2+0.045)
		g.Add(tool)
	}

	viseMat := solid(rgb(0x4b5563))
	viseBase := scene.NewBox("vise:base", mgl64.Vec3{0.08, 0.05, 0.08}, viseMat)
	viseBase.At(w*0.35, h+0.055, d*0.25)
	viseJaw := scene.NewBox("vise:jaw", mgl64.Vec3{0.1, 0.06, 0.04}, viseMat)
	viseJaw.At(w*0.35, h+0.11, d*0.25)
	g.Add(viseBase, viseJaw)

	strip := scene.NewBox("powerstrip", mgl64.Vec3{0.25, 0.04, 0.02}, solid(rgb(0xe5e7eb)))
	strip.At(-w*0.25, h*0.75, -d/2+0.06)
	g.Add(strip)

	drawerMat := textured(rgb(0x92400e), b.texFor(texture.Wood))
	handleMat := solid(rgb(0x1f2937))
	for i, dx := range []float64{-w * 0.31, 0, w * 0.31} {
		front := scene.NewBox(fmt.Sprintf("drawer:%d", i), mgl64.Vec3{w * 0.28, h * 0.25, 0.02}, drawerMat)
		front.At(dx, h*0.72, d/2-0.01)
		handle := scene.NewBox(fmt.Sprintf("handle:%d", i), mgl64.Vec3{0.1, 0.02, 0.015}, handleMat)
		handle.At(dx, h*0.78, d/2+0.002)
		g.Add(front, handle)
	}

	return g
}
