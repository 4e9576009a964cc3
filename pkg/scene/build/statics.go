package build

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
	"github.com/mehinger01/garage-layout-planner/pkg/texture"
)

// joistSpacing is the on-center distance between ceiling joists, inches.
const joistSpacing = 48

// markerColors are the cardinal marker tints, in N, S, E, W order.
var markerColors = []uint32{0xff6b6b, 0x4ecdc4, 0xffe66d, 0x95e1d3}

// statics builds the garage shell: everything that exists independent of
// the zone list.
func (b *builder) statics() []*scene.Node {
	nodes := []*scene.Node{b.floor()}
	nodes = append(nodes, b.walls()...)
	nodes = append(nodes, b.edges()...)
	nodes = append(nodes, b.joists()...)
	for i := range b.plan.Openings {
		nodes = append(nodes, b.opening(&b.plan.Openings[i]))
	}
	nodes = append(nodes, b.lightFixture())
	nodes = append(nodes, b.markers()...)
	return nodes
}

func (b *builder) floor() *scene.Node {
	f := scene.NewPlane("floor", b.w, b.d, textured(rgb(0x404040), b.texFor(texture.Concrete)))
	f.At(b.w/2, 0, b.d/2).RotatedX(-math.Pi / 2)
	return f
}

// walls returns the four translucent boundary planes. They stay pickable
// so a pick ray records them, but they carry no zone and so never win a
// selection.
func (b *builder) walls() []*scene.Node {
	mat := translucent(rgb(0x909090), 0.12)
	spots := []struct {
		name string
		w    float64
		x, z float64
		yaw  float64
	}{
		{"wall:N", b.w, b.w / 2, 0, 0},
		{"wall:S", b.w, b.w / 2, b.d, math.Pi},
		{"wall:E", b.d, b.w, b.d / 2, -math.Pi / 2},
		{"wall:W", b.d, 0, b.d / 2, math.Pi / 2},
	}
	nodes := make([]*scene.Node, 0, len(spots))
	for _, s := range spots {
		n := scene.NewPlane(s.name, s.w, b.h, mat)
		n.At(s.x, b.h/2, s.z).RotatedY(s.yaw)
		nodes = append(nodes, n)
	}
	return nodes
}

// edges outlines the envelope with its twelve wireframe segments.
func (b *builder) edges() []*scene.Node {
	c := rgb(0x666666)
	w, d, h := b.w, b.d, b.h
	segs := [][2]mgl64.Vec3{
		{{0, 0, 0}, {w, 0, 0}}, {{w, 0, 0}, {w, 0, d}}, {{w, 0, d}, {0, 0, d}}, {{0, 0, d}, {0, 0, 0}},
		{{0, h, 0}, {w, h, 0}}, {{w, h, 0}, {w, h, d}}, {{w, h, d}, {0, h, d}}, {{0, h, d}, {0, h, 0}},
		{{0, 0, 0}, {0, h, 0}}, {{w, 0, 0}, {w, h, 0}}, {{w, 0, d}, {w, h, d}}, {{0, 0, d}, {0, h, d}},
	}
	nodes := make([]*scene.Node, 0, len(segs))
	for i, s := range segs {
		nodes = append(nodes, scene.NewLine(fmt.Sprintf("edge:%d", i), s[0], s[1], c))
	}
	return nodes
}

// joists spans the ceiling with east-west support members on fixed
// centers.
func (b *builder) joists() []*scene.Node {
	mat := solid(rgb(0x7a5c43))
	var nodes []*scene.Node
	for zi := float64(joistSpacing); zi < b.plan.Envelope.Depth; zi += joistSpacing {
		j := scene.NewBox(fmt.Sprintf("joist:%d", len(nodes)), mgl64.Vec3{b.w, units(7), units(1.5)}, mat)
		j.At(b.w/2, b.h-units(3.5), units(zi))
		nodes = append(nodes, j)
	}
	return nodes
}

// wallGroup creates a group on a wall face: origin at floor level at the
// given offset along the wall, local X running along the wall and local Z
// pointing into the room.
func (b *builder) wallGroup(name string, wall layout.Wall, centerAlong float64) *scene.Node {
	g := scene.NewGroup(name)
	along := units(centerAlong)
	switch wall {
	case layout.WallNorth:
		g.At(along, 0, 0)
	case layout.WallSouth:
		g.At(along, 0, b.d).RotatedY(math.Pi)
	case layout.WallEast:
		g.At(b.w, 0, along).RotatedY(-math.Pi / 2)
	default: // west, and anything unrecognized
		g.At(0, 0, along).RotatedY(math.Pi / 2)
	}
	return g
}

// opening builds the primitive group for one wall-embedded feature.
func (b *builder) opening(o *layout.Opening) *scene.Node {
	w, h := units(o.Width), units(o.Height)
	g := b.wallGroup("opening:"+string(o.Kind), o.Wall, o.Position+o.Width/2)

	switch o.Kind {
	case layout.OpeningGarageDoor:
		door := scene.NewBox("door", mgl64.Vec3{w, h, 0.08}, textured(rgb(0xf5f5f5), b.texFor(texture.DoorPanel)))
		door.At(0, h/2, 0.04)
		g.Add(door)

	case layout.OpeningEntryDoor:
		door := scene.NewBox("door", mgl64.Vec3{w, h, 0.06}, textured(rgb(0x8b5a2b), b.texFor(texture.Wood)))
		door.At(0, h/2, 0.03)
		knob := scene.NewDisc("knob", units(2.5), solid(rgb(0xd4af37)))
		knob.At(w*0.35, units(36), 0.065)
		g.Add(door, knob)

	case layout.OpeningWindow:
		sill := o.FromFloor
		if sill == 0 {
			sill = 48
		}
		glass := scene.NewPlane("glass", w, h, translucent(rgb(0x87ceeb), 0.5))
		glass.At(0, units(sill)+h/2, 0.02)
		frame := scene.NewBox("frame", mgl64.Vec3{w + units(3), h + units(3), 0.02}, solid(rgb(0xd6d3d1)))
		frame.At(0, units(sill)+h/2, 0.01)
		g.Add(frame, glass)

	case layout.OpeningElectricalPanel:
		sill := o.FromFloor
		if sill == 0 {
			sill = 48
		}
		box := scene.NewBox("panel", mgl64.Vec3{w, h, units(4)}, solid(rgb(0x9ca3af)))
		box.At(0, units(sill)+h/2, units(2))
		label := scene.NewPlane("label", units(16), units(8), textured(rgb(0xfacc15), b.texFor(texture.WarningLabel)))
		label.At(0, units(sill)+h/2, units(4)+0.005)
		g.Add(box, label)

	default:
		slab := scene.NewBox("slab", mgl64.Vec3{w, h, 0.04}, translucent(rgb(0x888888), 0.6))
		slab.At(0, h/2, 0.02)
		g.Add(slab)
	}
	return g
}

// lightFixture hangs a two-tube shop light from the ceiling center.
func (b *builder) lightFixture() *scene.Node {
	g := scene.NewGroup("light")
	g.At(b.w/2, b.h, b.d/2)

	stem := scene.NewCylinder("stem", 0.04, units(10), solid(rgb(0x52525b)))
	stem.At(0, -units(5), 0)
	housing := scene.NewBox("housing", mgl64.Vec3{units(48), units(4), units(6)}, solid(rgb(0xe4e4e7)))
	housing.At(0, -units(12), 0)
	tube := scene.NewBox("tube", mgl64.Vec3{units(44), units(1), units(4)}, scene.Material{Color: rgb(0xfff8e1), Opacity: 1, Emissive: true})
	tube.At(0, -units(14), 0)
	return g.Add(stem, housing, tube)
}

// markers floats a lettered badge outside each wall, above the ceiling
// plane, so orientation survives any camera angle.
func (b *builder) markers() []*scene.Node {
	type spot struct {
		letter  string
		x, y, z float64
	}
	spots := []spot{
		{"N", b.w / 2, b.h + 0.4, -0.6},
		{"S", b.w / 2, b.h + 0.4, b.d + 0.6},
		{"E", b.w + 0.6, b.h + 0.4, b.d / 2},
		{"W", -0.6, b.h + 0.4, b.d / 2},
	}
	nodes := make([]*scene.Node, 0, len(spots))
	for i, s := range spots {
		img := b.synth.Marker(s.letter, rgb(markerColors[i]))
		n := scene.NewSprite("marker:"+s.letter, 0.6, 0.6, img)
		n.At(s.x, s.y, s.z)
		nodes = append(nodes, n)
	}
	return nodes
}
