package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mehinger01/garage-layout-planner/pkg/scene"
)

// cylinderSegments is the tessellation resolution for round shapes.
const cylinderSegments = 16

// vertex is one tessellated corner: local position plus texture
// coordinates.
type vertex struct {
	pos mgl64.Vec3
	uv  mgl64.Vec2
}

// triangle is a tessellated face with a per-face local-space normal.
type triangle struct {
	a, b, c vertex
	normal  mgl64.Vec3
}

// tessellate converts a primitive's local geometry into triangles.
// Groups, lines, and sprites return nil; they draw through their own
// paths.
func tessellate(n *scene.Node) []triangle {
	switch n.Shape {
	case scene.ShapeBox:
		return boxMesh(n.Size.Mul(0.5))
	case scene.ShapePlane:
		return planeMesh(n.Size.X()/2, n.Size.Y()/2)
	case scene.ShapeCylinder:
		return cylinderMesh(n.Size.X()/2, n.Size.Y()/2)
	case scene.ShapeDisc:
		return discMesh(n.Size.X() / 2)
	}
	return nil
}

// quad splits four corners (counterclockwise) into two triangles sharing
// a normal.
func quad(p0, p1, p2, p3 mgl64.Vec3, normal mgl64.Vec3) []triangle {
	uv := [4]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	return []triangle{
		{a: vertex{p0, uv[0]}, b: vertex{p1, uv[1]}, c: vertex{p2, uv[2]}, normal: normal},
		{a: vertex{p0, uv[0]}, b: vertex{p2, uv[2]}, c: vertex{p3, uv[3]}, normal: normal},
	}
}

func boxMesh(h mgl64.Vec3) []triangle {
	x, y, z := h.X(), h.Y(), h.Z()
	var tris []triangle
	// +Z, -Z, +X, -X, +Y, -Y.
	tris = append(tris, quad(mgl64.Vec3{-x, -y, z}, mgl64.Vec3{x, -y, z}, mgl64.Vec3{x, y, z}, mgl64.Vec3{-x, y, z}, mgl64.Vec3{0, 0, 1})...)
	tris = append(tris, quad(mgl64.Vec3{x, -y, -z}, mgl64.Vec3{-x, -y, -z}, mgl64.Vec3{-x, y, -z}, mgl64.Vec3{x, y, -z}, mgl64.Vec3{0, 0, -1})...)
	tris = append(tris, quad(mgl64.Vec3{x, -y, z}, mgl64.Vec3{x, -y, -z}, mgl64.Vec3{x, y, -z}, mgl64.Vec3{x, y, z}, mgl64.Vec3{1, 0, 0})...)
	tris = append(tris, quad(mgl64.Vec3{-x, -y, -z}, mgl64.Vec3{-x, -y, z}, mgl64.Vec3{-x, y, z}, mgl64.Vec3{-x, y, -z}, mgl64.Vec3{-1, 0, 0})...)
	tris = append(tris, quad(mgl64.Vec3{-x, y, z}, mgl64.Vec3{x, y, z}, mgl64.Vec3{x, y, -z}, mgl64.Vec3{-x, y, -z}, mgl64.Vec3{0, 1, 0})...)
	tris = append(tris, quad(mgl64.Vec3{-x, -y, -z}, mgl64.Vec3{x, -y, -z}, mgl64.Vec3{x, -y, z}, mgl64.Vec3{-x, -y, z}, mgl64.Vec3{0, -1, 0})...)
	return tris
}

func planeMesh(hw, hh float64) []triangle {
	return quad(
		mgl64.Vec3{-hw, -hh, 0}, mgl64.Vec3{hw, -hh, 0},
		mgl64.Vec3{hw, hh, 0}, mgl64.Vec3{-hw, hh, 0},
		mgl64.Vec3{0, 0, 1},
	)
}

func cylinderMesh(radius, halfH float64) []triangle {
	var tris []triangle
	for i := 0; i < cylinderSegments; i++ {
		a0 := 2 * math.Pi * float64(i) / cylinderSegments
		a1 := 2 * math.Pi * float64(i+1) / cylinderSegments
		s0, c0 := math.Sincos(a0)
		s1, c1 := math.Sincos(a1)

		p0 := mgl64.Vec3{radius * c0, -halfH, radius * s0}
		p1 := mgl64.Vec3{radius * c1, -halfH, radius * s1}
		p2 := mgl64.Vec3{radius * c1, halfH, radius * s1}
		p3 := mgl64.Vec3{radius * c0, halfH, radius * s0}
		normal := mgl64.Vec3{(c0 + c1) / 2, 0, (s0 + s1) / 2}.Normalize()

		u0 := float64(i) / cylinderSegments
		u1 := float64(i+1) / cylinderSegments
		tris = append(tris,
			triangle{a: vertex{p0, mgl64.Vec2{u0, 0}}, b: vertex{p1, mgl64.Vec2{u1, 0}}, c: vertex{p2, mgl64.Vec2{u1, 1}}, normal: normal},
			triangle{a: vertex{p0, mgl64.Vec2{u0, 0}}, b: vertex{p2, mgl64.Vec2{u1, 1}}, c: vertex{p3, mgl64.Vec2{u0, 1}}, normal: normal},
		)

		// Caps.
		top := mgl64.Vec3{0, halfH, 0}
		bottom := mgl64.Vec3{0, -halfH, 0}
		tris = append(tris,
			triangle{a: vertex{top, mgl64.Vec2{0.5, 0.5}}, b: vertex{p3, capUV(c0, s0)}, c: vertex{p2, capUV(c1, s1)}, normal: mgl64.Vec3{0, 1, 0}},
			triangle{a: vertex{bottom, mgl64.Vec2{0.5, 0.5}}, b: vertex{p1, capUV(c1, s1)}, c: vertex{p0, capUV(c0, s0)}, normal: mgl64.Vec3{0, -1, 0}},
		)
	}
	return tris
}

func discMesh(radius float64) []triangle {
	center := vertex{mgl64.Vec3{}, mgl64.Vec2{0.5, 0.5}}
	var tris []triangle
	for i := 0; i < cylinderSegments; i++ {
		a0 := 2 * math.Pi * float64(i) / cylinderSegments
		a1 := 2 * math.Pi * float64(i+1) / cylinderSegments
		s0, c0 := math.Sincos(a0)
		s1, c1 := math.Sincos(a1)
		tris = append(tris, triangle{
			a:      center,
			b:      vertex{mgl64.Vec3{radius * c0, radius * s0, 0}, capUV(c0, s0)},
			c:      vertex{mgl64.Vec3{radius * c1, radius * s1, 0}, capUV(c1, s1)},
			normal: mgl64.Vec3{0, 0, 1},
		})
	}
	return tris
}

func capUV(c, s float64) mgl64.Vec2 {
	return mgl64.Vec2{(c + 1) / 2, (s + 1) / 2}
}
