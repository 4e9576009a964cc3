package pick

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mehinger01/garage-layout-planner/pkg/camera"
	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
)

// flatThickness is the half-extent assigned to planes and discs so the
// slab test treats them as thin boxes.
const flatThickness = 0.005

// Ray is a world-space ray with a normalized direction.
type Ray struct {
	Origin, Dir mgl64.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// ScreenRay builds the ray through a pixel. Pixel coordinates have their
// origin at the top left; width and height are the viewport size the
// camera was last configured with.
func ScreenRay(cam *camera.Orbit, px, py float64, width, height int) Ray {
	ndcX := 2*px/float64(width) - 1
	ndcY := 1 - 2*py/float64(height)

	inv := cam.ProjMatrix().Mul4(cam.ViewMatrix()).Inv()
	near := unproject(inv, mgl64.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(inv, mgl64.Vec4{ndcX, ndcY, 1, 1})

	return Ray{Origin: cam.Eye(), Dir: far.Sub(near).Normalize()}
}

func unproject(inv mgl64.Mat4, ndc mgl64.Vec4) mgl64.Vec3 {
	v := inv.Mul4x1(ndc)
	return mgl64.Vec3{v.X() / v.W(), v.Y() / v.W(), v.Z() / v.W()}
}

// Hit records one ray-primitive intersection.
type Hit struct {
	Node     *scene.Node
	Zone     *layout.Zone // nil for static geometry
	Distance float64
}

// Cast intersects a ray against every visible, pickable primitive and
// returns the hits sorted nearest first.
func Cast(sc *scene.Scene, r Ray) []Hit {
	var hits []Hit
	sc.Root.Walk(func(n *scene.Node, world mgl64.Mat4) bool {
		if !n.Pickable {
			return true
		}
		half, ok := halfExtents(n)
		if !ok {
			return true
		}
		// The scene uses rigid transforms only, so the ray parameter is
		// preserved when testing in node-local space.
		inv := world.Inv()
		local := Ray{
			Origin: mgl64.TransformCoordinate(r.Origin, inv),
			Dir:    mgl64.TransformNormal(r.Dir, inv),
		}
		if t, ok := slabTest(local, half); ok {
			hits = append(hits, Hit{Node: n, Zone: sc.ZoneFor(n), Distance: t})
		}
		return true
	})
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// halfExtents returns the local-space bounding half-extents for a
// primitive, or false for shapes that cannot be picked.
func halfExtents(n *scene.Node) (mgl64.Vec3, bool) {
	switch n.Shape {
	case scene.ShapeBox, scene.ShapeCylinder:
		return n.Size.Mul(0.5), true
	case scene.ShapePlane, scene.ShapeDisc:
		return mgl64.Vec3{n.Size.X() / 2, n.Size.Y() / 2, flatThickness}, true
	}
	return mgl64.Vec3{}, false
}

// slabTest intersects a ray with an axis-aligned box spanning ±half. It
// returns the entry parameter, or false when the ray misses or the box
// lies entirely behind the origin.
func slabTest(r Ray, half mgl64.Vec3) (float64, bool) {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		if r.Dir[axis] == 0 {
			// The ray runs parallel to this slab: a zero direction
			// would turn the bound math into 0*Inf = NaN, so test the
			// origin against the slab directly.
			if r.Origin[axis] < -half[axis] || r.Origin[axis] > half[axis] {
				return 0, false
			}
			continue
		}
		invD := 1 / r.Dir[axis]
		t0 := (-half[axis] - r.Origin[axis]) * invD
		t1 := (half[axis] - r.Origin[axis]) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return 0, false
		}
	}
	if tMax < 0 {
		return 0, false
	}
	if tMin < 0 {
		// Origin inside the box.
		return tMax, true
	}
	return tMin, true
}
