package scene

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Shape selects the primitive geometry of a node.
type Shape int

// Primitive shapes. Groups carry no geometry of their own.
const (
	ShapeGroup Shape = iota
	ShapeBox
	ShapePlane
	ShapeCylinder
	ShapeDisc
	ShapeLine
	ShapeSprite
)

// String returns the shape name for diagnostics and graph output.
func (s Shape) String() string {
	switch s {
	case ShapeGroup:
		return "group"
	case ShapeBox:
		return "box"
	case ShapePlane:
		return "plane"
	case ShapeCylinder:
		return "cylinder"
	case ShapeDisc:
		return "disc"
	case ShapeLine:
		return "line"
	case ShapeSprite:
		return "sprite"
	}
	return "unknown"
}

// Material holds the surface properties of a primitive.
type Material struct {
	Color    color.RGBA
	Opacity  float64     // 0 transparent .. 1 opaque
	Texture  image.Image // optional; sampled with nearest-neighbor
	Emissive bool        // skip lighting, render at full brightness
}

// Opaque reports whether the material needs no blending pass.
func (m Material) Opaque() bool {
	return m.Opacity >= 1 && m.Color.A == 0xff
}

// Node is one element of the scene tree: a group or a primitive with its
// own local transform. Local geometry is centered at the node origin;
// boxes span ±Size/2 on each axis, planes span ±Size/2 in X and Y facing
// ±Z, cylinders and discs stand on the Y axis with Size.X as diameter.
type Node struct {
	ID   uuid.UUID
	Name string

	Shape    Shape
	Size     mgl64.Vec3
	Material Material

	// Local pose. Rotation is applied before translation, yaw about +Y,
	// then pitch about +X, then roll about +Z.
	Pos   mgl64.Vec3
	Yaw   float64
	Pitch float64
	Roll  float64

	// Line endpoints in local space, used only by ShapeLine.
	P1, P2 mgl64.Vec3

	Visible  bool
	Pickable bool

	children []*Node
	parent   *Node
}

// newNode creates a node with the defaults every constructor shares.
func newNode(name string, shape Shape) *Node {
	return &Node{
		ID:       uuid.New(),
		Name:     name,
		Shape:    shape,
		Material: Material{Color: color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}, Opacity: 1},
		Visible:  true,
		Pickable: shape != ShapeGroup && shape != ShapeLine && shape != ShapeSprite,
	}
}

// NewGroup creates an empty group node.
func NewGroup(name string) *Node {
	return newNode(name, ShapeGroup)
}

// NewBox creates a box primitive spanning ±size/2 locally.
func NewBox(name string, size mgl64.Vec3, mat Material) *Node {
	n := newNode(name, ShapeBox)
	n.Size = size
	n.Material = mat
	return n
}

// NewPlane creates a plane primitive of width w and height h, lying in the
// local XY plane and facing ±Z. Planes render double-sided.
func NewPlane(name string, w, h float64, mat Material) *Node {
	n := newNode(name, ShapePlane)
	n.Size = mgl64.Vec3{w, h, 0}
	n.Material = mat
	return n
}

// NewCylinder creates a cylinder standing on the local Y axis with the
// given diameter and height.
func NewCylinder(name string, diameter, height float64, mat Material) *Node {
	n := newNode(name, ShapeCylinder)
	n.Size = mgl64.Vec3{diameter, height, diameter}
	n.Material = mat
	return n
}

// NewDisc creates a flat disc of the given diameter, lying in the local XY
// plane and facing ±Z.
func NewDisc(name string, diameter float64, mat Material) *Node {
	n := newNode(name, ShapeDisc)
	n.Size = mgl64.Vec3{diameter, diameter, 0}
	n.Material = mat
	return n
}

// NewLine creates a line segment between two local-space points.
func NewLine(name string, p1, p2 mgl64.Vec3, c color.RGBA) *Node {
	n := newNode(name, ShapeLine)
	n.P1, n.P2 = p1, p2
	n.Material = Material{Color: c, Opacity: 1}
	return n
}

// NewSprite creates a camera-facing billboard of width w and height h in
// world units, textured with img.
func NewSprite(name string, w, h float64, img image.Image) *Node {
	n := newNode(name, ShapeSprite)
	n.Size = mgl64.Vec3{w, h, 0}
	n.Material = Material{Color: color.RGBA{A: 0xff}, Opacity: 1, Texture: img, Emissive: true}
	return n
}

// Add appends children and records this node as their parent. It returns
// the receiver so construction code can chain.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Parent returns the parent node, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child slice. Callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// At positions the node and returns it, for chained construction.
func (n *Node) At(x, y, z float64) *Node {
	n.Pos = mgl64.Vec3{x, y, z}
	return n
}

// RotatedY sets the yaw rotation and returns the node.
func (n *Node) RotatedY(rad float64) *Node {
	n.Yaw = rad
	return n
}

// RotatedX sets the pitch rotation and returns the node.
func (n *Node) RotatedX(rad float64) *Node {
	n.Pitch = rad
	return n
}

// RotatedZ sets the roll rotation and returns the node.
func (n *Node) RotatedZ(rad float64) *Node {
	n.Roll = rad
	return n
}

// LocalMatrix returns the node's local transform: translation composed
// with yaw, pitch, and roll in that application order.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	m := mgl64.Translate3D(n.Pos.X(), n.Pos.Y(), n.Pos.Z())
	if n.Yaw != 0 {
		m = m.Mul4(mgl64.HomogRotate3DY(n.Yaw))
	}
	if n.Pitch != 0 {
		m = m.Mul4(mgl64.HomogRotate3DX(n.Pitch))
	}
	if n.Roll != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(n.Roll))
	}
	return m
}

// WorldMatrix composes the local matrices from the root down to this node.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.WorldMatrix().Mul4(n.LocalMatrix())
}

// WorldPos returns the node origin in world space.
func (n *Node) WorldPos() mgl64.Vec3 {
	return mgl64.TransformCoordinate(mgl64.Vec3{}, n.WorldMatrix())
}

// Walk visits the subtree rooted at n in depth-first order, passing each
// node together with its accumulated world matrix. Subtrees under an
// invisible node are skipped entirely. Returning false from fn stops the
// walk.
func (n *Node) Walk(fn func(*Node, mgl64.Mat4) bool) {
	n.walk(mgl64.Ident4(), fn)
}

func (n *Node) walk(parent mgl64.Mat4, fn func(*Node, mgl64.Mat4) bool) bool {
	if !n.Visible {
		return true
	}
	world := parent.Mul4(n.LocalMatrix())
	if !fn(n, world) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(world, fn) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the subtree, including n itself and
// invisible nodes.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.children {
		total += c.Count()
	}
	return total
}
