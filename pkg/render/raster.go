package render

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mehinger01/garage-layout-planner/pkg/camera"
	"github.com/mehinger01/garage-layout-planner/pkg/errors"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
)

// Shading constants. One fixed directional light plus an ambient floor
// keeps every face readable without per-pixel lighting cost.
var lightDir = mgl64.Vec3{0.45, 1, 0.55}.Normalize()

const (
	ambient = 0.35
	diffuse = 0.65

	// lineBias pulls wireframe depth slightly toward the camera so
	// envelope edges stay visible on top of coplanar faces.
	lineBias = 1e-4

	// nearW rejects triangles whose vertices cross the camera plane.
	nearW = 1e-4
)

// DefaultBackground matches the dark viewport the layout tool renders
// into.
var DefaultBackground = color.RGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff}

// Renderer rasterizes scenes at a fixed resolution. It reuses its frame
// and depth buffers across frames and is not safe for concurrent use.
type Renderer struct {
	width, height int
	img           *image.RGBA
	depth         []float64

	Background color.RGBA
}

// New creates a renderer. Zero or negative dimensions are rejected.
func New(width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidViewport, "viewport %dx%d is not renderable", width, height)
	}
	return &Renderer{
		width:      width,
		height:     height,
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		depth:      make([]float64, width*height),
		Background: DefaultBackground,
	}, nil
}

// Size returns the renderer's viewport dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// screenVertex is a projected vertex: window coordinates, NDC depth, and
// perspective-correct attribute terms.
type screenVertex struct {
	x, y           float64
	z              float64 // NDC depth, smaller is nearer
	invW           float64
	uOverW, vOverW float64
	shade          float64
}

// drawTriangle is one world-space triangle queued for a render pass.
type drawTriangle struct {
	v0, v1, v2 screenVertex
	mat        scene.Material
	viewDepth  float64
}

// drawLine is a projected wireframe segment.
type drawLine struct {
	v0, v1 screenVertex
	c      color.RGBA
}

// Frame renders one image of the scene through the camera. The returned
// image aliases the renderer's internal buffer and is valid until the
// next Frame call.
func (r *Renderer) Frame(sc *scene.Scene, cam *camera.Orbit) *image.RGBA {
	r.clear()

	view := cam.ViewMatrix()
	vp := cam.ProjMatrix().Mul4(view)
	eye := cam.Eye()

	var opaque, blended []drawTriangle
	var lines []drawLine

	sc.Root.Walk(func(n *scene.Node, world mgl64.Mat4) bool {
		switch n.Shape {
		case scene.ShapeLine:
			p0 := mgl64.TransformCoordinate(n.P1, world)
			p1 := mgl64.TransformCoordinate(n.P2, world)
			if s0, ok0 := r.project(vp, p0, 1); ok0 {
				if s1, ok1 := r.project(vp, p1, 1); ok1 {
					lines = append(lines, drawLine{v0: s0, v1: s1, c: n.Material.Color})
				}
			}
		case scene.ShapeSprite:
			pos := mgl64.TransformCoordinate(mgl64.Vec3{}, world)
			for _, t := range billboard(pos, n.Size.X(), n.Size.Y(), view) {
				if dt, ok := r.prepare(vp, eye, t, mgl64.Ident4(), n.Material); ok {
					blended = append(blended, dt)
				}
			}
		default:
			for _, t := range tessellate(n) {
				dt, ok := r.prepare(vp, eye, t, world, n.Material)
				if !ok {
					continue
				}
				if n.Material.Opaque() {
					opaque = append(opaque, dt)
				} else {
					blended = append(blended, dt)
				}
			}
		}
		return true
	})

	for i := range opaque {
		r.fill(&opaque[i], true)
	}
	for i := range lines {
		r.line(&lines[i])
	}
	// Painter's order for blending: far to near, depth-tested against
	// the opaque pass but never writing depth.
	sort.Slice(blended, func(i, j int) bool { return blended[i].viewDepth > blended[j].viewDepth })
	for i := range blended {
		r.fill(&blended[i], false)
	}
	return r.img
}

func (r *Renderer) clear() {
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.img.SetRGBA(x, y, r.Background)
		}
	}
}

// prepare transforms one triangle to screen space, computes its flat
// shade, and culls it when it crosses the camera plane.
func (r *Renderer) prepare(vp mgl64.Mat4, eye mgl64.Vec3, t triangle, world mgl64.Mat4, mat scene.Material) (drawTriangle, bool) {
	wa := mgl64.TransformCoordinate(t.a.pos, world)
	wb := mgl64.TransformCoordinate(t.b.pos, world)
	wc := mgl64.TransformCoordinate(t.c.pos, world)

	shade := 1.0
	if !mat.Emissive {
		n := mgl64.TransformNormal(t.normal, world)
		// Flip toward the camera so planes and discs light double-sided.
		if n.Dot(eye.Sub(wa)) < 0 {
			n = n.Mul(-1)
		}
		shade = ambient + diffuse*math.Max(0, n.Dot(lightDir))
	}

	v0, ok0 := r.projectUV(vp, wa, t.a.uv, shade)
	v1, ok1 := r.projectUV(vp, wb, t.b.uv, shade)
	v2, ok2 := r.projectUV(vp, wc, t.c.uv, shade)
	if !ok0 || !ok1 || !ok2 {
		return drawTriangle{}, false
	}
	depth := (v0.z + v1.z + v2.z) / 3
	return drawTriangle{v0: v0, v1: v1, v2: v2, mat: mat, viewDepth: depth}, true
}

func (r *Renderer) project(vp mgl64.Mat4, p mgl64.Vec3, shade float64) (screenVertex, bool) {
	return r.projectUV(vp, p, mgl64.Vec2{}, shade)
}

func (r *Renderer) projectUV(vp mgl64.Mat4, p mgl64.Vec3, uv mgl64.Vec2, shade float64) (screenVertex, bool) {
	clip := vp.Mul4x1(mgl64.Vec4{p.X(), p.Y(), p.Z(), 1})
	w := clip.W()
	if w < nearW {
		return screenVertex{}, false
	}
	inv := 1 / w
	return screenVertex{
		x:      (clip.X()*inv + 1) / 2 * float64(r.width),
		y:      (1 - clip.Y()*inv) / 2 * float64(r.height),
		z:      clip.Z() * inv,
		invW:   inv,
		uOverW: uv.X() * inv,
		vOverW: uv.Y() * inv,
		shade:  shade,
	}, true
}

// fill rasterizes one triangle with edge functions and a z-buffer test.
// writeDepth is false for the blended pass.
func (r *Renderer) fill(t *drawTriangle, writeDepth bool) {
	v0, v1, v2 := t.v0, t.v1, t.v2

	area := (v1.x-v0.x)*(v2.y-v0.y) - (v1.y-v0.y)*(v2.x-v0.x)
	if area == 0 {
		return
	}
	if area < 0 {
		// Keep winding positive; geometry renders double-sided.
		v1, v2 = v2, v1
		area = -area
	}

	minX := int(math.Max(0, math.Floor(min3(v0.x, v1.x, v2.x))))
	maxX := int(math.Min(float64(r.width-1), math.Ceil(max3(v0.x, v1.x, v2.x))))
	minY := int(math.Max(0, math.Floor(min3(v0.y, v1.y, v2.y))))
	maxY := int(math.Min(float64(r.height-1), math.Ceil(max3(v0.y, v1.y, v2.y))))
	if minX > maxX || minY > maxY {
		return
	}

	invArea := 1 / area
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := ((v1.x-px)*(v2.y-py) - (v1.y-py)*(v2.x-px)) * invArea
			w1 := ((v2.x-px)*(v0.y-py) - (v2.y-py)*(v0.x-px)) * invArea
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*v0.z + w1*v1.z + w2*v2.z
			idx := y*r.width + x
			if z >= r.depth[idx] {
				continue
			}

			c := t.mat.Color
			if t.mat.Texture != nil {
				invW := w0*v0.invW + w1*v1.invW + w2*v2.invW
				u := (w0*v0.uOverW + w1*v1.uOverW + w2*v2.uOverW) / invW
				v := (w0*v0.vOverW + w1*v1.vOverW + w2*v2.vOverW) / invW
				c = sample(t.mat.Texture, u, v)
			}
			c = shadeColor(c, v0.shade)

			alpha := t.mat.Opacity * float64(c.A) / 255
			if alpha <= 0 {
				continue
			}
			if alpha >= 1 {
				r.img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
			} else {
				r.img.SetRGBA(x, y, blend(r.img.RGBAAt(x, y), c, alpha))
			}
			if writeDepth {
				r.depth[idx] = z
			}
		}
	}
}

// line draws a depth-tested segment with a DDA walk.
func (r *Renderer) line(l *drawLine) {
	dx, dy := l.v1.x-l.v0.x, l.v1.y-l.v0.y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		x := int(l.v0.x + dx*f)
		y := int(l.v0.y + dy*f)
		if x < 0 || x >= r.width || y < 0 || y >= r.height {
			continue
		}
		z := l.v0.z + (l.v1.z-l.v0.z)*f - lineBias
		idx := y*r.width + x
		if z >= r.depth[idx] {
			continue
		}
		r.depth[idx] = z
		r.img.SetRGBA(x, y, l.c)
	}
}

// billboard expands a sprite into two camera-facing triangles using the
// camera's right and up axes from the view matrix.
func billboard(pos mgl64.Vec3, w, h float64, view mgl64.Mat4) []triangle {
	right := mgl64.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)}.Mul(w / 2)
	up := mgl64.Vec3{view.At(1, 0), view.At(1, 1), view.At(1, 2)}.Mul(h / 2)

	p0 := pos.Sub(right).Sub(up)
	p1 := pos.Add(right).Sub(up)
	p2 := pos.Add(right).Add(up)
	p3 := pos.Sub(right).Add(up)
	uv := [4]mgl64.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	return []triangle{
		{a: vertex{p0, uv[0]}, b: vertex{p1, uv[1]}, c: vertex{p2, uv[2]}, normal: mgl64.Vec3{0, 0, 1}},
		{a: vertex{p0, uv[0]}, b: vertex{p2, uv[2]}, c: vertex{p3, uv[3]}, normal: mgl64.Vec3{0, 0, 1}},
	}
}

// sample reads a texture with nearest-neighbor lookup, clamping to the
// image bounds.
func sample(img image.Image, u, v float64) color.RGBA {
	b := img.Bounds()
	x := b.Min.X + int(u*float64(b.Dx()))
	y := b.Min.Y + int((1-v)*float64(b.Dy()))
	x = clampInt(x, b.Min.X, b.Max.X-1)
	y = clampInt(y, b.Min.Y, b.Max.Y-1)
	cr, cg, cb, ca := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8), A: uint8(ca >> 8)}
}

func shadeColor(c color.RGBA, shade float64) color.RGBA {
	if shade >= 1 {
		return c
	}
	return color.RGBA{
		R: uint8(float64(c.R) * shade),
		G: uint8(float64(c.G) * shade),
		B: uint8(float64(c.B) * shade),
		A: c.A,
	}
}

func blend(dst, src color.RGBA, alpha float64) color.RGBA {
	inv := 1 - alpha
	return color.RGBA{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
		A: 0xff,
	}
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
