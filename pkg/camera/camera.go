package camera

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mehinger01/garage-layout-planner/pkg/errors"
	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
)

// Orbit limits. The polar clamp keeps the eye strictly above the floor and
// strictly off the vertical axis, where the look-at basis would degenerate.
const (
	MinDistance = 5.0
	MaxDistance = 30.0

	minPolar = 0.1
	maxPolar = math.Pi/2 - 0.1

	// One pixel of drag and one unit of wheel delta both move the orbit by
	// this factor.
	inputScale = 0.01

	fovDegrees = 50.0
	nearPlane  = 0.1
	farPlane   = 1000.0
)

// View names a canonical camera preset.
type View string

const (
	ViewCorner View = "corner"
	ViewTop    View = "top"
	ViewFront  View = "front"
	ViewSide   View = "side"
)

// Views lists the presets in display order.
var Views = []View{ViewCorner, ViewTop, ViewFront, ViewSide}

type orbitAngles struct {
	azimuth  float64
	polar    float64
	distance float64
}

var presets = map[View]orbitAngles{
	ViewCorner: {azimuth: math.Pi / 4, polar: math.Pi / 4, distance: 15},
	ViewTop:    {azimuth: 0, polar: minPolar, distance: 15},
	ViewFront:  {azimuth: 0, polar: maxPolar, distance: 15},
	ViewSide:   {azimuth: math.Pi / 2, polar: math.Pi / 3, distance: 15},
}

// ParseView resolves a user-supplied view name.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := presets[v]; !ok {
		return "", errors.New(errors.ErrCodeInvalidView, "unknown view %q (valid: corner, top, front, side)", s)
	}
	return v, nil
}

// Orbit is a camera circling the scene center. The zero value is not usable;
// construct with New.
type Orbit struct {
	center mgl64.Vec3
	angles orbitAngles

	eye    mgl64.Vec3
	target mgl64.Vec3
	aspect float64
}

// New positions an orbit camera around the scaled envelope center, starting
// at the corner preset with a square viewport.
func New(env layout.Envelope) *Orbit {
	c := &Orbit{
		center: mgl64.Vec3{
			env.Width * scene.InchScale / 2,
			env.Height * scene.InchScale / 2,
			env.Depth * scene.InchScale / 2,
		},
		angles: presets[ViewCorner],
		aspect: 1,
	}
	c.reposition()
	return c
}

// reposition derives eye and target from the current orbit state. The target
// sits at the floor center, lifted to 30% of the envelope mid-height so tall
// scenes tilt the view slightly upward.
func (c *Orbit) reposition() {
	sinP, cosP := math.Sincos(c.angles.polar)
	sinA, cosA := math.Sincos(c.angles.azimuth)
	c.eye = c.center.Add(mgl64.Vec3{
		c.angles.distance * sinP * cosA,
		c.angles.distance * cosP,
		c.angles.distance * sinP * sinA,
	})
	c.target = mgl64.Vec3{c.center.X(), c.center.Y() * 0.3, c.center.Z()}
}

// Rotate applies a drag gesture. Deltas are in pixels; azimuth wraps freely
// while the polar angle is clamped to its band.
func (c *Orbit) Rotate(dx, dy float64) {
	c.angles.azimuth += dx * inputScale
	c.angles.polar = clamp(c.angles.polar+dy*inputScale, minPolar, maxPolar)
	c.reposition()
}

// Zoom applies a wheel gesture. Positive delta moves the eye away.
func (c *Orbit) Zoom(delta float64) {
	c.angles.distance = clamp(c.angles.distance+delta*inputScale, MinDistance, MaxDistance)
	c.reposition()
}

// SetView jumps to a preset, replacing all three orbit parameters. Applying
// the same preset twice lands on the same pose.
func (c *Orbit) SetView(v View) error {
	a, ok := presets[v]
	if !ok {
		return errors.New(errors.ErrCodeInvalidView, "unknown view %q", string(v))
	}
	c.angles = a
	c.reposition()
	return nil
}

// SetViewport updates the aspect ratio. Degenerate sizes are ignored so a
// terminal resize to zero rows cannot poison the projection.
func (c *Orbit) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float64(width) / float64(height)
}

// Eye returns the camera position in scene units.
func (c *Orbit) Eye() mgl64.Vec3 { return c.eye }

// Target returns the look-at point in scene units.
func (c *Orbit) Target() mgl64.Vec3 { return c.target }

// Angles returns the current azimuth, polar angle, and distance.
func (c *Orbit) Angles() (azimuth, polar, distance float64) {
	return c.angles.azimuth, c.angles.polar, c.angles.distance
}

// ViewMatrix returns the world-to-camera transform.
func (c *Orbit) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.eye, c.target, mgl64.Vec3{0, 1, 0})
}

// ProjMatrix returns the perspective projection for the current viewport.
func (c *Orbit) ProjMatrix() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(fovDegrees), c.aspect, nearPlane, farPlane)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
