package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mehinger01/garage-layout-planner/pkg/errors"
	"github.com/mehinger01/garage-layout-planner/pkg/layout"
)

var testEnv = layout.Envelope{Width: 300, Depth: 300, Height: 146}

func TestParseView(t *testing.T) {
	tests := []struct {
		in      string
		want    View
		wantErr bool
	}{
		{in: "corner", want: ViewCorner},
		{in: "TOP", want: ViewTop},
		{in: "  front ", want: ViewFront},
		{in: "side", want: ViewSide},
		{in: "diagonal", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseView(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseView(%q): expected error", tt.in)
			} else if errors.GetCode(err) != errors.ErrCodeInvalidView {
				t.Errorf("ParseView(%q): code = %v, want %v", tt.in, errors.GetCode(err), errors.ErrCodeInvalidView)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseView(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseView(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewStartsAtCorner(t *testing.T) {
	c := New(testEnv)
	az, pol, dist := c.Angles()
	if az != math.Pi/4 || pol != math.Pi/4 || dist != 15 {
		t.Errorf("initial angles = (%v, %v, %v), want (pi/4, pi/4, 15)", az, pol, dist)
	}
	// The target sits at the floor center lifted to 30% of mid-height.
	target := c.Target()
	if target.X() != 3 || target.Z() != 3 {
		t.Errorf("target xz = (%v, %v), want (3, 3)", target.X(), target.Z())
	}
	wantY := 146 * 0.02 / 2 * 0.3
	if math.Abs(target.Y()-wantY) > 1e-12 {
		t.Errorf("target y = %v, want %v", target.Y(), wantY)
	}
}

func TestRotateClampsPolar(t *testing.T) {
	c := New(testEnv)

	// Drag far downward: polar pins at its upper bound, eye nearly level.
	c.Rotate(0, 1e6)
	if _, pol, _ := c.Angles(); pol != math.Pi/2-0.1 {
		t.Errorf("polar after huge down-drag = %v, want %v", pol, math.Pi/2-0.1)
	}
	if c.Eye().Y() <= c.Target().Y() {
		t.Error("eye should stay above the target at the polar clamp")
	}

	// Drag far upward: polar pins at its lower bound, never crossing zero.
	c.Rotate(0, -1e6)
	if _, pol, _ := c.Angles(); pol != 0.1 {
		t.Errorf("polar after huge up-drag = %v, want 0.1", pol)
	}
}

func TestRotateAzimuthUnclamped(t *testing.T) {
	c := New(testEnv)
	c.Rotate(1000, 0) // ten radians, past a full revolution
	az, _, _ := c.Angles()
	want := math.Pi/4 + 10
	if math.Abs(az-want) > 1e-12 {
		t.Errorf("azimuth = %v, want %v", az, want)
	}
}

func TestZoomClamps(t *testing.T) {
	c := New(testEnv)
	c.Zoom(-1e6)
	if _, _, dist := c.Angles(); dist != MinDistance {
		t.Errorf("distance after huge zoom in = %v, want %v", dist, MinDistance)
	}
	c.Zoom(1e6)
	if _, _, dist := c.Angles(); dist != MaxDistance {
		t.Errorf("distance after huge zoom out = %v, want %v", dist, MaxDistance)
	}
	c.Zoom(-500)
	if _, _, dist := c.Angles(); dist != MaxDistance-5 {
		t.Errorf("distance = %v, want %v", dist, MaxDistance-5)
	}
}

func TestEyeOnOrbitSphere(t *testing.T) {
	c := New(testEnv)
	c.Rotate(37, -12)
	c.Zoom(250)
	_, _, dist := c.Angles()
	center := mgl64.Vec3{3, 1.46, 3}
	got := c.Eye().Sub(center).Len()
	if math.Abs(got-dist) > 1e-9 {
		t.Errorf("eye-to-center distance = %v, want %v", got, dist)
	}
}

func TestPresetsNonCumulative(t *testing.T) {
	c := New(testEnv)
	c.Rotate(123, -45)
	c.Zoom(300)
	if err := c.SetView(ViewTop); err != nil {
		t.Fatalf("SetView: %v", err)
	}
	first := c.Eye()

	c.Rotate(-77, 20)
	if err := c.SetView(ViewTop); err != nil {
		t.Fatalf("SetView: %v", err)
	}
	if second := c.Eye(); second != first {
		t.Errorf("preset eye drifted: %v vs %v", second, first)
	}

	if err := c.SetView(View("oblique")); err == nil {
		t.Error("SetView with unknown preset: expected error")
	}
}

func TestSetViewportIgnoresDegenerate(t *testing.T) {
	c := New(testEnv)
	c.SetViewport(1920, 1080)
	want := c.ProjMatrix()
	c.SetViewport(0, 1080)
	c.SetViewport(640, -1)
	if got := c.ProjMatrix(); got != want {
		t.Error("degenerate viewport changed the projection")
	}
}

func TestFrontViewLooksAlongZ(t *testing.T) {
	c := New(testEnv)
	if err := c.SetView(ViewFront); err != nil {
		t.Fatalf("SetView: %v", err)
	}
	// At the front preset the azimuth is zero and the polar angle nearly
	// flat, so the eye sits east of center at roughly target height.
	eye := c.Eye()
	if eye.X() <= c.Target().X() {
		t.Errorf("front eye x = %v, want > center x %v", eye.X(), c.Target().X())
	}
	if math.Abs(eye.Z()-3) > 1e-9 {
		t.Errorf("front eye z = %v, want 3", eye.Z())
	}
}
