package render

import (
	"bytes"
	"context"
	"image/png"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mehinger01/garage-layout-planner/pkg/camera"
	"github.com/mehinger01/garage-layout-planner/pkg/errors"
	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
	"github.com/mehinger01/garage-layout-planner/pkg/scene/build"
	"github.com/mehinger01/garage-layout-planner/pkg/texture"
)

func testPlan() *layout.Plan {
	return &layout.Plan{
		Envelope: layout.Envelope{Width: 300, Depth: 300, Height: 146},
		Zones: []layout.Zone{
			{Type: layout.ZoneVehicle, Name: "Sedan", X: 100, Y: 60, Width: 70, Depth: 180, Height: 57},
		},
	}
}

func TestNewRejectsDegenerateViewport(t *testing.T) {
	for _, dims := range [][2]int{{0, 100}, {100, 0}, {-1, 100}} {
		_, err := New(dims[0], dims[1])
		if err == nil {
			t.Errorf("New(%d, %d): expected error", dims[0], dims[1])
			continue
		}
		if errors.GetCode(err) != errors.ErrCodeInvalidViewport {
			t.Errorf("New(%d, %d): code = %v", dims[0], dims[1], errors.GetCode(err))
		}
	}
}

func TestMeshTriangleCounts(t *testing.T) {
	tests := []struct {
		node *scene.Node
		want int
	}{
		{scene.NewBox("b", mgl64.Vec3{1, 1, 1}, scene.Material{Opacity: 1}), 12},
		{scene.NewPlane("p", 2, 2, scene.Material{Opacity: 1}), 2},
		{scene.NewCylinder("c", 1, 2, scene.Material{Opacity: 1}), cylinderSegments * 4},
		{scene.NewDisc("d", 1, scene.Material{Opacity: 1}), cylinderSegments},
		{scene.NewGroup("g"), 0},
	}
	for _, tt := range tests {
		if got := len(tessellate(tt.node)); got != tt.want {
			t.Errorf("tessellate(%s) = %d triangles, want %d", tt.node.Shape, got, tt.want)
		}
	}
}

func TestFrameDrawsScene(t *testing.T) {
	p := testPlan()
	sc := build.Build(p, texture.New(texture.WithSeed(5)))
	cam := camera.New(p.Envelope)
	cam.SetViewport(160, 120)

	r, err := New(160, 120)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img := r.Frame(sc, cam)

	if got := img.Bounds().Dx(); got != 160 {
		t.Fatalf("frame width = %d, want 160", got)
	}
	// The floor fills the view center from the corner preset; something
	// must have been drawn over the background there.
	if img.RGBAAt(80, 60) == r.Background {
		t.Error("center pixel is still background; nothing rasterized")
	}
	// The corner preset floats above and outside the envelope, so the
	// top-left corner looks past all geometry.
	if img.RGBAAt(0, 0) != r.Background {
		t.Error("corner pixel should remain background")
	}
}

func TestVisibilityChangesFrame(t *testing.T) {
	p := testPlan()
	sc := build.Build(p, texture.New(texture.WithSeed(5)))
	cam := camera.New(p.Envelope)
	cam.SetViewport(160, 120)

	r, err := New(160, 120)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	shown := append([]byte(nil), r.Frame(sc, cam).Pix...)
	sc.SetVisible(layout.ZoneVehicle, false)
	hidden := append([]byte(nil), r.Frame(sc, cam).Pix...)

	if bytes.Equal(shown, hidden) {
		t.Error("hiding the only vehicle left the frame unchanged")
	}

	sc.SetVisible(layout.ZoneVehicle, true)
	restored := r.Frame(sc, cam).Pix
	if !bytes.Equal(shown, restored) {
		t.Error("re-showing the vehicle did not restore the frame")
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	p := testPlan()
	sc := build.Build(p, texture.New(texture.WithSeed(5)))
	cam := camera.New(p.Envelope)
	cam.SetViewport(64, 48)

	r, err := New(64, 48)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := EncodePNG(r.Frame(sc, cam))
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if decoded.Bounds().Dx() != 64 || decoded.Bounds().Dy() != 48 {
		t.Errorf("decoded bounds = %v", decoded.Bounds())
	}
}

func TestLoopPumpsFramesWithoutOverlap(t *testing.T) {
	inFrame := false
	loop := NewLoop(time.Millisecond, func() {
		if inFrame {
			t.Error("redraw re-entered while a frame was in flight")
		}
		inFrame = true
		defer func() { inFrame = false }()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	if err := loop.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Run returned %v, want deadline exceeded", err)
	}
	if loop.Frames() == 0 {
		t.Error("loop completed no frames")
	}
}

func TestLoopCountsOverruns(t *testing.T) {
	loop := NewLoop(time.Millisecond, func() { time.Sleep(5 * time.Millisecond) })
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := loop.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Run returned %v", err)
	}
	if loop.Dropped() == 0 {
		t.Error("overrunning frames should register dropped ticks")
	}
}
