package cli

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/mehinger01/garage-layout-planner/pkg/camera"
	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/observability"
)

const samplePlan = `{
  "envelope": {"width": 300, "depth": 300, "height": 146},
  "features": {
    "garageDoor": {"wall": "S", "position": 54, "width": 96, "height": 84}
  },
  "zones": [
    {"type": "workbench", "name": "Bench", "x": 30, "y": 0, "width": 96, "depth": 66, "height": 36},
    {"type": "vehicle", "name": "Sedan", "x": 150, "y": 80, "width": 70, "depth": 180, "height": 57, "vehicleType": "sedan"}
  ]
}`

func writeSamplePlan(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, []byte(samplePlan), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"render", "view", "serve", "graph", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestLoadPlan(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)

	plan, err := c.loadPlan(writeSamplePlan(t))
	if err != nil {
		t.Fatalf("loadPlan() error: %v", err)
	}
	if plan.Envelope.Width != 300 || len(plan.Zones) != 2 {
		t.Errorf("plan = %+v", plan)
	}
	if len(plan.Openings) != 1 || plan.Openings[0].Kind != layout.OpeningGarageDoor {
		t.Errorf("garage door should come through the features block, got %+v", plan.Openings)
	}

	if _, err := c.loadPlan("no-such-plan.json"); err == nil {
		t.Error("missing plan file should error")
	}
}

func TestRunRenderWritesPNG(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	out := filepath.Join(t.TempDir(), "out.png")

	err := c.runRender(context.Background(), writeSamplePlan(t), &renderOpts{
		output: out,
		view:   "top",
		width:  64,
		height: 48,
	})
	if err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Errorf("frame = %v, want 64x48", img.Bounds())
	}
}

func TestRunRenderAllViews(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	dir := t.TempDir()

	err := c.runRender(context.Background(), writeSamplePlan(t), &renderOpts{
		output:   filepath.Join(dir, "shot.png"),
		width:    32,
		height:   32,
		allViews: true,
	})
	if err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	for _, v := range camera.Views {
		path := filepath.Join(dir, "shot-"+string(v)+".png")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing %s: %v", path, err)
		}
	}
}

func TestViewerModelKeysAndToggles(t *testing.T) {
	plan, err := layout.ReadJSON(strings.NewReader(samplePlan))
	if err != nil {
		t.Fatal(err)
	}
	m := newViewerModel(context.Background(), plan)
	m.resize(80, 24)

	if m.rend == nil {
		t.Fatal("resize should allocate a renderer")
	}
	if m.canvasW != 80-sidebarWidth || m.canvasH != 22 {
		t.Errorf("canvas = %dx%d", m.canvasW, m.canvasH)
	}

	m.Update(frameTickMsg{})
	if m.frame == "" {
		t.Error("tick should render a frame")
	}
	if m.dirty {
		t.Error("tick should clear the dirty flag")
	}

	// Key 2 toggles the second category (workbench).
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	if m.sc.Visible(layout.ZoneWorkbench) {
		t.Error("key 2 should hide workbenches")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	if !m.sc.Visible(layout.ZoneWorkbench) {
		t.Error("key 2 again should restore workbenches")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if m.view != camera.ViewTop {
		t.Errorf("view = %s, want top", m.view)
	}
	if !m.dirty {
		t.Error("view change should mark the frame dirty")
	}
}

func TestViewerWheelZoom(t *testing.T) {
	plan, err := layout.ReadJSON(strings.NewReader(samplePlan))
	if err != nil {
		t.Fatal(err)
	}
	m := newViewerModel(context.Background(), plan)
	m.resize(80, 24)

	_, _, before := m.cam.Angles()
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress, X: 10, Y: 5})
	_, _, after := m.cam.Angles()
	if after >= before {
		t.Errorf("wheel up should zoom in: %f -> %f", before, after)
	}
}

func TestHalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{0, 0, 255, 255})

	s := halfBlocks(img)
	if strings.Count(s, "▀") != 2 {
		t.Errorf("want 2 half blocks, got %q", s)
	}
	if !strings.Contains(s, "38;2;255;0;0") || !strings.Contains(s, "48;2;0;0;255") {
		t.Errorf("missing truecolor sequences in %q", s)
	}
	// Identical adjacent columns reuse the escape sequence.
	if strings.Count(s, "38;2;255;0;0") != 1 {
		t.Errorf("color runs should not repeat escapes: %q", s)
	}
}

func TestZoneColor(t *testing.T) {
	if got := zoneColor("0xf59e0b"); got != lipgloss.Color("#f59e0b") {
		t.Errorf("zoneColor = %q", got)
	}
}

type recordingSceneHooks struct {
	observability.NoopSceneHooks
	buildStarts int
	buildDone   int
	picks       int
}

func (h *recordingSceneHooks) OnBuildStart(context.Context, int) { h.buildStarts++ }
func (h *recordingSceneHooks) OnBuildComplete(context.Context, int, time.Duration, error) {
	h.buildDone++
}
func (h *recordingSceneHooks) OnPick(context.Context, string, bool) { h.picks++ }

func TestViewerSceneEvents(t *testing.T) {
	rec := &recordingSceneHooks{}
	observability.SetSceneHooks(rec)
	t.Cleanup(observability.Reset)

	plan, err := layout.ReadJSON(strings.NewReader(samplePlan))
	if err != nil {
		t.Fatal(err)
	}
	m := newViewerModel(context.Background(), plan)
	if rec.buildStarts != 1 || rec.buildDone != 1 {
		t.Fatalf("build events = %d start / %d complete, want 1/1", rec.buildStarts, rec.buildDone)
	}

	// A press and release on the canvas without motion in between is a
	// click and reports the pick result.
	m.resize(80, 24)
	m.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress, X: 10, Y: 5})
	m.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease, X: 10, Y: 5})
	if rec.picks != 1 {
		t.Fatalf("picks = %d, want 1", rec.picks)
	}

	// Dragging suppresses the pick.
	m.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress, X: 10, Y: 5})
	m.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion, X: 14, Y: 6})
	m.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease, X: 14, Y: 6})
	if rec.picks != 1 {
		t.Fatalf("picks after drag = %d, want still 1", rec.picks)
	}
}
