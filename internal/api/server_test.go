package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/observability"
)

func testPlan() *layout.Plan {
	return &layout.Plan{
		Envelope: layout.Envelope{Width: 300, Depth: 300, Height: 146},
		Zones: []layout.Zone{
			{Type: layout.ZoneWorkbench, Name: "Bench", X: 30, Width: 96, Depth: 66, Height: 36},
			{Type: layout.ZoneVehicle, Name: "Sedan", X: 150, Y: 80, Width: 70, Depth: 180, Height: 57, VehicleType: layout.VehicleSedan},
		},
	}
}

func testServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	s, err := New(context.Background(), cfg, testPlan(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func post(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func TestPlanEndpoint(t *testing.T) {
	s := testServer(t, DefaultConfig())
	rec := get(t, s.Router(), "/api/plan")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	p, err := layout.ReadJSON(rec.Body)
	if err != nil {
		t.Fatalf("response not a plan: %v", err)
	}
	if p.Envelope.Width != 300 || len(p.Zones) != 2 {
		t.Errorf("plan round trip mismatch: envelope %+v, %d zones", p.Envelope, len(p.Zones))
	}
}

func TestZonesAndVisibilityToggle(t *testing.T) {
	s := testServer(t, DefaultConfig())
	r := s.Router()

	zones := func() map[string]bool {
		rec := get(t, r, "/api/zones")
		if rec.Code != http.StatusOK {
			t.Fatalf("zones status = %d", rec.Code)
		}
		var entries []zoneEntry
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Fatalf("decode zones: %v", err)
		}
		vis := make(map[string]bool, len(entries))
		for _, e := range entries {
			vis[e.Name] = e.Visible
		}
		return vis
	}

	if vis := zones(); !vis["Bench"] || !vis["Sedan"] {
		t.Fatalf("all zones should start visible, got %v", vis)
	}

	rec := post(t, r, "/api/visibility/workbench")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d: %s", rec.Code, rec.Body.String())
	}
	var toggled struct {
		Type    string `json:"type"`
		Visible bool   `json:"visible"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("decode toggle: %v", err)
	}
	if toggled.Type != "workbench" || toggled.Visible {
		t.Errorf("toggle = %+v, want workbench hidden", toggled)
	}

	if vis := zones(); vis["Bench"] || !vis["Sedan"] {
		t.Errorf("only the workbench should be hidden, got %v", vis)
	}

	post(t, r, "/api/visibility/workbench")
	if vis := zones(); !vis["Bench"] {
		t.Errorf("second toggle should restore the workbench")
	}
}

func TestVisibilityUnknownType(t *testing.T) {
	s := testServer(t, DefaultConfig())
	rec := post(t, s.Router(), "/api/visibility/kayak_rack")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Code != "ZONE_NOT_FOUND" {
		t.Errorf("code = %q, want ZONE_NOT_FOUND", body.Code)
	}
}

func TestRenderPNG(t *testing.T) {
	s := testServer(t, DefaultConfig())
	rec := get(t, s.Router(), "/render.png?view=top&w=64&h=48")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("frame size = %dx%d, want 64x48", b.Dx(), b.Dy())
	}
}

func TestRenderRejectsBadParams(t *testing.T) {
	s := testServer(t, DefaultConfig())
	r := s.Router()

	tests := []struct {
		name string
		path string
		code string
	}{
		{"unknown view", "/render.png?view=underneath", "INVALID_VIEW"},
		{"zero width", "/render.png?w=0", "INVALID_VIEWPORT"},
		{"non-numeric height", "/render.png?h=tall", "INVALID_VIEWPORT"},
		{"oversized", "/render.png?w=100000", "INVALID_VIEWPORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, r, tt.path)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var body struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits   atomic.Int64
	misses atomic.Int64
}

func (c *countingCacheHooks) OnCacheHit(context.Context, string)  { c.hits.Add(1) }
func (c *countingCacheHooks) OnCacheMiss(context.Context, string) { c.misses.Add(1) }

func TestRenderFrameCache(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	cfg := DefaultConfig()
	cfg.Cache.Backend = "file"
	cfg.Cache.Dir = t.TempDir()
	cfg.Cache.TTL = Duration{time.Hour}

	s := testServer(t, cfg)
	r := s.Router()

	first := get(t, r, "/render.png?view=front&w=64&h=48")
	second := get(t, r, "/render.png?view=front&w=64&h=48")
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("render status = %d / %d", first.Code, second.Code)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached frame differs from the rendered one")
	}
	if hooks.misses.Load() != 1 || hooks.hits.Load() != 1 {
		t.Errorf("cache events = %d misses, %d hits, want 1 and 1",
			hooks.misses.Load(), hooks.hits.Load())
	}

	// Hiding a category changes the key, so the next render is a miss.
	post(t, r, "/api/visibility/vehicle")
	third := get(t, r, "/render.png?view=front&w=64&h=48")
	if third.Code != http.StatusOK {
		t.Fatalf("render after toggle status = %d", third.Code)
	}
	if hooks.misses.Load() != 2 {
		t.Errorf("visibility change should miss the cache, misses = %d", hooks.misses.Load())
	}
	if bytes.Equal(first.Body.Bytes(), third.Body.Bytes()) {
		t.Error("frame with the vehicle hidden should differ")
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("empty path should load defaults: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.Cache.Backend != "null" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	if _, err := LoadConfig("does-not-exist.toml"); err == nil {
		t.Error("missing file should error")
	}
}

type buildEventHooks struct {
	observability.NoopSceneHooks
	starts    atomic.Int64
	completes atomic.Int64
}

func (h *buildEventHooks) OnBuildStart(context.Context, int) { h.starts.Add(1) }
func (h *buildEventHooks) OnBuildComplete(context.Context, int, time.Duration, error) {
	h.completes.Add(1)
}

func TestNewEmitsBuildEvents(t *testing.T) {
	hooks := &buildEventHooks{}
	observability.SetSceneHooks(hooks)
	t.Cleanup(observability.Reset)

	testServer(t, DefaultConfig())
	if hooks.starts.Load() != 1 || hooks.completes.Load() != 1 {
		t.Fatalf("build events = %d start / %d complete, want 1/1",
			hooks.starts.Load(), hooks.completes.Load())
	}
}
