package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mehinger01/garage-layout-planner/pkg/cache"
	"github.com/mehinger01/garage-layout-planner/pkg/camera"
	"github.com/mehinger01/garage-layout-planner/pkg/errors"
	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/observability"
	"github.com/mehinger01/garage-layout-planner/pkg/render"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
	"github.com/mehinger01/garage-layout-planner/pkg/scene/build"
	"github.com/mehinger01/garage-layout-planner/pkg/store"
	"github.com/mehinger01/garage-layout-planner/pkg/texture"
)

// Server serves a composed scene over HTTP. The scene is built once at
// startup; visibility toggles mutate it under a mutex shared by the
// render and zone handlers.
type Server struct {
	cfg      Config
	logger   *log.Logger
	plan     *layout.Plan
	planHash string

	frames cache.Cache
	keyer  cache.Keyer
	plans  store.Store

	mu sync.Mutex
	sc *scene.Scene
}

// New builds the scene for plan and wires the configured cache and store
// backends. Unreachable Redis or Mongo backends degrade to in-process
// equivalents with a warning rather than failing startup.
func New(ctx context.Context, cfg Config, plan *layout.Plan, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	var buf bytes.Buffer
	if err := layout.WriteJSON(plan, &buf); err != nil {
		return nil, err
	}

	observability.Scene().OnBuildStart(ctx, len(plan.Zones))
	buildStart := time.Now()
	sc := build.Build(plan, texture.New())
	observability.Scene().OnBuildComplete(ctx, sc.Root.Count(), time.Since(buildStart), nil)

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		plan:     plan,
		planHash: cache.Hash(buf.Bytes()),
		keyer:    cache.NewDefaultKeyer(),
		sc:       sc,
	}

	s.frames = openCache(ctx, cfg.Cache, logger)
	s.plans = openStore(ctx, cfg.Store, logger)

	name := cfg.PlanName
	if name == "" {
		name = "default"
	}
	if err := s.plans.Put(ctx, name, plan); err != nil {
		return nil, err
	}
	return s, nil
}

func openCache(ctx context.Context, cfg CacheConfig, logger *log.Logger) cache.Cache {
	switch cfg.Backend {
	case "file":
		c, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			logger.Warn("frame cache unavailable, disabling", "dir", cfg.Dir, "err", err)
			return cache.NewNullCache()
		}
		return c
	case "redis":
		c, err := cache.NewRedisCache(ctx, cfg.Addr, cfg.Password, cfg.DB)
		if err != nil {
			logger.Warn("redis unreachable, disabling frame cache", "addr", cfg.Addr, "err", err)
			return cache.NewNullCache()
		}
		return c
	default:
		return cache.NewNullCache()
	}
}

func openStore(ctx context.Context, cfg StoreConfig, logger *log.Logger) store.Store {
	if cfg.Backend == "mongo" {
		st, err := store.NewMongoStore(ctx, cfg.URI, cfg.Database)
		if err != nil {
			logger.Warn("mongo unreachable, using in-memory plan store", "uri", cfg.URI, "err", err)
			return store.NewMemoryStore()
		}
		return st
	}
	return store.NewMemoryStore()
}

// Router builds the HTTP route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/plan", s.handlePlan)
	r.Get("/api/zones", s.handleZones)
	r.Get("/render.png", s.handleRender)
	r.Post("/api/visibility/{type}", s.handleVisibility)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return errors.Wrap(errors.ErrCodeNetwork, err, "http server")
	}
}

// Close releases the cache and store backends.
func (s *Server) Close() error {
	err := s.frames.Close()
	if cerr := s.plans.Close(context.Background()); err == nil {
		err = cerr
	}
	return err
}

// observe logs each request and feeds the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", elapsed.Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	name := s.cfg.PlanName
	if name == "" {
		name = "default"
	}
	plan, err := s.plans.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := layout.WriteJSON(plan, w); err != nil {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	}
}

// zoneEntry is the wire shape of one /api/zones element.
type zoneEntry struct {
	Type    string  `json:"type"`
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Visible bool    `json:"visible"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Depth   float64 `json:"depth"`
	Height  float64 `json:"height"`
}

func (s *Server) handleZones(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	entries := make([]zoneEntry, 0, len(s.plan.Zones))
	for i := range s.plan.Zones {
		z := &s.plan.Zones[i]
		info := z.Type.Info()
		entries = append(entries, zoneEntry{
			Type:    string(z.Type),
			Name:    z.Name,
			Label:   info.Label,
			Color:   z.Color,
			Visible: s.sc.Visible(z.Type),
			X:       z.X,
			Y:       z.Y,
			Width:   z.Width,
			Depth:   z.Depth,
			Height:  z.Height,
		})
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view := camera.ViewCorner
	if raw := q.Get("view"); raw != "" {
		v, err := camera.ParseView(raw)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		view = v
	}

	width, err := dimension(q.Get("w"), s.cfg.Render.DefaultWidth, s.cfg.Render.MaxWidth)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	height, err := dimension(q.Get("h"), s.cfg.Render.DefaultHeight, s.cfg.Render.MaxHeight)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	key := s.keyer.FrameKey(s.planHash, string(view), width, height, s.visibleTypes())

	if data, ok, err := s.frames.Get(r.Context(), key); err == nil && ok {
		observability.Cache().OnCacheHit(r.Context(), "frame")
		writePNG(w, data)
		return
	} else if err != nil {
		s.logger.Warn("frame cache read failed", "err", err)
	}
	observability.Cache().OnCacheMiss(r.Context(), "frame")

	data, err := s.renderFrame(r.Context(), view, width, height)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.frames.Set(r.Context(), key, data, s.cfg.Cache.TTL.Duration); err != nil {
		s.logger.Warn("frame cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(r.Context(), "frame", len(data))
	}
	writePNG(w, data)
}

func (s *Server) renderFrame(ctx context.Context, view camera.View, width, height int) ([]byte, error) {
	rend, err := render.New(width, height)
	if err != nil {
		return nil, err
	}

	cam := camera.New(s.plan.Envelope)
	if err := cam.SetView(view); err != nil {
		return nil, err
	}
	cam.SetViewport(width, height)

	start := time.Now()
	observability.Scene().OnFrameStart(ctx, width, height)

	s.mu.Lock()
	img := rend.Frame(s.sc, cam)
	s.mu.Unlock()

	observability.Scene().OnFrameComplete(ctx, width, height, time.Since(start))
	return render.EncodePNG(img)
}

func (s *Server) handleVisibility(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "type")
	t := layout.ZoneType(raw)
	known := false
	for _, candidate := range layout.Types {
		if t == candidate {
			known = true
			break
		}
	}
	if !known {
		s.writeError(w, r, errors.New(errors.ErrCodeZoneNotFound, "unknown zone type %q", raw))
		return
	}

	s.mu.Lock()
	shown := s.sc.Toggle(t)
	s.mu.Unlock()

	observability.Scene().OnVisibilityToggle(r.Context(), string(t), shown)
	writeJSON(w, http.StatusOK, map[string]any{"type": raw, "visible": shown})
}

// visibleTypes returns the currently visible categories sorted for use
// as a cache key component.
func (s *Server) visibleTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, t := range layout.Types {
		if s.sc.Visible(t) {
			out = append(out, string(t))
		}
	}
	sort.Strings(out)
	return out
}

func dimension(raw string, fallback, max int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidViewport, "invalid dimension %q", raw)
	}
	if v > max {
		return 0, errors.New(errors.ErrCodeInvalidViewport, "dimension %d exceeds maximum %d", v, max)
	}
	return v, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidView, errors.ErrCodeInvalidViewport,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidLayout:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodePlanNotFound, errors.ErrCodeZoneNotFound,
		errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
