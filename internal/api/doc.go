// Package api implements the garage3d HTTP server.
//
// The server exposes a loaded layout plan over a small JSON API and
// renders PNG frames of the composed scene on demand:
//
//	GET  /api/plan              the full plan document
//	GET  /api/zones             zone list with per-category visibility
//	GET  /render.png            rendered frame (?view=&w=&h=)
//	POST /api/visibility/{type} toggle a zone category
//	GET  /healthz               liveness probe
//
// Rendered frames are cached keyed by plan hash, view, viewport, and the
// set of visible categories, so toggling visibility invalidates naturally.
// Cache and store backends are chosen by configuration and degrade to
// in-process implementations when no Redis or Mongo is reachable.
package api
