// Package build translates a layout plan into a renderable scene tree.
//
// Build runs in a single pass: static garage structure first (floor, the
// four boundary walls, wireframe edges, ceiling joists, wall openings,
// the light fixture, and cardinal markers), then one composite per zone,
// dispatched by zone type to a sub-builder. Unknown zone types fall back
// to a plain translucent box so malformed plans still render.
//
// All layout dimensions are inches; node coordinates come out in scene
// units via scene.InchScale. The builder does no I/O and holds no state
// between calls, so rebuilding from the same plan and synthesizer seed
// yields an equivalent tree.
package build
