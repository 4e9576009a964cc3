// Package diagram renders a scene tree as a node-link diagram.
//
// # Overview
//
// This package produces a structural view of a composed scene using
// Graphviz: every scene node appears as a box, parent-child edges show
// the transform hierarchy, and composite roots are tinted with their
// zone's display color. It exists for debugging scene composition, not
// for end-user rendering.
//
// # Usage
//
// Convert a scene to DOT format, then render to SVG:
//
//	dot := diagram.ToDOT(sc, diagram.Options{Detailed: true})
//	svg, err := diagram.RenderSVG(dot)
package diagram
