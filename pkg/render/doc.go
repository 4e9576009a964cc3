// Package render rasterizes a composed scene into images.
//
// # Overview
//
// Renderer is a CPU rasterizer with a z-buffer: primitives tessellate
// into triangles, triangles project through the camera and fill with
// flat-shaded, optionally textured spans. A frame draws in three passes:
// opaque geometry with depth writes, wireframe lines depth-tested with a
// small bias, then blended transparent geometry sorted far to near.
// Sprites billboard toward the camera and draw with the transparent
// pass.
//
//	r, err := render.New(1280, 720)
//	img := r.Frame(sc, cam)
//	png, err := render.EncodePNG(img)
//
// # Frame Loop
//
// Loop drives continuous redraws for interactive viewers: exactly one
// synchronous render per tick, never overlapping, with a counter for
// ticks missed when a frame overruns its slot.
package render
