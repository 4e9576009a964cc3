// Package pkg provides the core libraries for garage3d scene composition.
//
// # Overview
//
// Garage3d turns a 2D garage layout plan into an interactive 3D scene. The
// pkg directory is organized around that flow:
//
//	Layout plan (JSON/TOML)
//	         ↓
//	    [layout] package (model, parsing, defaults)
//	         ↓
//	    [scene/build] package (per-category sub-builders → scene graph)
//	         ↓
//	    [render] package (CPU rasterizer, PNG, frame loop)
//
// # Main Packages
//
// [layout] - The layout model: envelope, wall openings, and placed zones,
// with JSON and TOML readers.
//
// [scene] - The scene graph: typed primitive nodes, transforms, and the
// zone ↔ composite registry with per-category visibility.
//
// [scene/build] - Composition: static envelope geometry plus one
// sub-builder per zone category (vehicle, workbench, wall storage,
// overhead platform, floor storage). Unknown categories get a plain box.
//
// [texture] - Procedural surface synthesis (concrete, wood, pegboard,
// door panels) and text sprites, drawn with fogleman/gg.
//
// [camera] - Spherical orbit camera with polar and distance clamps and
// the four preset views.
//
// [pick] - Screen-ray casting against the scene with zone resolution.
//
// [render] - Z-buffered CPU rasterizer, PNG encoding, the fixed-interval
// frame loop, and Graphviz scene diagrams under [render/diagram].
//
// [cache] / [store] - Rendered-frame caching (file, Redis) and plan
// persistence (memory, MongoDB) for the HTTP server.
//
// [errors] - Coded errors shared by the CLI and API surfaces.
//
// [observability] - Hook interfaces for instrumenting builds, frames,
// picking, and HTTP handling.
//
// # Quick Start
//
// Compose a plan and render one frame:
//
//	plan, _ := layout.LoadFile("garage.json")
//	sc := build.Build(plan, texture.New())
//	cam := camera.New(plan.Envelope)
//	cam.SetViewport(1024, 768)
//	r, _ := render.New(1024, 768)
//	png, _ := render.EncodePNG(r.Frame(sc, cam))
//
// [layout]: https://pkg.go.dev/github.com/mehinger01/garage-layout-planner/pkg/layout
// [scene]: https://pkg.go.dev/github.com/mehinger01/garage-layout-planner/pkg/scene
// [scene/build]: https://pkg.go.dev/github.com/mehinger01/garage-layout-planner/pkg/scene/build
// [texture]: https://pkg.go.dev/github.com/mehinger01/garage-layout-planner/pkg/texture
// [camera]: https://pkg.go.dev/github.com/mehinger01/garage-layout-planner/pkg/camera
// [pick]: https://pkg.go.dev/github.com/mehinger01/garage-layout-planner/pkg/pick
// [render]: https://pkg.go.dev/github.com/mehinger01/garage-layout-planner/pkg/render
// [render/diagram]: https://pkg.go.dev/github.com/mehinger01/garage-layout-planner/pkg/render/diagram
// [cache]: https://pkg.go.dev/github.com/mehinger01/garage-layout-planner/pkg/cache
// [store]: https://pkg.go.dev/github.com/mehinger01/garage-layout-planner/pkg/store
// [errors]: https://pkg.go.dev/github.com/mehinger01/garage-layout-planner/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mehinger01/garage-layout-planner/pkg/observability
package pkg
