// Package scene provides the scene graph that the garage builder produces
// and the renderer and picker consume.
//
// A scene is a tree of [Node] values. Interior nodes are groups carrying
// only a transform; leaves are primitives (boxes, planes, cylinders, discs,
// lines, sprites) with a size and a material. World transforms compose
// parent to child, translation then yaw, so a wall-mounted composite
// rotates about its own anchor before it is placed.
//
// Composites — the renderable bundles built for zones — are tracked on the
// [Scene] together with a side lookup table from node identity to the
// owning zone. The table keeps ownership acyclic: the tree owns the nodes,
// the table owns only references. [Scene.ZoneFor] resolves any node to its
// owning zone by walking the parent chain against the table, which is what
// pointer picking uses.
//
// Per-category visibility is a flag sweep over composites; geometry is
// never rebuilt when a category is hidden or shown.
package scene
