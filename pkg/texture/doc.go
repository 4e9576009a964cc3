// Package texture procedurally generates the raster surface images used
// by the garage scene: concrete, wood grain, pegboard, cleat board, door
// panels, and small text labels.
//
// Each material kind layers a base fill with procedural detail, so two
// calls for the same kind produce visually similar but not identical
// images. Callers must not assume pixel equality across builds; tests that
// need reproducible output can pin the generator with [WithSeed].
package texture
