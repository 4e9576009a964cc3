// Package pick resolves pointer positions to zones.
//
// A pointer position becomes a world-space ray through the camera, the
// ray is intersected against every pickable primitive in the scene, and
// the hits are scanned nearest-first: the first hit whose ownership chain
// reaches a zone wins. Static geometry like the translucent boundary
// walls intersects but owns no zone, so rays pass through it onto the
// composites behind.
//
// Picker keeps the transient hover and the persistent selection. Both are
// zone references, not node references, so they survive a scene rebuild.
package pick
