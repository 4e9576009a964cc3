// Package camera provides the orbit camera used to view a composed scene.
//
// The camera circles a fixed point above the floor center on a spherical
// orbit described by an azimuth angle, a polar angle, and a distance. Drag
// and wheel input nudge the angles and distance, each clamped to keep the
// eye above the floor and within a useful range, and named presets jump to
// the four canonical viewpoints.
package camera
