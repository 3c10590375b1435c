// Package scene builds the command streams of an optical layout view.
//
// Geometry comes from a solver through the read-only Geometry interface:
// surfaces placed in world space and rays with one Intercept per surface.
// Each intercept is explicitly Hit, Skipped or Unreached; FromSentinels
// converts arrays in the older negative-zero and "how far" convention.
//
// A Builder walks the geometry for the current view.State and records
// the base and finish streams of a recording.Frame, sorting decorations
// through a depthsort.Compositor. Layout ties a geometry, a view and a
// frame together with the random ray Accumulator and the Annotations
// overlay, and is the interact.View driven by the viewer.
//
// Demo returns a small synthetic assembly.
package scene
