// Package optiview draws the 3-D layout of an optical assembly: surfaces
// and traced rays projected from a viewpoint the user pans, zooms and
// rotates, painted back to front without a depth buffer, optionally as a
// red/cyan anaglyph.
//
// # Architecture
//
// Producers and consumers meet at the command stream:
//
//	scene.Layout ──► scene.Builder ──► recording.Frame ──► render.Renderer ──► render.Target
//	     ▲                │                    │
//	     │          depthsort.Compositor       └──► recording.Backend (raster, archive)
//	interact.Controller
//
//   - view: the world-to-device transform (center, spans, elevation,
//     azimuth, up axis) and its pan/zoom/rotate operations
//   - recording: device-space command streams with an affine marker
//   - depthsort: painter's ordering of shaded panels and decorations
//   - render: rasterization with a clipping pass and the stereo path
//   - interact: gesture state machine with wheel debounce
//   - scene: geometry model, stream builder, overlays, the Layout view
//
// This package holds what they share: Options with their TOML form, the
// parsed palette, and the logger.
//
// # Logging
//
// Sub-packages log through Logger, which discards everything until
// SetLogger installs a handler.
package optiview
