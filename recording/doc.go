// Package recording provides the command streams that carry artwork from
// the scene producers to the renderer.
//
// A view is never drawn directly. Producers translate geometry into a
// Stream of device-space Commands (style changes, polylines, glyphs) and
// consumers play those streams back: the raster renderer on every redraw,
// the archive backend when a frame is exported.
//
// # Architecture
//
// The package has three main components:
//
//   - Stream: an ordered, append-only list of Commands for one Purpose
//   - Recorder: a drawing API over a Stream that elides redundant styles
//   - Backend: consumes streams into a specific output
//
// A Frame groups the four streams of a redraw (base, random, finish and
// annotation) in compositing order.
//
// # Basic Usage
//
//	s := recording.NewStream(recording.PurposeBase)
//	rec := recording.NewRecorder(s)
//
//	rec.SetBackground(color.White)
//	rec.SetStrokeColor(color.Black)
//	rec.SetLineStyle(1, recording.DashSolid)
//	rec.Line(recording.Vertex{X: 10, Y: 10}, recording.Vertex{X: 200, Y: 120})
//	rec.Text(recording.Vertex{X: 20, Y: 140}, "L1", recording.FontMedium)
//
// # Playback to Backends
//
//	import _ "github.com/gogpu/optiview/recording/backends/raster"
//
//	b, _ := recording.NewBackend("raster", 800, 600)
//	s.Playback(b)
//	b.(recording.FileBackend).SaveToFile("view.png")
//
// # Backend Registration
//
// Backends register themselves in init(), following the database/sql
// driver pattern:
//
//	func init() {
//	    recording.Register("raster", func(w, h int) recording.Backend {
//	        return New(w, h)
//	    })
//	}
//
// # Markers
//
// A base stream normally begins with an OpSetAffineOrigin and
// OpSetAffineScale pair. Vector consumers read it with Stream.Marker to
// map device coordinates back to world units.
package recording
