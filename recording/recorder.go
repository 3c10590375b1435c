package recording

import (
	"image/color"
	"unicode/utf8"
)

// Vertex is a device-space point: pixels right, pixels down, and depth
// out of the screen in the same pixel scale as the vertical axis.
type Vertex struct {
	X, Y, Z float64
}

// Recorder appends commands to a Stream through a drawing API, and skips
// style commands that would not change the current style. Producers that
// build many decorations per frame use it to keep streams compact.
//
// Example:
//
//	rec := recording.NewRecorder(stream)
//	rec.SetStrokeColor(color.Black)
//	rec.SetLineStyle(1, recording.DashSolid)
//	rec.Polyline([]recording.Vertex{{X: 10, Y: 10}, {X: 90, Y: 40}}, false)
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	s *Stream

	stroke, fill float64
	width        float64
	dash         Dash
	haveStroke   bool
	haveFill     bool
	haveLine     bool
}

// NewRecorder returns a Recorder appending to s.
func NewRecorder(s *Stream) *Recorder {
	return &Recorder{s: s}
}

// Stream returns the stream being recorded.
func (r *Recorder) Stream() *Stream { return r.s }

// Reset forgets the cached style, for use after the stream was cleared.
func (r *Recorder) Reset() {
	r.haveStroke, r.haveFill, r.haveLine = false, false, false
}

// SetBackground records a background clear.
func (r *Recorder) SetBackground(c color.Color) {
	r.s.Append(OpSetBackground, PackColor(c))
}

// SetStrokeColor sets the color of subsequent strokes and glyphs.
func (r *Recorder) SetStrokeColor(c color.Color) {
	p := PackColor(c)
	if r.haveStroke && p == r.stroke {
		return
	}
	r.stroke, r.haveStroke = p, true
	r.s.Append(OpSetStrokeColor, p)
}

// SetFillColor sets the color of subsequent fills.
func (r *Recorder) SetFillColor(c color.Color) {
	p := PackColor(c)
	if r.haveFill && p == r.fill {
		return
	}
	r.fill, r.haveFill = p, true
	r.s.Append(OpSetFillColor, p)
}

// SetLineStyle sets the stroke width in pixels and the dash pattern.
func (r *Recorder) SetLineStyle(width float64, d Dash) {
	if r.haveLine && width == r.width && d == r.dash {
		return
	}
	r.width, r.dash, r.haveLine = width, d, true
	r.s.Append(OpSetLineStyle, width, float64(d))
}

// SetMarker records the affine marker pair.
func (r *Recorder) SetMarker(m Marker) {
	r.s.Append(OpSetAffineOrigin, m.Origin[0], m.Origin[1], m.Origin[2])
	r.s.Append(OpSetAffineScale, m.Scale[0], m.Scale[1], m.Scale[2])
}

// BeginRegion records a region comment.
func (r *Recorder) BeginRegion(g Region) {
	r.s.Append(OpBeginRegion, float64(g))
}

// MoveTo opens a polyline.
func (r *Recorder) MoveTo(v Vertex) { r.s.Append(OpMoveTo, v.X, v.Y, v.Z) }

// PathTo extends the open polyline.
func (r *Recorder) PathTo(v Vertex) { r.s.Append(OpPathTo, v.X, v.Y, v.Z) }

// Stroke ends the polyline at v and draws it open.
func (r *Recorder) Stroke(v Vertex) { r.s.Append(OpStroke, v.X, v.Y, v.Z) }

// Fill ends the polyline at v and fills it as a closed polygon.
func (r *Recorder) Fill(v Vertex) { r.s.Append(OpFill, v.X, v.Y, v.Z) }

// Line records a single stroked segment.
func (r *Recorder) Line(a, b Vertex) {
	r.MoveTo(a)
	r.Stroke(b)
}

// Polyline records pts as one polyline, filled when closed is true.
// Fewer than two points record nothing.
func (r *Recorder) Polyline(pts []Vertex, closed bool) {
	if len(pts) < 2 {
		return
	}
	r.MoveTo(pts[0])
	for _, p := range pts[1 : len(pts)-1] {
		r.PathTo(p)
	}
	if closed {
		r.Fill(pts[len(pts)-1])
	} else {
		r.Stroke(pts[len(pts)-1])
	}
}

// Glyph places one character centered on v.
func (r *Recorder) Glyph(v Vertex, ch rune, f FontTag) {
	r.s.AppendCommand(Command{Op: OpPlaceGlyph, A: v.X, B: v.Y, C: v.Z, Glyph: ch, Font: f})
}

// Text places s as a run of fixed-pitch glyphs whose first cell is
// centered on v.
func (r *Recorder) Text(v Vertex, s string, f FontTag) {
	pitch := f.Pitch()
	for i := 0; len(s) > 0; i++ {
		ch, n := utf8.DecodeRuneInString(s)
		s = s[n:]
		if ch == ' ' {
			continue
		}
		r.Glyph(Vertex{X: v.X + float64(i)*pitch, Y: v.Y, Z: v.Z}, ch, f)
	}
}
