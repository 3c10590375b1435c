package recording

import (
	"image/color"
	"testing"
)

func ops(s *Stream) []Opcode {
	var out []Opcode
	for _, c := range s.All() {
		out = append(out, c.Op)
	}
	return out
}

func equalOps(a, b []Opcode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRecorderElidesRedundantStyle(t *testing.T) {
	s := NewStream(PurposeBase)
	rec := NewRecorder(s)

	rec.SetStrokeColor(color.Black)
	rec.SetStrokeColor(color.Black)
	rec.SetFillColor(color.White)
	rec.SetFillColor(color.White)
	rec.SetLineStyle(1, DashSolid)
	rec.SetLineStyle(1, DashSolid)
	rec.SetLineStyle(1, DashDashed)

	want := []Opcode{OpSetStrokeColor, OpSetFillColor, OpSetLineStyle, OpSetLineStyle}
	if got := ops(s); !equalOps(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}

	s.Clear()
	rec.Reset()
	rec.SetStrokeColor(color.Black)
	if s.Size() != 1 {
		t.Errorf("after Reset the style should be re-emitted, Size() = %d", s.Size())
	}
}

func TestRecorderPolyline(t *testing.T) {
	tests := []struct {
		name   string
		pts    []Vertex
		closed bool
		want   []Opcode
	}{
		{"empty", nil, false, nil},
		{"single", []Vertex{{X: 1}}, false, nil},
		{"segment", []Vertex{{X: 0}, {X: 1}}, false, []Opcode{OpMoveTo, OpStroke}},
		{"open", []Vertex{{X: 0}, {X: 1}, {X: 2}, {X: 3}}, false, []Opcode{OpMoveTo, OpPathTo, OpPathTo, OpStroke}},
		{"closed", []Vertex{{X: 0}, {X: 1}, {Y: 1}}, true, []Opcode{OpMoveTo, OpPathTo, OpFill}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStream(PurposeBase)
			NewRecorder(s).Polyline(tt.pts, tt.closed)
			if got := ops(s); !equalOps(got, tt.want) {
				t.Errorf("ops = %v, want %v", got, tt.want)
			}
			if len(tt.pts) >= 2 {
				last := s.At(s.Size() - 1)
				end := tt.pts[len(tt.pts)-1]
				if last.A != end.X || last.B != end.Y || last.C != end.Z {
					t.Errorf("terminator carries %+v, want final vertex %+v", last, end)
				}
			}
		})
	}
}

func TestRecorderText(t *testing.T) {
	s := NewStream(PurposeAnnotation)
	NewRecorder(s).Text(Vertex{X: 10, Y: 20, Z: 1}, "a b", FontSmall)

	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2 (space is skipped)", s.Size())
	}
	first, second := s.At(0), s.At(1)
	if first.Glyph != 'a' || first.A != 10 || first.B != 20 || first.C != 1 {
		t.Errorf("first glyph = %+v", first)
	}
	if second.Glyph != 'b' || second.A != 10+2*7 {
		t.Errorf("second glyph = %+v, want 'b' at x=%v", second, 10+2*7)
	}
	if second.Font != FontSmall {
		t.Errorf("Font = %v, want FontSmall", second.Font)
	}
}
