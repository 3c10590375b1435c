package recording

import (
	"image/color"
	"testing"
)

func TestOpcode_String(t *testing.T) {
	tests := []struct {
		op   Opcode
		want string
	}{
		{OpSetBackground, "SetBackground"},
		{OpSetStrokeColor, "SetStrokeColor"},
		{OpSetFillColor, "SetFillColor"},
		{OpSetLineStyle, "SetLineStyle"},
		{OpMoveTo, "MoveTo"},
		{OpPathTo, "PathTo"},
		{OpStroke, "Stroke"},
		{OpFill, "Fill"},
		{OpPlaceGlyph, "PlaceGlyph"},
		{OpSetAffineOrigin, "SetAffineOrigin"},
		{OpSetAffineScale, "SetAffineScale"},
		{OpBeginRegion, "BeginRegion"},
		{Opcode(254), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.op.String(); got != tt.want {
				t.Errorf("Opcode.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpcode_IsVertex(t *testing.T) {
	vertex := map[Opcode]bool{
		OpMoveTo: true, OpPathTo: true, OpStroke: true, OpFill: true, OpPlaceGlyph: true,
	}
	for op := OpSetBackground; op <= OpBeginRegion; op++ {
		if got := op.IsVertex(); got != vertex[op] {
			t.Errorf("%v.IsVertex() = %v, want %v", op, got, vertex[op])
		}
	}
}

func TestPackColor(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want color.NRGBA
	}{
		{"black", color.Black, color.NRGBA{0, 0, 0, 255}},
		{"white", color.White, color.NRGBA{255, 255, 255, 255}},
		{"translucent", color.NRGBA{R: 96, G: 128, B: 255, A: 96}, color.NRGBA{96, 128, 255, 96}},
		{"transparent", color.Transparent, color.NRGBA{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnpackColor(PackColor(tt.in)); got != tt.want {
				t.Errorf("UnpackColor(PackColor(%v)) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnpackColorOutOfRange(t *testing.T) {
	for _, v := range []float64{-1, 1 << 33} {
		if got := UnpackColor(v); got != (color.NRGBA{}) {
			t.Errorf("UnpackColor(%v) = %v, want zero", v, got)
		}
	}
}

func TestCommandAccessors(t *testing.T) {
	c := Command{Op: OpSetLineStyle, A: 2, B: float64(DashDotted)}
	if got := c.Dash(); got != DashDotted {
		t.Errorf("Dash() = %v, want %v", got, DashDotted)
	}

	c = Command{Op: OpBeginRegion, A: float64(RegionRulers)}
	if got := c.Region(); got != RegionRulers {
		t.Errorf("Region() = %v, want %v", got, RegionRulers)
	}

	c = Command{Op: OpMoveTo, A: 1, B: 2, C: -3}
	x, y, z := c.Point()
	if x != 1 || y != 2 || z != -3 {
		t.Errorf("Point() = (%v, %v, %v), want (1, 2, -3)", x, y, z)
	}
}

func TestFontTag(t *testing.T) {
	tests := []struct {
		tag   FontTag
		size  FontTag
		bold  bool
		pitch float64
	}{
		{FontSmall, FontSmall, false, 7},
		{FontMedium, FontMedium, false, 8},
		{FontLarge | FontBold, FontLarge, true, 16},
		{FontSmall | FontBold, FontSmall, true, 7},
	}

	for _, tt := range tests {
		if got := tt.tag.Size(); got != tt.size {
			t.Errorf("FontTag(%#x).Size() = %v, want %v", uint8(tt.tag), got, tt.size)
		}
		if got := tt.tag.Bold(); got != tt.bold {
			t.Errorf("FontTag(%#x).Bold() = %v, want %v", uint8(tt.tag), got, tt.bold)
		}
		if got := tt.tag.Pitch(); got != tt.pitch {
			t.Errorf("FontTag(%#x).Pitch() = %v, want %v", uint8(tt.tag), got, tt.pitch)
		}
	}
}

func TestEnumStrings(t *testing.T) {
	if got := DashDotDash.String(); got != "DotDash" {
		t.Errorf("DashDotDash.String() = %q", got)
	}
	if got := Dash(99).String(); got != "Unknown" {
		t.Errorf("Dash(99).String() = %q", got)
	}
	if got := RegionAxes.String(); got != "Axes" {
		t.Errorf("RegionAxes.String() = %q", got)
	}
	if got := PurposeRandom.String(); got != "random" {
		t.Errorf("PurposeRandom.String() = %q", got)
	}
	if got := Purpose(42).String(); got != "unknown" {
		t.Errorf("Purpose(42).String() = %q", got)
	}
}
