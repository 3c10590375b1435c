package recording

import (
	"image/color"
	"math"
)

// Opcode identifies the drawing instruction carried by a Command.
type Opcode uint8

const (
	// Style opcodes mutate the renderer's style register only.
	OpSetBackground  Opcode = iota // A = packed color; clears the target
	OpSetStrokeColor               // A = packed color
	OpSetFillColor                 // A = packed color
	OpSetLineStyle                 // A = width in pixels, B = Dash

	// Geometry opcodes carry a device vertex: A = x, B = y, C = depth.
	OpMoveTo     // open a polyline
	OpPathTo     // extend the open polyline
	OpStroke     // final vertex, flush as open polyline
	OpFill       // final vertex, flush as closed polygon
	OpPlaceGlyph // one fixed-pitch glyph centered on the vertex

	// Marker opcodes describe the device mapping for vector consumers.
	OpSetAffineOrigin // device position of the view-plane origin
	OpSetAffineScale  // pixels per world unit along each view axis

	OpBeginRegion // A = Region; a comment for exporters, not drawn
)

var opcodeNames = [...]string{
	OpSetBackground:   "SetBackground",
	OpSetStrokeColor:  "SetStrokeColor",
	OpSetFillColor:    "SetFillColor",
	OpSetLineStyle:    "SetLineStyle",
	OpMoveTo:          "MoveTo",
	OpPathTo:          "PathTo",
	OpStroke:          "Stroke",
	OpFill:            "Fill",
	OpPlaceGlyph:      "PlaceGlyph",
	OpSetAffineOrigin: "SetAffineOrigin",
	OpSetAffineScale:  "SetAffineScale",
	OpBeginRegion:     "BeginRegion",
}

// String returns the string representation of an Opcode.
func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "Unknown"
}

// IsVertex reports whether the opcode carries a device vertex in A, B, C.
func (op Opcode) IsVertex() bool {
	return op >= OpMoveTo && op <= OpPlaceGlyph
}

// Command is one drawing instruction: an opcode, up to three numeric
// operands, and for OpPlaceGlyph a character plus a font tag.
// Commands are values; a Stream never hands out pointers into its storage.
type Command struct {
	Op      Opcode
	A, B, C float64
	Glyph   rune
	Font    FontTag
}

// Point returns the device vertex of a geometry command.
func (c Command) Point() (x, y, depth float64) {
	return c.A, c.B, c.C
}

// Color decodes the packed color operand of a color opcode.
func (c Command) Color() color.NRGBA {
	return UnpackColor(c.A)
}

// Dash returns the dash pattern of an OpSetLineStyle command.
func (c Command) Dash() Dash {
	return Dash(c.B)
}

// Region returns the region of an OpBeginRegion command.
func (c Command) Region() Region {
	return Region(c.A)
}

// PackColor encodes a color as a single operand. The packed value is an
// integer below 2^32 and therefore exact in a float64.
func PackColor(c color.Color) float64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float64(uint32(n.R)<<24 | uint32(n.G)<<16 | uint32(n.B)<<8 | uint32(n.A))
}

// UnpackColor is the inverse of PackColor. Out-of-range operands decode
// as transparent black.
func UnpackColor(v float64) color.NRGBA {
	if !(v >= 0 && v <= math.MaxUint32) {
		return color.NRGBA{}
	}
	u := uint32(v)
	return color.NRGBA{R: uint8(u >> 24), G: uint8(u >> 16), B: uint8(u >> 8), A: uint8(u)}
}

// Dash selects a stroke dash pattern.
type Dash uint8

const (
	DashSolid Dash = iota
	DashDashed
	DashDotted
	DashDotDash
)

var dashNames = [...]string{
	DashSolid:   "Solid",
	DashDashed:  "Dashed",
	DashDotted:  "Dotted",
	DashDotDash: "DotDash",
}

func (d Dash) String() string {
	if int(d) < len(dashNames) {
		return dashNames[d]
	}
	return "Unknown"
}

// FontTag combines a glyph size class (low nibble) and a weight flag.
type FontTag uint8

const (
	FontSmall  FontTag = iota // 7x13 cell
	FontMedium                // 8x16 cell
	FontLarge                 // 8x16 cell drawn at twice the size

	// FontBold selects the bold weight where the size class has one.
	FontBold FontTag = 0x10
)

// Size returns the size class without the weight flag.
func (f FontTag) Size() FontTag { return f & 0x0f }

// Bold reports whether the bold weight is requested.
func (f FontTag) Bold() bool { return f&FontBold != 0 }

// Pitch returns the fixed advance of the size class in pixels.
func (f FontTag) Pitch() float64 {
	switch f.Size() {
	case FontSmall:
		return 7
	case FontLarge:
		return 16
	}
	return 8
}

// Region labels a span of a stream for exporters.
type Region uint8

const (
	RegionFrame Region = iota
	RegionSurfaces
	RegionDecorations
	RegionRays
	RegionAxes
	RegionRulers
	RegionAnnotation
)

var regionNames = [...]string{
	RegionFrame:       "Frame",
	RegionSurfaces:    "Surfaces",
	RegionDecorations: "Decorations",
	RegionRays:        "Rays",
	RegionAxes:        "Axes",
	RegionRulers:      "Rulers",
	RegionAnnotation:  "Annotation",
}

func (r Region) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "Unknown"
}
