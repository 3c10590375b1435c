// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"math"
	"slices"

	"github.com/gogpu/optiview/recording"
)

// BigRadius is the device coordinate magnitude beyond which a stream is
// rewritten by the clipping pass before rasterization.
const BigRadius = 30000

// clipMargin extends the clip box past the target so that wide strokes
// and glyphs ending just off the edge still draw.
const clipMargin = 64

// Outcode constants for the trivial accept/reject test.
const (
	outcodeInside = 0
	outcodeLeft   = 1
	outcodeRight  = 2
	outcodeBottom = 4
	outcodeTop    = 8
)

// box is an axis-aligned clip rectangle in device space.
type box struct {
	xmin, ymin, xmax, ymax float64
}

func (b box) outcode(x, y float64) int {
	code := outcodeInside
	if x < b.xmin {
		code |= outcodeLeft
	} else if x > b.xmax {
		code |= outcodeRight
	}
	if y < b.ymin {
		code |= outcodeTop
	} else if y > b.ymax {
		code |= outcodeBottom
	}
	return code
}

// needsClip reports whether any vertex of s exceeds BigRadius in
// magnitude or is not finite.
func needsClip(s *recording.Stream) bool {
	for _, c := range s.All() {
		if !c.Op.IsVertex() {
			continue
		}
		if !(math.Abs(c.A) <= BigRadius && math.Abs(c.B) <= BigRadius) {
			return true
		}
	}
	return false
}

// clipSegment clips the segment a-b against the box using the
// parametric (Liang–Barsky) form, so that depth is interpolated along
// with x and y. ok is false when nothing of the segment is inside.
func (b box) clipSegment(a, e [3]float64) (ca, ce [3]float64, ok bool) {
	if !finite(a) || !finite(e) {
		return ca, ce, false
	}
	c0, c1 := b.outcode(a[0], a[1]), b.outcode(e[0], e[1])
	if c0|c1 == 0 {
		return a, e, true
	}
	if c0&c1 != 0 {
		return ca, ce, false
	}

	dx, dy := e[0]-a[0], e[1]-a[1]
	u1, u2 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{a[0] - b.xmin, b.xmax - a[0], a[1] - b.ymin, b.ymax - a[1]}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return ca, ce, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > u2 {
				return ca, ce, false
			}
			u1 = max(u1, t)
		} else {
			if t < u1 {
				return ca, ce, false
			}
			u2 = min(u2, t)
		}
	}
	if math.IsNaN(u1) || math.IsNaN(u2) {
		return ca, ce, false
	}
	return lerp3(a, e, u1), lerp3(a, e, u2), true
}

func finite(p [3]float64) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func lerp3(a, b [3]float64, t float64) [3]float64 {
	return [3]float64{
		a[0] + t*(b[0]-a[0]),
		a[1] + t*(b[1]-a[1]),
		a[2] + t*(b[2]-a[2]),
	}
}

// clipPolygon clips a closed polygon against the box edge by edge
// (Sutherland–Hodgman). dst is reused as output storage.
func (b box) clipPolygon(dst, poly [][3]float64) [][3]float64 {
	in := append(dst[:0], poly...)
	var out [][3]float64
	edges := [4]func(p [3]float64) float64{
		func(p [3]float64) float64 { return p[0] - b.xmin },
		func(p [3]float64) float64 { return b.xmax - p[0] },
		func(p [3]float64) float64 { return p[1] - b.ymin },
		func(p [3]float64) float64 { return b.ymax - p[1] },
	}
	for _, inside := range edges {
		if len(in) == 0 {
			break
		}
		out = out[:0]
		prev := in[len(in)-1]
		dPrev := inside(prev)
		for _, cur := range in {
			dCur := inside(cur)
			switch {
			case dCur >= 0 && dPrev >= 0:
				out = append(out, cur)
			case dCur >= 0:
				out = append(out, lerp3(prev, cur, dPrev/(dPrev-dCur)), cur)
			case dPrev >= 0:
				out = append(out, lerp3(prev, cur, dPrev/(dPrev-dCur)))
			}
			prev, dPrev = cur, dCur
		}
		in, out = out, in
	}
	return in
}

// clipStream rewrites src into dst with every polyline decomposed into
// independent segments clipped to b. Segments wholly outside are
// discarded, fills are clipped as polygons, and glyphs outside b are
// dropped. Style commands pass through unchanged.
func clipStream(dst, src *recording.Stream, b box) {
	dst.Clear()
	var open bool
	var poly, scratch [][3]float64

	for _, c := range src.All() {
		v := [3]float64{c.A, c.B, c.C}
		switch c.Op {
		case recording.OpMoveTo:
			poly = append(poly[:0], v)
			open = true
		case recording.OpPathTo:
			if !open {
				poly = poly[:0]
				open = true
			}
			poly = append(poly, v)
		case recording.OpStroke:
			if !open {
				poly = poly[:0]
			}
			poly = append(poly, v)
			open = false
			if len(poly) == 1 {
				if finite(v) && b.outcode(v[0], v[1]) == 0 {
					dst.Append(recording.OpMoveTo, v[0], v[1], v[2])
					dst.Append(recording.OpStroke, v[0], v[1], v[2])
				}
				continue
			}
			for i := 1; i < len(poly); i++ {
				a, e, ok := b.clipSegment(poly[i-1], poly[i])
				if !ok {
					continue
				}
				dst.Append(recording.OpMoveTo, a[0], a[1], a[2])
				dst.Append(recording.OpStroke, e[0], e[1], e[2])
			}
		case recording.OpFill:
			if !open {
				poly = poly[:0]
			}
			poly = append(poly, v)
			open = false
			if slices.ContainsFunc(poly, func(p [3]float64) bool { return !finite(p) }) {
				continue
			}
			scratch = b.clipPolygon(scratch, poly)
			if len(scratch) < 3 {
				continue
			}
			dst.Append(recording.OpMoveTo, scratch[0][0], scratch[0][1], scratch[0][2])
			for _, p := range scratch[1 : len(scratch)-1] {
				dst.Append(recording.OpPathTo, p[0], p[1], p[2])
			}
			last := scratch[len(scratch)-1]
			dst.Append(recording.OpFill, last[0], last[1], last[2])
		case recording.OpPlaceGlyph:
			if finite(v) && b.outcode(c.A, c.B) == 0 {
				dst.AppendCommand(c)
			}
		default:
			dst.AppendCommand(c)
		}
	}
}
