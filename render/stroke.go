// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/optiview/recording"
)

// Dash patterns as on/off lengths in multiples of the stroke width.
var dashPatterns = [...][]float64{
	recording.DashSolid:   nil,
	recording.DashDashed:  {6, 4},
	recording.DashDotted:  {1, 3},
	recording.DashDotDash: {8, 3, 1, 3},
}

func dashPattern(d recording.Dash) []float64 {
	if int(d) < len(dashPatterns) {
		return dashPatterns[d]
	}
	return nil
}

// collapsed reports whether every point lies within half a pixel of the
// first one.
func collapsed(pts []point) bool {
	for _, p := range pts[1:] {
		if math.Abs(p.x-pts[0].x) >= 0.5 || math.Abs(p.y-pts[0].y) >= 0.5 {
			return false
		}
	}
	return true
}

func lineWidth(w float64) float64 {
	if !(w >= 1) || math.IsInf(w, 0) {
		return 1
	}
	return w
}

// strokePolyline draws pts as an open polyline. A polyline whose extent
// has collapsed below a pixel draws a single dot.
func (t *Target) strokePolyline(pts []point, st Style) {
	if len(pts) == 0 || st.Stroke.A == 0 {
		return
	}
	w := lineWidth(st.Width)
	if collapsed(pts) {
		t.dot(pts[0], w, st.Stroke)
		return
	}

	z := t.raster
	z.Reset(t.Width(), t.Height())
	pattern := dashPattern(st.Dash)
	if pattern == nil {
		for i := 1; i < len(pts); i++ {
			t.segment(pts[i-1], pts[i], w)
		}
	} else {
		t.dashed(pts, w, pattern)
	}
	t.flush(st.Stroke)
}

// dashed walks the polyline emitting the "on" spans of pattern.
// The pattern phase carries across vertices.
func (t *Target) dashed(pts []point, w float64, pattern []float64) {
	idx := 0
	left := pattern[0] * w
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dx, dy := b.x-a.x, b.y-a.y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		pos := 0.0
		for pos < length {
			step := min(left, length-pos)
			if idx%2 == 0 {
				s, e := pos/length, (pos+step)/length
				t.segment(point{a.x + s*dx, a.y + s*dy}, point{a.x + e*dx, a.y + e*dy}, w)
			}
			pos += step
			left -= step
			if left <= 0 {
				idx = (idx + 1) % len(pattern)
				left = pattern[idx] * w
			}
		}
	}
}

// segment adds the quad covering a stroke of width w from a to b.
// All quads wind the same way, so overlaps at joints do not double up.
func (t *Target) segment(a, b point, w float64) {
	dx, dy := b.x-a.x, b.y-a.y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*w/2, dx/length*w/2
	z := t.raster
	z.MoveTo(float32(a.x+nx), float32(a.y+ny))
	z.LineTo(float32(b.x+nx), float32(b.y+ny))
	z.LineTo(float32(b.x-nx), float32(b.y-ny))
	z.LineTo(float32(a.x-nx), float32(a.y-ny))
	z.ClosePath()
}

// dot draws a w x w square centered on p.
func (t *Target) dot(p point, w float64, c color.NRGBA) {
	z := t.raster
	z.Reset(t.Width(), t.Height())
	h := w / 2
	z.MoveTo(float32(p.x-h), float32(p.y-h))
	z.LineTo(float32(p.x+h), float32(p.y-h))
	z.LineTo(float32(p.x+h), float32(p.y+h))
	z.LineTo(float32(p.x-h), float32(p.y+h))
	z.ClosePath()
	t.flush(c)
}

// fillPolygon fills pts as a closed polygon. Degenerate polygons fall
// back to a hairline or a dot so that they stay visible.
func (t *Target) fillPolygon(pts []point, st Style) {
	if len(pts) == 0 || st.Fill.A == 0 {
		return
	}
	if collapsed(pts) {
		t.dot(pts[0], 1, st.Fill)
		return
	}
	if len(pts) < 3 {
		t.strokePolyline(pts, Style{Stroke: st.Fill, Width: 1})
		return
	}
	z := t.raster
	z.Reset(t.Width(), t.Height())
	z.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.x), float32(p.y))
	}
	z.ClosePath()
	t.flush(st.Fill)
}

// flush composites the accumulated coverage in color c.
func (t *Target) flush(c color.NRGBA) {
	t.src.C = c
	t.raster.Draw(t.img, t.img.Bounds(), t.src, image.Point{})
}
