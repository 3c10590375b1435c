// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"

	"github.com/gogpu/optiview"
	"github.com/gogpu/optiview/recording"
)

// ErrNilTarget is returned when rendering into a nil target.
var ErrNilTarget = errors.New("render: nil target")

// Renderer plays command streams into a Target.
//
// It keeps no state between calls: the style register, the polyline
// buffer and the scratch rasterizer all live on the Target, so one
// Renderer may serve any number of targets.
//
// Example:
//
//	r := render.NewRenderer()
//	target := render.NewTarget(800, 600)
//	if err := r.Render(target, stream); err != nil {
//	    return err
//	}
//	img := target.Image()
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws s into t on top of the current pixels.
//
// Malformed polylines are absorbed: a PathTo, Stroke or Fill with no open
// polyline starts one at its own vertex, and a polyline left open at the
// end of the stream is discarded. A stream with coordinates beyond
// BigRadius is first rewritten by the clipping pass.
func (r *Renderer) Render(t *Target, s *recording.Stream) error {
	if t == nil {
		return ErrNilTarget
	}
	r.render(t, s, 0)
	return nil
}

// RenderFrame draws every stream of f in compositing order.
func (r *Renderer) RenderFrame(t *Target, f *recording.Frame) error {
	if t == nil {
		return ErrNilTarget
	}
	for _, s := range f.Streams() {
		r.render(t, s, 0)
	}
	return nil
}

// render plays s with every vertex shifted horizontally by shift times
// its depth.
func (r *Renderer) render(t *Target, s *recording.Stream, shift float64) {
	if s.Size() == 0 {
		return
	}
	if needsClip(s) {
		optiview.Logger().Debug("render: clipping pass",
			"purpose", s.Purpose(), "commands", s.Size())
		if t.clipped == nil {
			t.clipped = recording.NewStream(s.Purpose())
		}
		clipStream(t.clipped, s, box{
			xmin: -clipMargin,
			ymin: -clipMargin,
			xmax: float64(t.Width() + clipMargin),
			ymax: float64(t.Height() + clipMargin),
		})
		s = t.clipped
	}

	t.reset(shift)
	open := false
	for _, c := range s.All() {
		switch c.Op {
		case recording.OpSetBackground:
			t.Clear(c.Color())
		case recording.OpSetStrokeColor:
			t.style.Stroke = c.Color()
		case recording.OpSetFillColor:
			t.style.Fill = c.Color()
		case recording.OpSetLineStyle:
			t.style.Width = lineWidth(c.A)
			t.style.Dash = c.Dash()
		case recording.OpMoveTo:
			t.poly = append(t.poly[:0], t.vertex(c))
			open = true
		case recording.OpPathTo:
			if !open {
				t.poly = t.poly[:0]
				open = true
			}
			t.poly = append(t.poly, t.vertex(c))
		case recording.OpStroke, recording.OpFill:
			if !open {
				t.poly = t.poly[:0]
			}
			t.poly = append(t.poly, t.vertex(c))
			if c.Op == recording.OpStroke {
				t.strokePolyline(t.poly, t.style)
			} else {
				t.fillPolygon(t.poly, t.style)
			}
			t.poly = t.poly[:0]
			open = false
		case recording.OpPlaceGlyph:
			p := t.vertex(c)
			t.style.Font = c.Font
			t.drawGlyph(p.x, p.y, c.Glyph, c.Font, t.style.Stroke)
		}
	}
	t.poly = t.poly[:0]
}
