// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"

	"github.com/gogpu/optiview"
	"github.com/gogpu/optiview/recording"
)

// RenderStereo draws the streams into t as a red/cyan anaglyph. Each
// vertex is moved left by parallax times its depth for the cyan eye and
// right by the same amount for the red eye.
//
// With zero parallax the two passes would be identical, so the streams
// are drawn once directly into t.
func (r *Renderer) RenderStereo(t *Target, parallax float64, streams ...*recording.Stream) error {
	if t == nil {
		return ErrNilTarget
	}
	if parallax == 0 {
		for _, s := range streams {
			r.render(t, s, 0)
		}
		return nil
	}
	r.renderAnaglyph(t, parallax, streams)
	return nil
}

// RenderStereoFrame is RenderStereo over the streams of f in compositing
// order.
func (r *Renderer) RenderStereoFrame(t *Target, parallax float64, f *recording.Frame) error {
	return r.RenderStereo(t, parallax, f.Streams()...)
}

// renderAnaglyph always takes the two-pass path. Both passes start from
// the current pixels of t, and the results are merged by OR-ing the
// left pass masked to green and blue with the right pass masked to red.
// Alpha is the larger of the two eyes, which keeps every color byte at
// or below it. The masks are complementary, so at zero parallax the
// merge reproduces a single pass exactly.
func (r *Renderer) renderAnaglyph(t *Target, parallax float64, streams []*recording.Stream) {
	optiview.Logger().Debug("render: anaglyph", "parallax", parallax, "streams", len(streams))

	left, right := t.stereoScratch()
	copy(left.img.Pix, t.img.Pix)
	copy(right.img.Pix, t.img.Pix)
	for _, s := range streams {
		r.render(left, s, -parallax)
		r.render(right, s, parallax)
	}

	dst, lp, rp := t.img.Pix, left.img.Pix, right.img.Pix
	for i := 0; i+3 < len(dst); i += 4 {
		for k := range 3 {
			dst[i+k] = lp[i+k]&leftMask[k] | rp[i+k]&rightMask[k]
		}
		dst[i+3] = max(lp[i+3], rp[i+3])
	}
}

// Per-eye RGB channel masks.
var (
	leftMask  = [3]uint8{0x00, 0xff, 0xff}
	rightMask = [3]uint8{0xff, 0x00, 0x00}
)

// stereoScratch returns the two per-eye targets, reallocating them when
// the layout of t has changed.
func (t *Target) stereoScratch() (left, right *Target) {
	for i, e := range t.eyes {
		if e == nil || e.img.Rect != t.img.Rect || e.img.Stride != t.img.Stride || len(e.img.Pix) != len(t.img.Pix) {
			t.eyes[i] = NewTargetFromImage(&image.RGBA{
				Pix:    make([]uint8, len(t.img.Pix)),
				Stride: t.img.Stride,
				Rect:   t.img.Rect,
			})
		}
	}
	return t.eyes[0], t.eyes[1]
}
