// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/optiview/internal/cache"
	"github.com/gogpu/optiview/recording"
)

// face returns the fixed-pitch face and magnification of a font tag.
func face(f recording.FontTag) (*basicfont.Face, int) {
	switch f.Size() {
	case recording.FontSmall:
		return basicfont.Face7x13, 1
	case recording.FontLarge:
		if f.Bold() {
			return inconsolata.Bold8x16, 2
		}
		return inconsolata.Regular8x16, 2
	default:
		if f.Bold() {
			return inconsolata.Bold8x16, 1
		}
		return inconsolata.Regular8x16, 1
	}
}

// baseline returns the offset from a glyph's center to its pen position:
// half an advance left, and down by half the ascent-descent difference so
// that the ink is centered vertically on the vertex.
func baseline(fc *basicfont.Face, scale int) (dx, dy int) {
	return -fc.Advance * scale / 2, (fc.Ascent - fc.Descent) * scale / 2
}

// drawGlyph draws ch centered on (x, y) in color c.
func (t *Target) drawGlyph(x, y float64, ch rune, f recording.FontTag, c color.NRGBA) {
	if c.A == 0 || !(math.Abs(x) < 2*BigRadius && math.Abs(y) < 2*BigRadius) {
		return
	}
	fc, scale := face(f)
	dx, dy := baseline(fc, scale)
	px, py := int(math.Round(x))+dx, int(math.Round(y))+dy

	t.src.C = c
	if scale == 1 {
		dot := fixed.P(px, py)
		dr, mask, mp, _, ok := fc.Glyph(dot, ch)
		if !ok {
			return
		}
		draw.DrawMask(t.img, dr, t.src, image.Point{}, mask, mp, draw.Over)
		return
	}

	g := scaledGlyph(ch, f, fc, scale)
	if g == nil {
		return
	}
	at := image.Pt(px, py).Add(g.offset)
	draw.DrawMask(t.img, image.Rectangle{Min: at, Max: at.Add(g.mask.Rect.Size())}, t.src, image.Point{}, g.mask, image.Point{}, draw.Over)
}

// glyphMaskCacheSize bounds the number of magnified masks kept.
const glyphMaskCacheSize = 512

type glyphKey struct {
	ch   rune
	font recording.FontTag
}

// glyphMask is a magnified glyph mask and its offset from the pen
// position.
type glyphMask struct {
	mask   *image.Alpha
	offset image.Point
}

var glyphMasks = cache.New[glyphKey, *glyphMask](glyphMaskCacheSize)

// scaledGlyph returns the mask of ch magnified by scale, or nil when the
// face has no glyph for it.
func scaledGlyph(ch rune, f recording.FontTag, fc *basicfont.Face, scale int) *glyphMask {
	return glyphMasks.GetOrCreate(glyphKey{ch, f}, func() *glyphMask {
		dr, mask, mp, _, ok := fc.Glyph(fixed.P(0, 0), ch)
		if !ok {
			return nil
		}
		dst := image.NewAlpha(image.Rectangle{Max: dr.Size().Mul(scale)})
		xdraw.NearestNeighbor.Scale(dst, dst.Rect, mask, image.Rectangle{Min: mp, Max: mp.Add(dr.Size())}, draw.Src, nil)
		return &glyphMask{mask: dst, offset: dr.Min.Mul(scale)}
	})
}
