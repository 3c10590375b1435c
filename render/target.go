// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/vector"

	"github.com/gogpu/optiview/recording"
)

// Style is the mutable style register of a Target.
type Style struct {
	Stroke color.NRGBA
	Fill   color.NRGBA
	Width  float64
	Dash   recording.Dash
	Font   recording.FontTag
}

// DefaultStyle is the register state at the start of every stream.
func DefaultStyle() Style {
	return Style{
		Stroke: color.NRGBA{A: 0xff},
		Fill:   color.NRGBA{A: 0xff},
		Width:  1,
	}
}

type point struct {
	x, y float64
}

// Target is a CPU raster target: an *image.RGBA plus the style register
// and the scratch state a Renderer needs while it plays a stream back.
//
// Example:
//
//	target := render.NewTarget(800, 600)
//	render.NewRenderer().Render(target, stream)
//	img := target.Image()
//
// A Target is not safe for concurrent use.
type Target struct {
	img *image.RGBA

	style Style
	poly  []point

	// shift is the horizontal offset applied per pixel of depth.
	shift float64

	raster  *vector.Rasterizer
	src     *image.Uniform
	clipped *recording.Stream
	eyes    [2]*Target
}

// NewTarget creates a width x height target cleared to transparent black.
func NewTarget(width, height int) *Target {
	return NewTargetFromImage(image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1))))
}

// NewTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying; its bounds must start at
// the origin.
func NewTargetFromImage(img *image.RGBA) *Target {
	b := img.Bounds()
	return &Target{
		img:    img,
		style:  DefaultStyle(),
		poly:   make([]point, 0, 64),
		raster: vector.NewRasterizer(b.Dx(), b.Dy()),
		src:    image.NewUniform(color.Black),
	}
}

// Width returns the target width in pixels.
func (t *Target) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *Target) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *Target) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *Target) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *Target) Image() *image.RGBA {
	return t.img
}

// Snapshot returns a copy of the current pixels.
func (t *Target) Snapshot() *image.RGBA {
	return clone.AsRGBA(t.img)
}

// Style returns the current style register.
func (t *Target) Style() Style {
	return t.style
}

// Clear fills the entire target with the given color.
func (t *Target) Clear(c color.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// reset prepares the register for a new stream.
func (t *Target) reset(shift float64) {
	t.style = DefaultStyle()
	t.poly = t.poly[:0]
	t.shift = shift
}

// vertex reads the device vertex of a geometry command, applying the
// stereo shift. Shifts that are not finite or exceed BigRadius are
// dropped.
func (t *Target) vertex(c recording.Command) point {
	x, y, z := c.Point()
	if t.shift == 0 {
		return point{x: x, y: y}
	}
	off := t.shift * z
	if !(math.Abs(off) <= BigRadius) {
		off = 0
	}
	return point{x: x + off, y: y}
}

// Resize replaces the pixels with a new width x height buffer.
// The contents are not preserved.
func (t *Target) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	t.raster.Reset(t.Width(), t.Height())
}
