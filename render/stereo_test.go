// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/gogpu/optiview/recording"
)

func stereoScene() *recording.Stream {
	return newStream(func(rec *recording.Recorder) {
		rec.SetBackground(white)
		rec.SetStrokeColor(black)
		rec.SetLineStyle(3, recording.DashDashed)
		rec.Polyline([]recording.Vertex{
			{X: 10, Y: 10, Z: 40}, {X: 90, Y: 30, Z: -20}, {X: 50, Y: 90, Z: 0},
		}, false)
		rec.SetFillColor(color.NRGBA{96, 128, 255, 96})
		rec.Polyline([]recording.Vertex{
			{X: 20, Y: 60, Z: 10}, {X: 80, Y: 60, Z: 10}, {X: 50, Y: 20, Z: 30},
		}, true)
		rec.Text(recording.Vertex{X: 30, Y: 80, Z: 5}, "+X", recording.FontSmall)
	})
}

func TestStereoIdentityAtZeroParallax(t *testing.T) {
	r := NewRenderer()
	s := stereoScene()

	mono := NewTarget(100, 100)
	if err := r.Render(mono, s); err != nil {
		t.Fatal(err)
	}

	stereo := NewTarget(100, 100)
	r.renderAnaglyph(stereo, 0, []*recording.Stream{s})

	if !bytes.Equal(mono.Pixels(), stereo.Pixels()) {
		t.Error("two-pass path at zero parallax differs from the single pass")
	}

	skipped := NewTarget(100, 100)
	if err := r.RenderStereo(skipped, 0, s); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(mono.Pixels(), skipped.Pixels()) {
		t.Error("RenderStereo at zero parallax differs from the single pass")
	}
}

func TestStereoSeparatesChannels(t *testing.T) {
	s := newStream(func(rec *recording.Recorder) {
		rec.SetBackground(white)
		rec.SetStrokeColor(black)
		rec.SetLineStyle(2, recording.DashSolid)
		// A vertical line 20 pixels of depth out of the screen.
		rec.Line(recording.Vertex{X: 50, Y: 10, Z: 20}, recording.Vertex{X: 50, Y: 90, Z: 20})
	})

	target := NewTarget(100, 100)
	if err := NewRenderer().RenderStereo(target, 0.5, s); err != nil {
		t.Fatal(err)
	}
	img := target.Image()

	// Cyan eye shifted left by 10: red stays, green and blue are inked.
	if got := img.RGBAAt(40, 50); got.R != 255 || got.G != 0 || got.B != 0 {
		t.Errorf("left eye pixel = %v, want red (cyan channels inked)", got)
	}
	// Red eye shifted right by 10: red is inked, cyan stays.
	if got := img.RGBAAt(60, 50); got.R != 0 || got.G != 255 || got.B != 255 {
		t.Errorf("right eye pixel = %v, want cyan (red channel inked)", got)
	}
	// The unshifted position is untouched by either eye.
	if got := img.RGBAAt(50, 50); !isWhite(got) {
		t.Errorf("center pixel = %v, want white", got)
	}
}

func TestStereoTranslucentAlpha(t *testing.T) {
	s := newStream(func(rec *recording.Recorder) {
		rec.SetBackground(color.NRGBA{255, 255, 255, 0x40})
		rec.SetStrokeColor(color.NRGBA{0, 0, 0, 0x7f})
		rec.SetLineStyle(4, recording.DashSolid)
		rec.Line(recording.Vertex{X: 50, Y: 10, Z: 20}, recording.Vertex{X: 50, Y: 90, Z: 20})
	})

	target := NewTarget(100, 100)
	r := NewRenderer()
	if err := r.RenderStereo(target, 0.5, s); err != nil {
		t.Fatal(err)
	}
	left, right := target.stereoScratch()
	dst, lp, rp := target.Pixels(), left.Pixels(), right.Pixels()

	differ := 0
	for i := 0; i+3 < len(dst); i += 4 {
		la, ra, a := lp[i+3], rp[i+3], dst[i+3]
		if la != ra {
			differ++
		}
		if want := max(la, ra); a != want {
			t.Fatalf("pixel %d alpha = %#x, want %#x (eyes %#x, %#x)", i/4, a, want, la, ra)
		}
		for k := range 3 {
			if dst[i+k] > a {
				t.Fatalf("pixel %d channel %d = %#x exceeds alpha %#x", i/4, k, dst[i+k], a)
			}
		}
	}
	if differ == 0 {
		t.Error("eyes never disagree on alpha; the scene does not exercise the merge")
	}
}

func TestStereoScratchFollowsResize(t *testing.T) {
	target := NewTarget(30, 30)
	r := NewRenderer()
	s := stereoScene()
	if err := r.RenderStereo(target, 0.1, s); err != nil {
		t.Fatal(err)
	}
	target.Resize(60, 40)
	if err := r.RenderStereo(target, 0.1, s); err != nil {
		t.Fatal(err)
	}
	left, right := target.stereoScratch()
	if left.Width() != 60 || right.Height() != 40 {
		t.Errorf("scratch size = %dx%d, want 60x40", left.Width(), right.Height())
	}
}
