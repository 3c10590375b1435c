package view

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/optiview/recording"
)

// Zoom ratios for one wheel notch.
const (
	ZoomIn  = math.Sqrt2 / 2
	ZoomOut = math.Sqrt2
)

// DepthSampleLimit is how many stream entries AverageDepth inspects.
const DepthSampleLimit = 1000

// anchor returns the view-plane offset of device pixel (ix, iy) from the
// window center, in world units.
func (s *State) anchor(ix, iy float64) (qh, qv float64) {
	kx, ky := s.PixelsPerUnit()
	return (ix - float64(s.width)/2) / kx, (float64(s.height)/2 - iy) / ky
}

// ZoomAt scales every span by ratio while keeping the world point under
// device pixel (ix, iy) fixed. It reports false, leaving the state
// unchanged, when a span would drop below MinSpan or ratio is not a
// positive finite number.
func (s *State) ZoomAt(ix, iy, ratio float64) bool {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return false
	}
	for _, sp := range s.span {
		if sp*ratio < MinSpan {
			return false
		}
	}
	s.fold()
	qh, qv := s.anchor(ix, iy)
	k := 1 - ratio
	s.center = add(s.center, applyT(&s.m, f64.Vec3{k * qh, k * qv, 0}))
	s.span = mul(s.span, ratio)
	return true
}

// ZoomVerticalAt is ZoomAt restricted to the vertical span.
func (s *State) ZoomVerticalAt(ix, iy, ratio float64) bool {
	if !(ratio > 0) || math.IsInf(ratio, 0) || s.span[1]*ratio < MinSpan {
		return false
	}
	s.fold()
	_, qv := s.anchor(ix, iy)
	s.center = add(s.center, applyT(&s.m, f64.Vec3{0, (1 - ratio) * qv, 0}))
	s.span[1] *= ratio
	return true
}

// Pan moves the picture by (dx, dy) device pixels. Pan(dx, dy) followed
// by Pan(-dx, -dy) restores Center exactly.
func (s *State) Pan(dx, dy int) {
	s.panX += dx
	s.panY += dy
}

// Rotate adds to the azimuth and elevation, in degrees.
func (s *State) Rotate(dAz, dEl float64) {
	s.fold()
	s.az += dAz
	s.el += dEl
	s.update()
}

// RotateRecentered rotates like Rotate and moves the center so that the
// point depth world units out of the screen along the old view axis stays
// on the new view axis at the same depth. Large objects then turn about
// their visible middle instead of swinging off screen.
func (s *State) RotateRecentered(dAz, dEl, depth float64) {
	s.fold()
	oOld := row(&s.m, 2)
	s.az += dAz
	s.el += dEl
	s.update()
	if depth == 0 || math.IsNaN(depth) || math.IsInf(depth, 0) {
		return
	}
	s.center = add(s.center, mul(sub(oOld, row(&s.m, 2)), depth))
}

// Fit centers the window on the box [lo, hi] and sizes the spans so the
// whole box is visible under any rotation, keeping the target's aspect.
func (s *State) Fit(lo, hi f64.Vec3) {
	c := mul(add(lo, hi), 0.5)
	d := sub(hi, lo)
	r := math.Sqrt(Dot(d, d)) / 2 * 1.1
	r = clampSpan(r)
	s.SetCenter(c)
	aspect := float64(s.width) / float64(s.height)
	if aspect >= 1 {
		s.SetSpans(r*aspect, r, r)
	} else {
		s.SetSpans(r, r/aspect, r)
	}
}

// AxisLabels returns the names of the world axes most closely aligned
// with screen right and screen up, such as "+X" and "-Z".
func (s *State) AxisLabels() (right, up string) {
	return axisLabel(row(&s.m, 0)), axisLabel(row(&s.m, 1))
}

func axisLabel(d f64.Vec3) string {
	best := 0
	for i := 1; i < 3; i++ {
		if math.Abs(d[i]) > math.Abs(d[best]) {
			best = i
		}
	}
	sign := "+"
	if d[best] < 0 {
		sign = "-"
	}
	return sign + string(rune('X'+best))
}

// AverageDepth averages the device depth of the vertex commands among
// the first limit entries of st that fall inside the visible window, and
// returns it in world units. It returns 0 when nothing is visible.
// Screen furniture recorded under RegionAxes or RegionRulers has no world
// depth and is skipped.
func (s *State) AverageDepth(st *recording.Stream, limit int) float64 {
	var sum float64
	n := 0
	furniture := false
	for i, c := range st.All() {
		if i >= limit {
			break
		}
		if c.Op == recording.OpBeginRegion {
			r := c.Region()
			furniture = r == recording.RegionAxes || r == recording.RegionRulers
			continue
		}
		if furniture || !c.Op.IsVertex() {
			continue
		}
		x, y, z := c.Point()
		if !s.InWindow(x, y, z) {
			continue
		}
		sum += z
		n++
	}
	if n == 0 {
		return 0
	}
	_, ky := s.PixelsPerUnit()
	return sum / float64(n) / ky
}
