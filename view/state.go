package view

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/optiview/recording"
)

// MinSpan is the smallest half-extent a view may be zoomed to.
const MinSpan = 1e-6

// State is the viewpoint of one view: the world-space window (center and
// half-extents), the elevation and azimuth angles in degrees, the up axis,
// and the size of the device target in pixels.
//
// The rotation for every up axis comes from a single parameterization.
// With (a, b, u) the right-handed frame of the up axis:
//
//	h = cos(az)·a + sin(az)·b                  screen right
//	f = cos(az)·b − sin(az)·a
//	v = cos(el)·u + sin(el)·f                  screen up
//	o = sin(el)·u − cos(el)·f                  out of the screen
//
// h × v = o for every choice, so all six orientations share one
// handedness and agree wherever two of them coincide.
//
// Device mapping, with k = pixels per world unit:
//
//	x = W/2 + kx·h(p−c) + panX
//	y = H/2 − ky·v(p−c) + panY
//	z = ky·o(p−c)
//
// Depth shares the vertical scale so that vertical and depth
// displacements stay consistent under rotation.
//
// A State is owned by one interaction controller and is not safe for
// concurrent use.
type State struct {
	center f64.Vec3
	span   f64.Vec3 // horizontal, vertical, depth half-extents
	el, az float64
	up     Axis

	width, height int

	// Pending pan in whole pixels. Kept apart from center so that a pan
	// and its reverse cancel exactly; folded on the next non-pan edit.
	panX, panY int

	m f64.Mat3
}

// New returns a State looking at the origin from the front, with up = +Z,
// half-extents of 1 and a width x height target.
func New(width, height int) *State {
	s := &State{
		span:   f64.Vec3{1, 1, 1},
		width:  max(width, 1),
		height: max(height, 1),
	}
	s.update()
	return s
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	c := *s
	return &c
}

func (s *State) update() {
	s.el = wrapDegrees(s.el)
	s.az = wrapDegrees(s.az)
	a, b, u := s.up.basis()
	sa, ca := math.Sincos(s.az * math.Pi / 180)
	se, ce := math.Sincos(s.el * math.Pi / 180)
	h := lin(a, ca, b, sa)
	f := lin(b, ca, a, -sa)
	v := lin(u, ce, f, se)
	o := lin(u, se, f, -ce)
	s.m = rows(h, v, o)
}

// wrapDegrees maps a to (−180, 180]. NaN and infinities become 0.
func wrapDegrees(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, 360)
	switch {
	case a <= -180:
		a += 360
	case a > 180:
		a -= 360
	}
	return a
}

func clampSpan(v float64) float64 {
	if !(v >= MinSpan) || math.IsInf(v, 0) {
		return MinSpan
	}
	return v
}

// fold moves the pending pan into center.
func (s *State) fold() {
	if s.panX == 0 && s.panY == 0 {
		return
	}
	s.center = s.Center()
	s.panX, s.panY = 0, 0
}

// Center returns the world point shown at the middle of the target.
func (s *State) Center() f64.Vec3 {
	if s.panX == 0 && s.panY == 0 {
		return s.center
	}
	kx, ky := s.PixelsPerUnit()
	return sub(s.center, applyT(&s.m, f64.Vec3{float64(s.panX) / kx, -float64(s.panY) / ky, 0}))
}

// SetCenter moves the window to c.
func (s *State) SetCenter(c f64.Vec3) {
	s.center = c
	s.panX, s.panY = 0, 0
}

// Spans returns the horizontal, vertical and depth half-extents.
func (s *State) Spans() f64.Vec3 { return s.span }

// SetSpans sets the half-extents, clamping each to MinSpan.
func (s *State) SetSpans(h, v, d float64) {
	s.fold()
	s.span = f64.Vec3{clampSpan(h), clampSpan(v), clampSpan(d)}
}

// Angles returns elevation and azimuth in degrees.
func (s *State) Angles() (el, az float64) { return s.el, s.az }

// SetAngles sets elevation and azimuth in degrees.
func (s *State) SetAngles(el, az float64) {
	s.fold()
	s.el, s.az = el, az
	s.update()
}

// Up returns the up axis.
func (s *State) Up() Axis { return s.up }

// SetUp selects the up axis.
func (s *State) SetUp(a Axis) {
	if int(a) >= len(axisNames) {
		a = UpPosZ
	}
	s.fold()
	s.up = a
	s.update()
}

// Size returns the target size in pixels.
func (s *State) Size() (width, height int) { return s.width, s.height }

// SetSize changes the target size, keeping the world window.
func (s *State) SetSize(width, height int) {
	s.fold()
	s.width, s.height = max(width, 1), max(height, 1)
}

// Rotation returns the world-to-view rotation. Its rows are the screen
// right, up and out-of-screen directions in world coordinates.
func (s *State) Rotation() f64.Mat3 { return s.m }

// ScreenAxes returns the screen right, up and out-of-screen directions.
func (s *State) ScreenAxes() (h, v, o f64.Vec3) {
	return row(&s.m, 0), row(&s.m, 1), row(&s.m, 2)
}

// PixelsPerUnit returns the horizontal and vertical device scale.
func (s *State) PixelsPerUnit() (kx, ky float64) {
	return float64(s.width) / (2 * s.span[0]), float64(s.height) / (2 * s.span[1])
}

// Project returns the view coordinates of p relative to the window
// center: horizontal, vertical and out-of-screen, in world units.
func (s *State) Project(p f64.Vec3) f64.Vec3 {
	return apply(&s.m, sub(p, s.center))
}

// Unproject is the inverse of Project.
func (s *State) Unproject(q f64.Vec3) f64.Vec3 {
	return add(s.center, applyT(&s.m, q))
}

// ToDevice maps a world point to device x, y (pixels, y down) and depth
// (out of the screen, in vertical pixels).
func (s *State) ToDevice(p f64.Vec3) (x, y, z float64) {
	q := s.Project(p)
	kx, ky := s.PixelsPerUnit()
	x = float64(s.width)/2 + kx*q[0] + float64(s.panX)
	y = float64(s.height)/2 - ky*q[1] + float64(s.panY)
	z = ky * q[2]
	return x, y, z
}

// Vertex is ToDevice packaged for a command stream.
func (s *State) Vertex(p f64.Vec3) recording.Vertex {
	x, y, z := s.ToDevice(p)
	return recording.Vertex{X: x, Y: y, Z: z}
}

// FromDevice is the exact algebraic inverse of ToDevice.
func (s *State) FromDevice(x, y, z float64) f64.Vec3 {
	kx, ky := s.PixelsPerUnit()
	q := f64.Vec3{
		(x - float64(s.width)/2 - float64(s.panX)) / kx,
		(float64(s.height)/2 + float64(s.panY) - y) / ky,
		z / ky,
	}
	return s.Unproject(q)
}

// Marker returns the affine pair that maps rotated world coordinates
// (Rotation()·p) to device coordinates.
func (s *State) Marker() recording.Marker {
	kx, ky := s.PixelsPerUnit()
	c := apply(&s.m, s.center)
	return recording.Marker{
		Origin: [3]float64{
			float64(s.width)/2 + float64(s.panX) - kx*c[0],
			float64(s.height)/2 + float64(s.panY) + ky*c[1],
			-ky * c[2],
		},
		Scale: [3]float64{kx, -ky, ky},
	}
}

// InWindow reports whether the device point lies on the target and
// within the depth half-extent.
func (s *State) InWindow(x, y, z float64) bool {
	_, ky := s.PixelsPerUnit()
	return x >= 0 && x <= float64(s.width) &&
		y >= 0 && y <= float64(s.height) &&
		math.Abs(z) <= ky*s.span[2]
}
