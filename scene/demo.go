package scene

import (
	"math"
	"math/rand/v2"

	"golang.org/x/image/math/f64"
)

// Demo assembly: a cemented doublet focusing toward z = demoFocus, an
// iris, a 45° fold mirror on a four-leg spider, and a lenslet array at
// the folded focus.
const (
	demoFocus    = 75.0
	demoAperture = 4.0
	demoIris     = 20.0
	demoMirror   = 60.0
	demoImage    = -40.0
	demoHeight   = 9.0
)

// Demo returns a synthetic assembly with table rays and a random ray
// tracer, for the viewer and for tests.
func Demo() *Static {
	h := math.Sqrt2 / 2
	surfs := []Surface{
		{Vertex: f64.Vec3{0, 0, 0}, Orient: Identity, Outer: [2]float64{10, 10}, Type: Lens, Glass: true},
		{Vertex: f64.Vec3{0, 0, 4}, Orient: Identity, Outer: [2]float64{10, 10}, Type: Lens, Glass: true},
		{Vertex: f64.Vec3{0, 0, 6}, Orient: Identity, Outer: [2]float64{10, 10}, Type: Lens},
		{Vertex: f64.Vec3{0, 0, demoIris}, Orient: Identity, Outer: [2]float64{12, 12}, Inner: [2]float64{demoAperture, demoAperture}, Type: Iris},
		{
			Vertex: f64.Vec3{0, 0, demoMirror},
			Orient: f64.Mat3{1, 0, 0, 0, h, -h, 0, h, h},
			Outer:  [2]float64{15, 15},
			Inner:  [2]float64{3, 3},
			Type:   Mirror,
			Legs:   4,
		},
		{Vertex: f64.Vec3{0, 0, demoMirror}, Orient: Identity, Type: CoordBreak},
		{
			Vertex: f64.Vec3{0, demoImage, demoMirror},
			Orient: f64.Mat3{1, 0, 0, 0, 0, 1, 0, -1, 0},
			Outer:  [2]float64{8, 8},
			Type:   Array,
			ArrayX: 4,
			ArrayY: 4,
		},
	}

	var points [][]f64.Vec3
	var howFar []int
	for _, y0 := range []float64{-demoHeight, -demoHeight / 2, 0, demoHeight / 2, demoHeight} {
		pts, last := traceDemo(0, y0)
		if y0 == 0 {
			// The axial ray starts on the vertex; its first intercept
			// carries the skip flag.
			pts[0][2] = math.Copysign(0, -1)
		}
		points = append(points, pts)
		howFar = append(howFar, last)
	}

	return &Static{
		SurfaceList: surfs,
		RayList:     FromSentinels(points, howFar),
		Tracer:      traceRandomDemo,
	}
}

// traceDemo follows the ray entering at (x0, y0) through the demo
// surfaces and returns its intercepts and the index of the last surface
// it reaches.
func traceDemo(x0, y0 float64) ([]f64.Vec3, int) {
	at := func(z float64) f64.Vec3 {
		k := 1 - z/demoFocus
		return f64.Vec3{x0 * k, y0 * k, z}
	}
	pts := []f64.Vec3{at(0), at(4), at(6), at(demoIris)}

	// Fold mirror plane: z = demoMirror - y.
	ym := y0 * (demoFocus - demoMirror) / (demoFocus - y0)
	zm := demoMirror - ym
	m := at(zm)
	pts = append(pts, m, m)

	// Reflected direction (-x0/f, -1, y0/f); travel down to the array.
	t := ym - demoImage
	pts = append(pts, f64.Vec3{m[0] - x0/demoFocus*t, demoImage, zm + y0/demoFocus*t})

	last := len(pts) - 1
	if r := math.Hypot(pts[3][0], pts[3][1]); r > demoAperture {
		last = 3
	}
	return pts, last
}

// traceRandomDemo samples n rays uniformly over the entrance pupil.
func traceRandomDemo(rng *rand.Rand, n int) []Ray {
	points := make([][]f64.Vec3, 0, n)
	howFar := make([]int, 0, n)
	for len(points) < n {
		x0 := (2*rng.Float64() - 1) * demoHeight
		y0 := (2*rng.Float64() - 1) * demoHeight
		if x0*x0+y0*y0 > demoHeight*demoHeight {
			continue
		}
		pts, last := traceDemo(x0, y0)
		points = append(points, pts)
		howFar = append(howFar, last)
	}
	return FromSentinels(points, howFar)
}
