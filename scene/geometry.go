package scene

import (
	"math"
	"math/rand/v2"

	"golang.org/x/image/math/f64"
)

// SurfaceType tags how a surface is drawn.
type SurfaceType uint8

const (
	Plain      SurfaceType = iota // outline only
	Lens                          // refracting surface, shaded
	Mirror                        // reflecting surface, shaded
	Iris                          // stop; the inner radius is the aperture
	Array                         // lenslet or hole array
	CoordBreak                    // coordinate break, not drawn
)

var surfaceTypeNames = [...]string{
	Plain:      "plain",
	Lens:       "lens",
	Mirror:     "mirror",
	Iris:       "iris",
	Array:      "array",
	CoordBreak: "coordinate-break",
}

func (t SurfaceType) String() string {
	if int(t) < len(surfaceTypeNames) {
		return surfaceTypeNames[t]
	}
	return "unknown"
}

// Surface is one optical surface as placed by the solver.
type Surface struct {
	// Vertex is the world position of the surface center.
	Vertex f64.Vec3

	// Orient holds the surface's local x, y and normal axes as its rows,
	// in world coordinates.
	Orient f64.Mat3

	// Outer and Inner are the boundary radii along local x and y. A zero
	// inner radius means the surface has no central hole.
	Outer, Inner [2]float64

	Type SurfaceType

	// Glass reports that the medium between this surface and the next is
	// glass; the two are joined by edge connectors.
	Glass bool

	// ArrayX and ArrayY are the cell counts of an Array surface.
	ArrayX, ArrayY int

	// Legs is the number of spider legs holding the surface.
	Legs int
}

// Identity is the orientation of a surface facing +Z.
var Identity = f64.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}

// At returns the world point at local coordinates (x, y) on the surface
// plane.
func (s *Surface) At(x, y float64) f64.Vec3 {
	o := &s.Orient
	return f64.Vec3{
		s.Vertex[0] + x*o[0] + y*o[3],
		s.Vertex[1] + x*o[1] + y*o[4],
		s.Vertex[2] + x*o[2] + y*o[5],
	}
}

// Rim returns the point at angle a (radians) on the ellipse with radii
// rx, ry.
func (s *Surface) Rim(a, rx, ry float64) f64.Vec3 {
	sa, ca := math.Sincos(a)
	return s.At(rx*ca, ry*sa)
}

// InterceptState says whether a ray intercept is drawn.
type InterceptState uint8

const (
	// Unreached marks an intercept the ray was never traced to. It ends
	// the drawn ray.
	Unreached InterceptState = iota

	// Hit is an ordinary intercept.
	Hit

	// Skipped is computed but not drawn; the ray is drawn straight
	// through to the next hit.
	Skipped
)

var interceptNames = [...]string{
	Unreached: "unreached",
	Hit:       "hit",
	Skipped:   "skipped",
}

func (s InterceptState) String() string {
	if int(s) < len(interceptNames) {
		return interceptNames[s]
	}
	return "unknown"
}

// Intercept is a ray's crossing of one surface.
type Intercept struct {
	P     f64.Vec3
	State InterceptState
}

// Ray is a traced ray with one intercept per surface.
type Ray struct {
	Intercepts []Intercept
}

// Geometry is the read-only view of the solver that a scene is built
// from. It is consulted once per frame.
type Geometry interface {
	Surfaces() []Surface
	Rays() []Ray

	// Err reports a solver failure. A failed geometry renders as a blank
	// frame.
	Err() error
}

// RandomTracer is implemented by geometries that can trace random rays
// for the sampled overlay.
type RandomTracer interface {
	TraceRandom(rng *rand.Rand, n int) []Ray
}

// FromSentinels converts intercepts in the legacy convention into rays.
// points[r][j] is ray r at surface j; a Z of negative zero marks an
// intercept to skip, and surfaces past howFar[r] were not reached. A
// missing howFar entry means the ray reached every surface.
func FromSentinels(points [][]f64.Vec3, howFar []int) []Ray {
	rays := make([]Ray, len(points))
	for r, pts := range points {
		last := len(pts) - 1
		if r < len(howFar) {
			last = howFar[r]
		}
		ic := make([]Intercept, len(pts))
		for j, p := range pts {
			ic[j].P = p
			switch {
			case j > last:
				ic[j].State = Unreached
			case p[2] == 0 && math.Signbit(p[2]):
				ic[j].State = Skipped
				ic[j].P[2] = 0
			default:
				ic[j].State = Hit
			}
		}
		rays[r].Intercepts = ic
	}
	return rays
}

// Static is a Geometry held in memory.
type Static struct {
	SurfaceList []Surface
	RayList     []Ray

	// Failure is returned by Err.
	Failure error

	// Tracer, when set, serves TraceRandom.
	Tracer func(rng *rand.Rand, n int) []Ray
}

func (s *Static) Surfaces() []Surface { return s.SurfaceList }
func (s *Static) Rays() []Ray         { return s.RayList }
func (s *Static) Err() error          { return s.Failure }

// TraceRandom implements RandomTracer. Without a Tracer it returns nil.
func (s *Static) TraceRandom(rng *rand.Rand, n int) []Ray {
	if s.Tracer == nil {
		return nil
	}
	return s.Tracer(rng, n)
}

// Bounds returns the world box enclosing every drawn surface. ok is
// false when there is none.
func Bounds(g Geometry) (lo, hi f64.Vec3, ok bool) {
	lo = f64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = f64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	grow := func(p f64.Vec3) {
		for i := range 3 {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	surfs := g.Surfaces()
	for i := range surfs {
		s := &surfs[i]
		if s.Type == CoordBreak {
			continue
		}
		rx, ry := s.Outer[0], s.Outer[1]
		grow(s.At(-rx, -ry))
		grow(s.At(rx, -ry))
		grow(s.At(-rx, ry))
		grow(s.At(rx, ry))
		ok = true
	}
	return lo, hi, ok
}
