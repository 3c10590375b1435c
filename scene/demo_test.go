package scene

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoTableRays(t *testing.T) {
	g := Demo()
	require.NoError(t, g.Err())
	require.Len(t, g.Surfaces(), 7)
	require.Len(t, g.Rays(), 5)

	for i, r := range g.Rays() {
		require.Len(t, r.Intercepts, len(g.Surfaces()), "ray %d", i)
	}

	// Marginal rays are stopped by the iris.
	for _, i := range []int{0, 4} {
		ic := g.Rays()[i].Intercepts
		assert.Equal(t, Hit, ic[3].State)
		assert.Equal(t, Unreached, ic[4].State)
	}

	axial := g.Rays()[2].Intercepts
	assert.Equal(t, Skipped, axial[0].State)
	assert.False(t, math.Signbit(axial[0].P[2]))
	assert.Equal(t, Hit, axial[len(axial)-1].State)

	// Inner rays are folded down to the array plane.
	for _, i := range []int{1, 3} {
		ic := g.Rays()[i].Intercepts
		last := ic[len(ic)-1]
		assert.Equal(t, Hit, last.State)
		assert.InDelta(t, demoImage, last.P[1], 1e-9)
	}
}

func TestDemoFoldMirrorIntercept(t *testing.T) {
	pts, last := traceDemo(0, 4.5)
	assert.Equal(t, len(pts)-1, last)
	m := pts[4]
	assert.InDelta(t, demoMirror-m[1], m[2], 1e-9, "intercept lies on the mirror plane")
}

func TestDemoTraceRandom(t *testing.T) {
	g := Demo()
	a := g.TraceRandom(rand.New(rand.NewPCG(7, 7)), 50)
	b := g.TraceRandom(rand.New(rand.NewPCG(7, 7)), 50)
	require.Len(t, a, 50)
	assert.Equal(t, a, b)

	for _, r := range a {
		p := r.Intercepts[0].P
		assert.LessOrEqual(t, math.Hypot(p[0], p[1]), demoHeight)
	}
}
