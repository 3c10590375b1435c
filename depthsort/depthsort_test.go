package depthsort

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/optiview/recording"
	"github.com/gogpu/optiview/view"
)

// tagged returns an element whose draw routine records its tag as a
// region comment, so emission order can be read back from the stream.
func tagged(tag int, depth float64, front bool) Element {
	return Element{
		Kind:  KindPanel,
		Sub:   tag,
		Depth: depth,
		Front: front,
		Draw: func(rec *recording.Recorder) {
			rec.Stream().Append(recording.OpBeginRegion, float64(tag))
		},
	}
}

func emitted(s *recording.Stream) []int {
	var out []int
	for _, c := range s.All() {
		out = append(out, int(c.A))
	}
	return out
}

func TestFarThenNear(t *testing.T) {
	// Two overlapping panels, one 5 units behind the window center and
	// one 3 units in front of it. The far one is painted first whatever
	// the insertion order.
	tests := []struct {
		name   string
		depths []float64
	}{
		{"far added first", []float64{5.0, -3.0}},
		{"near added first", []float64{-3.0, 5.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(0)
			for i, d := range tt.depths {
				c.Add(tagged(i, d, false))
			}
			s := recording.NewStream(recording.PurposeBase)
			c.Emit(recording.NewRecorder(s))

			var got []float64
			for _, tag := range emitted(s) {
				got = append(got, tt.depths[tag])
			}
			assert.Equal(t, []float64{5.0, -3.0}, got)
		})
	}
}

func TestSortRandomizedStable(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 12))
	for _, n := range []int{0, 1, 2, 17, 300, DefaultMaxElements} {
		c := New(DefaultMaxElements)
		for i := range n {
			// Few distinct keys so that ties are common.
			c.Add(Element{Sub: i, Depth: float64(r.IntN(n/4 + 1))})
		}
		c.Sort()

		got := c.Elements()
		require.Len(t, got, n)
		seen := make([]bool, n)
		for i, e := range got {
			require.False(t, seen[e.Sub], "element %d emitted twice", e.Sub)
			seen[e.Sub] = true
			if i == 0 {
				continue
			}
			prev := got[i-1]
			require.GreaterOrEqual(t, prev.Depth, e.Depth, "n=%d i=%d", n, i)
			if prev.Depth == e.Depth {
				require.Less(t, prev.Sub, e.Sub, "tie at n=%d i=%d not stable", n, i)
			}
		}
	}
}

func TestCeilingTruncatesSilently(t *testing.T) {
	c := New(3)
	for i := range 5 {
		kept := c.Add(tagged(i, float64(i), false))
		assert.Equal(t, i < 3, kept, "Add(%d)", i)
	}
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Dropped())

	s := recording.NewStream(recording.PurposeBase)
	c.Emit(recording.NewRecorder(s))
	assert.Equal(t, []int{2, 1, 0}, emitted(s))

	c.Reset()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Dropped())
}

func TestEmitFront(t *testing.T) {
	c := New(16)
	c.Add(tagged(0, -4, true))
	c.Add(tagged(1, 2, false))
	c.Add(tagged(2, -1, true))
	c.Add(Element{Depth: 0, Front: true}) // no draw routine

	base := recording.NewStream(recording.PurposeBase)
	finish := recording.NewStream(recording.PurposeFinish)
	c.Emit(recording.NewRecorder(base))
	c.EmitFront(recording.NewRecorder(finish))

	assert.Equal(t, []int{1, 2, 0}, emitted(base))
	assert.Equal(t, []int{2, 0}, emitted(finish))
}

func TestNaNDepthSortsFirst(t *testing.T) {
	c := New(4)
	c.Add(tagged(0, 1, false))
	c.Add(tagged(1, math.NaN(), false))
	c.Sort()
	assert.Equal(t, 1, c.Elements()[0].Sub)
}

func TestDepthKey(t *testing.T) {
	st := view.New(100, 100)
	// Front view with up +Z: the viewer is on the -Y side.
	near := f64.Vec3{0, -1, 0}
	far := f64.Vec3{0, 1, 0}
	assert.InDelta(t, -1, DepthKey(st, near), 1e-12)
	assert.InDelta(t, 1, DepthKey(st, far), 1e-12)
	assert.True(t, IsFront(st, near, f64.Vec3{}))
	assert.False(t, IsFront(st, far, f64.Vec3{}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "leg", KindLeg.String())
	assert.Equal(t, "unknown", Kind(77).String())
}
