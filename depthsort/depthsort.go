// Package depthsort orders view decorations for painter's-algorithm
// compositing.
//
// Each frame the scene builder adds one Element per sortable decoration
// (shading panel, boundary arc, connector, array hole, spider leg). The
// Compositor sorts them by depth key, far first, and plays their draw
// routines into the base stream; the elements flagged Front are then
// re-emitted into the finish stream so that later overlays sit in front
// of all base geometry without sorting again.
package depthsort

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/optiview"
	"github.com/gogpu/optiview/recording"
	"github.com/gogpu/optiview/view"
)

// DefaultMaxElements is the ceiling used by New when limit is not positive.
const DefaultMaxElements = 4096

// Kind is the decoration type of an Element.
type Kind uint8

const (
	KindPanel     Kind = iota // shading panel of one surface quadrant
	KindArc                   // boundary arc
	KindConnector             // edge connector between paired surfaces
	KindHole                  // array cell hole
	KindLeg                   // spider leg
)

var kindNames = [...]string{
	KindPanel:     "panel",
	KindArc:       "arc",
	KindConnector: "connector",
	KindHole:      "hole",
	KindLeg:       "leg",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Element is one sortable decoration.
type Element struct {
	Kind    Kind
	Surface int // owning surface index
	Sub     int // quadrant, cell or leg index within the surface

	// Depth is the distance of the element's representative point behind
	// the screen plane through the window center. Larger is farther from
	// the viewer; nearer points are negative.
	Depth float64

	// Front reports whether the element lies nearer than its surface
	// vertex; such elements are re-emitted into the finish stream.
	Front bool

	// Draw records the element. It must leave no polyline open.
	Draw func(rec *recording.Recorder)
}

// DepthKey returns the depth of world point p: the negated out-of-screen
// view coordinate.
func DepthKey(st *view.State, p f64.Vec3) float64 {
	return -st.Project(p)[2]
}

// IsFront reports whether p is nearer the viewer than vertex.
func IsFront(st *view.State, p, vertex f64.Vec3) bool {
	return DepthKey(st, p) < DepthKey(st, vertex)
}

// Compositor collects the elements of one frame and emits them in
// painter's order. It holds at most a fixed number of elements; further
// additions are dropped without error.
//
// A Compositor is reused across frames with Reset and is not safe for
// concurrent use.
type Compositor struct {
	limit   int
	elems   []Element
	dropped int
	sorted  bool
}

// New returns a Compositor holding at most limit elements.
func New(limit int) *Compositor {
	if limit <= 0 {
		limit = DefaultMaxElements
	}
	return &Compositor{limit: limit, elems: make([]Element, 0, min(limit, 256))}
}

// Limit returns the element ceiling.
func (c *Compositor) Limit() int { return c.limit }

// Add appends e and reports whether it was kept. A NaN depth sorts as
// farthest.
func (c *Compositor) Add(e Element) bool {
	if len(c.elems) >= c.limit {
		c.dropped++
		return false
	}
	if math.IsNaN(e.Depth) {
		e.Depth = math.Inf(1)
	}
	c.elems = append(c.elems, e)
	c.sorted = false
	return true
}

// Len returns the number of elements held.
func (c *Compositor) Len() int { return len(c.elems) }

// Dropped returns how many elements were refused since the last Reset.
func (c *Compositor) Dropped() int { return c.dropped }

// Elements returns the held elements, in sorted order after Sort.
// The slice must not be modified.
func (c *Compositor) Elements() []Element { return c.elems }

// Reset empties the compositor for the next frame.
func (c *Compositor) Reset() {
	clear(c.elems)
	c.elems = c.elems[:0]
	c.dropped = 0
	c.sorted = false
}

// Sort orders the elements far first, by descending depth. Elements with
// equal depth keep the order in which they were added.
//
// The sort is a selection sort that moves each farthest element into place by
// shifting the elements in between rather than swapping, which keeps it
// stable.
func (c *Compositor) Sort() {
	if c.sorted {
		return
	}
	if c.dropped > 0 {
		optiview.Logger().Debug("depthsort: element ceiling reached",
			"limit", c.limit, "dropped", c.dropped)
	}
	sortStable(c.elems)
	c.sorted = true
}

func sortStable(e []Element) {
	for i := range e {
		m := i
		for j := i + 1; j < len(e); j++ {
			if e[j].Depth > e[m].Depth {
				m = j
			}
		}
		if m == i {
			continue
		}
		far := e[m]
		copy(e[i+1:m+1], e[i:m])
		e[i] = far
	}
}

// Emit sorts the elements and records each one into rec, far first.
func (c *Compositor) Emit(rec *recording.Recorder) {
	c.Sort()
	for i := range c.elems {
		if d := c.elems[i].Draw; d != nil {
			d(rec)
		}
	}
}

// EmitFront records only the Front elements, in the same order as Emit.
func (c *Compositor) EmitFront(rec *recording.Recorder) {
	c.Sort()
	for i := range c.elems {
		if e := &c.elems[i]; e.Front && e.Draw != nil {
			e.Draw(rec)
		}
	}
}
