package scene

import (
	"golang.org/x/image/math/f64"

	"github.com/gogpu/optiview"
)

// Accumulator collects random rays across sampling passes. It holds at
// most a fixed number of rays; later additions are dropped.
type Accumulator struct {
	limit   int
	rays    []Ray
	dropped int
}

// NewAccumulator returns an Accumulator holding at most limit rays.
func NewAccumulator(limit int) *Accumulator {
	return &Accumulator{limit: max(limit, 0)}
}

// Add appends rays up to the limit and returns how many were kept.
func (a *Accumulator) Add(rays ...Ray) int {
	n := min(len(rays), a.limit-len(a.rays))
	a.rays = append(a.rays, rays[:n]...)
	if d := len(rays) - n; d > 0 {
		if a.dropped == 0 {
			optiview.Logger().Debug("scene: random ray limit reached", "limit", a.limit)
		}
		a.dropped += d
	}
	return n
}

// Rays returns the accumulated rays. The slice must not be modified.
func (a *Accumulator) Rays() []Ray { return a.rays }

// Len returns the number of accumulated rays.
func (a *Accumulator) Len() int { return len(a.rays) }

// Limit returns the ray ceiling.
func (a *Accumulator) Limit() int { return a.limit }

// Full reports whether further additions will be dropped.
func (a *Accumulator) Full() bool { return len(a.rays) >= a.limit }

// Dropped returns how many rays were refused since the last Reset.
func (a *Accumulator) Dropped() int { return a.dropped }

// Reset discards every ray.
func (a *Accumulator) Reset() {
	clear(a.rays)
	a.rays = a.rays[:0]
	a.dropped = 0
}

// Note is a line of text pinned to a world point.
type Note struct {
	At   f64.Vec3
	Text string
}

// Annotations is the user's free-text overlay.
type Annotations struct {
	notes []Note
}

// Add pins text at world point at.
func (a *Annotations) Add(at f64.Vec3, text string) {
	a.notes = append(a.notes, Note{At: at, Text: text})
}

// Notes returns the notes in insertion order.
func (a *Annotations) Notes() []Note { return a.notes }

// Len returns the number of notes.
func (a *Annotations) Len() int { return len(a.notes) }

// Clear removes every note.
func (a *Annotations) Clear() { a.notes = a.notes[:0] }
