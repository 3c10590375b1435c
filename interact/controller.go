package interact

import (
	"github.com/gogpu/optiview"
	"github.com/gogpu/optiview/view"
)

// View is the capability set a Controller drives. Each concrete view
// type (a layout, a plot) implements it.
type View interface {
	// State returns the view transform the controller edits in place.
	State() *view.State

	// BuildScene rebuilds the streams for the current state.
	BuildScene(q Quality)

	// Rotate turns the view by the given degrees, keeping the visible
	// part of the scene centered.
	Rotate(dAz, dEl float64)

	// SampleRandom traces one more batch of random rays into the
	// accumulated overlay.
	SampleRandom()

	// FinishOverlay rebuilds the overlays drawn on top of the base
	// stream.
	FinishOverlay()

	// CursorReadout describes the world position under device pixel
	// (x, y).
	CursorReadout(x, y float64) Readout

	// StereoOffset returns the anaglyph parallax, zero for mono.
	StereoOffset() float64

	// PersistData records the settings that survive the session.
	PersistData()
}

// Controller turns pointer and wheel input into view edits and scene
// rebuilds. It is not safe for concurrent use; every method, and every
// Scheduler callback, must run on the UI thread.
type Controller struct {
	view  View
	sched Scheduler
	opts  optiview.InteractionOptions

	mode         Mode
	lastX, lastY int
	accX, accY   int

	quiet  int
	cancel func()
}

// NewController creates an idle Controller for v. Wheel debouncing runs
// on sched.
func NewController(v View, sched Scheduler, opts optiview.InteractionOptions) *Controller {
	if opts.RotateDamping <= 0 {
		opts.RotateDamping = optiview.DefaultOptions().Interaction.RotateDamping
	}
	if !(opts.ZoomRatio > 0 && opts.ZoomRatio < 1) {
		opts.ZoomRatio = view.ZoomIn
	}
	return &Controller{view: v, sched: sched, opts: opts}
}

// Mode returns the current gesture state.
func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) setMode(m Mode) {
	if c.mode != m {
		optiview.Logger().Debug("interact: mode", "from", c.mode, "to", m)
		c.mode = m
	}
}

// PointerDown starts a pan with the primary button or a rotation with
// the secondary one. A pending wheel debounce is abandoned; the gesture's
// own PointerUp performs the full rebuild.
func (c *Controller) PointerDown(b Button, x, y int) {
	var m Mode
	switch b {
	case ButtonPrimary:
		m = Panning
	case ButtonSecondary:
		m = Rotating
	default:
		return
	}
	c.stopDebounce()
	c.lastX, c.lastY = x, y
	c.accX, c.accY = 0, 0
	c.setMode(m)
}

// PointerDrag applies the motion since the previous pointer event and
// redraws the skeleton.
func (c *Controller) PointerDrag(x, y int) {
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y

	switch c.mode {
	case Panning:
		c.view.State().Pan(dx, dy)
	case Rotating:
		dAz, dEl := c.damp(dx, dy)
		if dAz != 0 || dEl != 0 {
			c.view.Rotate(float64(dAz), float64(dEl))
		}
	default:
		return
	}
	c.view.BuildScene(Skeleton)
}

// damp converts drag pixels to whole degrees. The pixels left over by
// the integer divide carry into the next event.
func (c *Controller) damp(dx, dy int) (dAz, dEl int) {
	k := c.opts.RotateDamping
	c.accX += dx
	c.accY += dy
	dAz, dEl = c.accX/k, c.accY/k
	c.accX -= dAz * k
	c.accY -= dEl * k
	return dAz, dEl
}

// PointerUp ends a pan or rotation with one full rebuild.
func (c *Controller) PointerUp(x, y int) {
	if c.mode != Panning && c.mode != Rotating {
		return
	}
	if x != c.lastX || y != c.lastY {
		c.PointerDrag(x, y)
	}
	c.settle()
}

// Wheel zooms by notches steps about device pixel (x, y); positive
// notches zoom in. With shift only the vertical span changes. The
// skeleton is redrawn at once and the full rebuild is deferred until the
// wheel has been quiet for more than DebounceTicks scheduler ticks.
func (c *Controller) Wheel(notches int, shift bool, x, y int) {
	if notches == 0 {
		return
	}
	ratio := c.opts.ZoomRatio
	if notches < 0 {
		ratio = 1 / ratio
		notches = -notches
	}
	st := c.view.State()
	fx, fy := float64(x), float64(y)
	for range notches {
		var ok bool
		if shift {
			ok = st.ZoomVerticalAt(fx, fy, ratio)
		} else {
			ok = st.ZoomAt(fx, fy, ratio)
		}
		if !ok {
			break
		}
	}
	c.view.BuildScene(Skeleton)

	if c.mode == Panning || c.mode == Rotating {
		return
	}
	c.stopDebounce()
	c.quiet = 0
	c.setMode(ZoomDebounce)
	c.cancel = c.sched.Every(c.opts.DebounceInterval(), c.tick)
}

func (c *Controller) tick() {
	if c.mode != ZoomDebounce {
		return
	}
	c.quiet++
	if c.quiet > c.opts.DebounceTicks {
		c.stopDebounce()
		c.settle()
	}
}

func (c *Controller) settle() {
	c.view.BuildScene(FullArt)
	c.view.FinishOverlay()
	c.setMode(Idle)
	c.view.PersistData()
}

func (c *Controller) stopDebounce() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Close abandons a pending debounce without rebuilding.
func (c *Controller) Close() {
	c.stopDebounce()
	if c.mode == ZoomDebounce {
		c.setMode(Idle)
	}
}

// Readout describes the world position under device pixel (x, y).
func (c *Controller) Readout(x, y int) Readout {
	return c.view.CursorReadout(float64(x), float64(y))
}
