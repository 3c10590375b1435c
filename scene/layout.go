package scene

import (
	"errors"
	"math/rand/v2"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/optiview"
	"github.com/gogpu/optiview/interact"
	"github.com/gogpu/optiview/recording"
	"github.com/gogpu/optiview/render"
	"github.com/gogpu/optiview/view"
)

// ErrNoGeometry is reported for a layout created without geometry.
var ErrNoGeometry = errors.New("scene: no geometry")

// randomBatch is the number of rays traced per SampleRandom call.
const randomBatch = 64

// Layout is the 3-D layout view of an optical assembly. It owns the
// view state and the four streams of the current frame, and implements
// interact.View.
type Layout struct {
	opts    optiview.Options
	st      *view.State
	geom    Geometry
	builder *Builder
	frame   *recording.Frame
	random  *Accumulator
	notes   Annotations
	rng     *rand.Rand
	dirty   bool
	saved   Settings

	// OnPersist, when set, receives the view settings each time a
	// gesture completes.
	OnPersist func(Settings)
}

var _ interact.View = (*Layout)(nil)

// NewLayout creates a layout of g fitted to the panel size in opts and
// builds the first full-art frame.
func NewLayout(g Geometry, opts optiview.Options) (*Layout, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	colors, err := opts.Palette.Parse()
	if err != nil {
		return nil, err
	}
	if g == nil {
		g = &Static{Failure: ErrNoGeometry}
	}
	l := &Layout{
		opts:    opts,
		st:      view.New(opts.Width, opts.Height),
		geom:    g,
		builder: NewBuilder(colors, opts.MaxElements),
		frame:   recording.NewFrame(),
		random:  NewAccumulator(opts.MaxRandomRays),
		rng:     rand.New(rand.NewPCG(1, 2)),
	}
	l.Fit()
	l.saved = l.Settings()
	l.BuildScene(interact.FullArt)
	l.FinishOverlay()
	return l, nil
}

// State implements interact.View.
func (l *Layout) State() *view.State { return l.st }

// Frame returns the streams of the current frame.
func (l *Layout) Frame() *recording.Frame { return l.frame }

// Geometry returns the displayed geometry.
func (l *Layout) Geometry() Geometry { return l.geom }

// Options returns the options in effect.
func (l *Layout) Options() optiview.Options { return l.opts }

// Random returns the accumulated random rays.
func (l *Layout) Random() *Accumulator { return l.random }

// Notes returns the annotations.
func (l *Layout) Notes() []Note { return l.notes.Notes() }

// Fit sizes the window to show the whole geometry.
func (l *Layout) Fit() {
	if lo, hi, ok := Bounds(l.geom); ok {
		l.st.Fit(lo, hi)
	}
}

// SetGeometry replaces the geometry. Annotations and accumulated random
// rays belong to the old geometry and are discarded.
func (l *Layout) SetGeometry(g Geometry) {
	if g == nil {
		g = &Static{Failure: ErrNoGeometry}
	}
	l.geom = g
	l.notes.Clear()
	l.random.Reset()
	l.BuildScene(interact.FullArt)
	l.FinishOverlay()
}

// SetOptions applies new options, keeping the view and as many random
// rays as the new limit allows. The panel size is left to Resize.
func (l *Layout) SetOptions(o optiview.Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	colors, err := o.Palette.Parse()
	if err != nil {
		return err
	}
	l.opts = o
	l.builder = NewBuilder(colors, o.MaxElements)
	if o.MaxRandomRays != l.random.Limit() {
		acc := NewAccumulator(o.MaxRandomRays)
		acc.Add(l.random.Rays()...)
		l.random = acc
	}
	l.BuildScene(interact.FullArt)
	l.FinishOverlay()
	return nil
}

// Resize changes the panel size, keeping the world window.
func (l *Layout) Resize(width, height int) {
	if w, h := l.st.Size(); w == width && h == height {
		return
	}
	l.st.SetSize(width, height)
	l.BuildScene(interact.FullArt)
	l.FinishOverlay()
}

// BuildScene implements interact.View. A skeleton build drops the
// random overlay until the next FinishOverlay.
func (l *Layout) BuildScene(q interact.Quality) {
	l.builder.Build(l.frame, l.st, l.geom, q)
	if q == interact.Skeleton || l.geom.Err() != nil {
		l.frame.Random.Clear()
	}
	l.buildNotes()
	l.dirty = true
}

// Rotate implements interact.View. The center is moved by the average
// depth of the visible part of the base stream so that the scene turns
// about what is on screen.
func (l *Layout) Rotate(dAz, dEl float64) {
	depth := l.st.AverageDepth(l.frame.Base, view.DepthSampleLimit)
	l.st.RotateRecentered(dAz, dEl, depth)
}

// SampleRandom implements interact.View.
func (l *Layout) SampleRandom() {
	tr, ok := l.geom.(RandomTracer)
	if !ok || l.geom.Err() != nil || l.random.Full() {
		return
	}
	n := min(randomBatch, l.random.Limit()-l.random.Len())
	l.random.Add(tr.TraceRandom(l.rng, n)...)
	l.builder.BuildRandom(l.frame.Random, l.st, l.random.Rays())
	l.dirty = true
}

// FinishOverlay implements interact.View.
func (l *Layout) FinishOverlay() {
	if l.geom.Err() != nil {
		l.frame.Random.Clear()
	} else {
		l.builder.BuildRandom(l.frame.Random, l.st, l.random.Rays())
	}
	l.buildNotes()
	l.dirty = true
}

func (l *Layout) buildNotes() {
	if l.geom.Err() != nil {
		l.frame.Annotation.Clear()
		return
	}
	l.builder.BuildAnnotations(l.frame.Annotation, l.st, l.notes.Notes())
}

// Annotate pins text at world point at.
func (l *Layout) Annotate(at f64.Vec3, text string) {
	l.notes.Add(at, text)
	l.buildNotes()
	l.dirty = true
}

// AnnotateAt pins text at the world point under device pixel (x, y) on
// the screen plane through the window center.
func (l *Layout) AnnotateAt(x, y float64, text string) {
	l.Annotate(l.st.FromDevice(x, y, 0), text)
}

// CursorReadout implements interact.View.
func (l *Layout) CursorReadout(x, y float64) interact.Readout {
	return interact.ReadoutAt(l.st, x, y)
}

// StereoOffset implements interact.View.
func (l *Layout) StereoOffset() float64 { return l.opts.Parallax }

// PersistData implements interact.View.
func (l *Layout) PersistData() {
	l.saved = l.Settings()
	if l.OnPersist != nil {
		l.OnPersist(l.saved)
	}
}

// Saved returns the settings recorded by the last PersistData.
func (l *Layout) Saved() Settings { return l.saved }

// Render draws the current frame into t, as an anaglyph when a parallax
// is configured.
func (l *Layout) Render(r *render.Renderer, t *render.Target) error {
	l.dirty = false
	if p := l.StereoOffset(); p != 0 {
		return r.RenderStereoFrame(t, p, l.frame)
	}
	return r.RenderFrame(t, l.frame)
}

// TakeDirty reports whether the frame changed since the last call or
// Render, and clears the flag.
func (l *Layout) TakeDirty() bool {
	d := l.dirty
	l.dirty = false
	return d
}
