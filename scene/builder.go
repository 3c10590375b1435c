package scene

import (
	"image/color"
	"math"
	"strconv"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/optiview"
	"github.com/gogpu/optiview/depthsort"
	"github.com/gogpu/optiview/interact"
	"github.com/gogpu/optiview/recording"
	"github.com/gogpu/optiview/view"
)

// quarterSegments is the number of chords per quarter of a boundary
// ellipse.
const quarterSegments = 12

// Layout of the screen-space furniture, in pixels.
const (
	triadInset  = 56
	triadLength = 30
	rulerInset  = 16
	rulerTick   = 6
	rulerTicks  = 6
)

// Builder turns a Geometry into command streams for one view.
//
// A skeleton build draws surface outlines, table rays and the axis
// triad. A full-art build replaces the outlines with sorted decorations
// (shading panels, boundary arcs, connectors, array holes, spider legs)
// and adds rulers, then re-emits the decorations in front of their
// surfaces into the finish stream.
//
// Example:
//
//	b := scene.NewBuilder(optiview.DefaultColors(), 0)
//	f := recording.NewFrame()
//	b.Build(f, st, scene.Demo(), interact.FullArt)
//
// A Builder is reused across frames and is not safe for concurrent use.
type Builder struct {
	colors optiview.Colors
	comp   *depthsort.Compositor
	buf    []recording.Vertex
}

// NewBuilder returns a Builder drawing with colors and sorting at most
// maxElements decorations per frame.
func NewBuilder(colors optiview.Colors, maxElements int) *Builder {
	return &Builder{
		colors: colors,
		comp:   depthsort.New(maxElements),
		buf:    make([]recording.Vertex, 0, 4*quarterSegments+1),
	}
}

// Compositor returns the depth sorter of the last full-art build.
func (b *Builder) Compositor() *depthsort.Compositor { return b.comp }

// Build rebuilds f.Base and f.Finish for st. The finish stream is empty
// after a skeleton build. A geometry reporting an error produces a base
// stream holding only the background.
func (b *Builder) Build(f *recording.Frame, st *view.State, g Geometry, q interact.Quality) {
	f.Base.Clear()
	f.Finish.Clear()
	base := recording.NewRecorder(f.Base)
	base.SetBackground(b.colors.Background)
	if g == nil {
		return
	}
	if err := g.Err(); err != nil {
		optiview.Logger().Warn("scene: geometry unavailable, drawing blank frame", "err", err)
		return
	}
	base.SetMarker(st.Marker())

	surfs := g.Surfaces()
	if q == interact.FullArt {
		b.comp.Reset()
		for i := range surfs {
			b.decorate(st, surfs, i)
		}
		base.BeginRegion(recording.RegionDecorations)
		b.comp.Emit(base)
	} else {
		base.BeginRegion(recording.RegionSurfaces)
		for i := range surfs {
			b.outline(base, st, &surfs[i])
		}
	}

	base.BeginRegion(recording.RegionRays)
	base.SetStrokeColor(b.colors.Ray)
	base.SetLineStyle(1, recording.DashSolid)
	for _, r := range g.Rays() {
		b.ray(base, st, r)
	}

	base.BeginRegion(recording.RegionAxes)
	b.triad(base, st)

	if q == interact.FullArt {
		base.BeginRegion(recording.RegionRulers)
		b.rulers(base, st)

		fin := recording.NewRecorder(f.Finish)
		fin.SetMarker(st.Marker())
		fin.BeginRegion(recording.RegionDecorations)
		b.comp.EmitFront(fin)
	}
}

// BuildRandom rebuilds s with the accumulated random rays.
func (b *Builder) BuildRandom(s *recording.Stream, st *view.State, rays []Ray) {
	s.Clear()
	if len(rays) == 0 {
		return
	}
	rec := recording.NewRecorder(s)
	rec.SetMarker(st.Marker())
	rec.BeginRegion(recording.RegionRays)
	rec.SetStrokeColor(b.colors.RandomRay)
	rec.SetLineStyle(1, recording.DashSolid)
	for _, r := range rays {
		b.ray(rec, st, r)
	}
}

// BuildAnnotations rebuilds s with the notes.
func (b *Builder) BuildAnnotations(s *recording.Stream, st *view.State, notes []Note) {
	s.Clear()
	if len(notes) == 0 {
		return
	}
	rec := recording.NewRecorder(s)
	rec.SetMarker(st.Marker())
	rec.BeginRegion(recording.RegionAnnotation)
	rec.SetStrokeColor(b.colors.Annotation)
	for _, n := range notes {
		rec.Text(st.Vertex(n.At), n.Text, recording.FontMedium|recording.FontBold)
	}
}

func (b *Builder) shade(t SurfaceType) (color.NRGBA, bool) {
	switch t {
	case Lens, Array:
		return b.colors.Lens, true
	case Mirror:
		return b.colors.Mirror, true
	case Iris:
		return b.colors.Iris, true
	}
	return color.NRGBA{}, false
}

func dashFor(t SurfaceType) recording.Dash {
	if t == Plain {
		return recording.DashDashed
	}
	return recording.DashSolid
}

func hasInner(s *Surface) bool { return s.Inner[0] > 0 && s.Inner[1] > 0 }

// arc appends the device points of the ellipse r from angle a0 to a1.
func arc(dst []recording.Vertex, st *view.State, s *Surface, a0, a1 float64, r [2]float64, n int) []recording.Vertex {
	for k := 0; k <= n; k++ {
		a := a0 + (a1-a0)*float64(k)/float64(n)
		dst = append(dst, st.Vertex(s.Rim(a, r[0], r[1])))
	}
	return dst
}

func (b *Builder) outline(rec *recording.Recorder, st *view.State, s *Surface) {
	if s.Type == CoordBreak {
		return
	}
	rec.SetStrokeColor(b.colors.Surface)
	rec.SetLineStyle(1, dashFor(s.Type))
	b.buf = arc(b.buf[:0], st, s, 0, 2*math.Pi, s.Outer, 4*quarterSegments)
	rec.Polyline(b.buf, false)
	if hasInner(s) {
		b.buf = arc(b.buf[:0], st, s, 0, 2*math.Pi, s.Inner, 4*quarterSegments)
		rec.Polyline(b.buf, false)
	}
}

func (b *Builder) ray(rec *recording.Recorder, st *view.State, r Ray) {
	pts := b.buf[:0]
walk:
	for _, ic := range r.Intercepts {
		switch ic.State {
		case Hit:
			pts = append(pts, st.Vertex(ic.P))
		case Unreached:
			break walk
		}
	}
	rec.Polyline(pts, false)
	b.buf = pts
}

func (b *Builder) add(st *view.State, s *Surface, k depthsort.Kind, surf, sub int, rep f64.Vec3, draw func(*recording.Recorder)) {
	b.comp.Add(depthsort.Element{
		Kind:    k,
		Surface: surf,
		Sub:     sub,
		Depth:   depthsort.DepthKey(st, rep),
		Front:   depthsort.IsFront(st, rep, s.Vertex),
		Draw:    draw,
	})
}

// decorate adds the sortable elements of surfs[i].
func (b *Builder) decorate(st *view.State, surfs []Surface, i int) {
	s := &surfs[i]
	if s.Type == CoordBreak {
		return
	}
	fill, shaded := b.shade(s.Type)
	edge := b.colors.Surface
	dash := dashFor(s.Type)

	for q := range 4 {
		a0 := float64(q) * math.Pi / 2
		a1 := a0 + math.Pi/2
		am := a0 + math.Pi/4
		outer := s.Rim(am, s.Outer[0], s.Outer[1])

		if shaded {
			pts := arc(nil, st, s, a0, a1, s.Outer, quarterSegments)
			rep := s.Vertex
			if hasInner(s) {
				pts = arc(pts, st, s, a1, a0, s.Inner, quarterSegments)
				rep = s.Rim(am, s.Inner[0], s.Inner[1])
			} else {
				pts = append(pts, st.Vertex(s.Vertex))
			}
			rep = mid(outer, rep)
			b.add(st, s, depthsort.KindPanel, i, q, rep, func(rec *recording.Recorder) {
				rec.SetFillColor(fill)
				rec.Polyline(pts, true)
			})
		}

		rim := arc(nil, st, s, a0, a1, s.Outer, quarterSegments)
		var hole []recording.Vertex
		if hasInner(s) {
			hole = arc(nil, st, s, a0, a1, s.Inner, quarterSegments)
		}
		b.add(st, s, depthsort.KindArc, i, q, outer, func(rec *recording.Recorder) {
			rec.SetStrokeColor(edge)
			rec.SetLineStyle(1, dash)
			rec.Polyline(rim, false)
			rec.Polyline(hole, false)
		})
	}

	if s.Glass && i+1 < len(surfs) && surfs[i+1].Type != CoordBreak {
		next := &surfs[i+1]
		for k := range 4 {
			a := float64(k) * math.Pi / 2
			p := s.Rim(a, s.Outer[0], s.Outer[1])
			q := next.Rim(a, next.Outer[0], next.Outer[1])
			seg := []recording.Vertex{st.Vertex(p), st.Vertex(q)}
			b.add(st, s, depthsort.KindConnector, i, k, mid(p, q), func(rec *recording.Recorder) {
				rec.SetStrokeColor(edge)
				rec.SetLineStyle(1, recording.DashSolid)
				rec.Polyline(seg, false)
			})
		}
	}

	if s.Type == Array && s.ArrayX > 0 && s.ArrayY > 0 {
		b.holes(st, s, i)
	}
	if s.Legs > 0 {
		b.legs(st, s, i)
	}
}

func (b *Builder) holes(st *view.State, s *Surface, i int) {
	ox, oy := s.Outer[0], s.Outer[1]
	cw, ch := 2*ox/float64(s.ArrayX), 2*oy/float64(s.ArrayY)
	r := 0.35 * min(cw, ch)
	bg, edge := b.colors.Background, b.colors.Surface

	for iy := range s.ArrayY {
		for ix := range s.ArrayX {
			cx := -ox + (float64(ix)+0.5)*cw
			cy := -oy + (float64(iy)+0.5)*ch
			if (cx/ox)*(cx/ox)+(cy/oy)*(cy/oy) > 1 {
				continue
			}
			pts := make([]recording.Vertex, 0, 17)
			for k := range 17 {
				sa, ca := math.Sincos(float64(k) * math.Pi / 8)
				pts = append(pts, st.Vertex(s.At(cx+r*ca, cy+r*sa)))
			}
			b.add(st, s, depthsort.KindHole, i, iy*s.ArrayX+ix, s.At(cx, cy), func(rec *recording.Recorder) {
				rec.SetFillColor(bg)
				rec.Polyline(pts, true)
				rec.SetStrokeColor(edge)
				rec.SetLineStyle(1, recording.DashSolid)
				rec.Polyline(pts, false)
			})
		}
	}
}

func (b *Builder) legs(st *view.State, s *Surface, i int) {
	w := 0.03 * max(s.Outer[0], s.Outer[1]) / 2
	c := b.colors.Surface
	for k := range s.Legs {
		sa, ca := math.Sincos(2 * math.Pi * float64(k) / float64(s.Legs))
		nx, ny := -sa*w, ca*w
		x0, y0 := s.Inner[0]*ca, s.Inner[1]*sa
		x1, y1 := s.Outer[0]*ca, s.Outer[1]*sa
		pts := []recording.Vertex{
			st.Vertex(s.At(x0+nx, y0+ny)),
			st.Vertex(s.At(x1+nx, y1+ny)),
			st.Vertex(s.At(x1-nx, y1-ny)),
			st.Vertex(s.At(x0-nx, y0-ny)),
		}
		b.add(st, s, depthsort.KindLeg, i, k, s.At(x1, y1), func(rec *recording.Recorder) {
			rec.SetFillColor(c)
			rec.Polyline(pts, true)
		})
	}
}

func mid(p, q f64.Vec3) f64.Vec3 {
	return f64.Vec3{(p[0] + q[0]) / 2, (p[1] + q[1]) / 2, (p[2] + q[2]) / 2}
}

// triad draws the world axes as short labeled lines in the lower left
// corner.
func (b *Builder) triad(rec *recording.Recorder, st *view.State) {
	_, h := st.Size()
	o := recording.Vertex{X: triadInset, Y: float64(h) - triadInset}
	m := st.Rotation()
	rec.SetStrokeColor(b.colors.Axis)
	rec.SetLineStyle(1, recording.DashSolid)
	for i := range 3 {
		dh, dv, do := m[i], m[3+i], m[6+i]
		tip := recording.Vertex{X: o.X + dh*triadLength, Y: o.Y - dv*triadLength, Z: do * triadLength}
		rec.Line(o, tip)
		label := recording.Vertex{X: o.X + 1.3*dh*triadLength, Y: o.Y - 1.3*dv*triadLength, Z: tip.Z}
		rec.Glyph(label, rune('X'+i), recording.FontSmall)
	}
}

// niceStep rounds x to 1, 2 or 5 times a power of ten.
func niceStep(x float64) float64 {
	if !(x > 0) || math.IsInf(x, 0) {
		return 0
	}
	e := math.Pow(10, math.Floor(math.Log10(x)))
	switch f := x / e; {
	case f < 1.5:
		return e
	case f < 3.5:
		return 2 * e
	case f < 7.5:
		return 5 * e
	}
	return 10 * e
}

// rulers draws a horizontal ruler along the bottom edge and a vertical
// one along the left edge, graduated in world units from the window
// center, each ending in the name of its nearest world axis.
func (b *Builder) rulers(rec *recording.Recorder, st *view.State) {
	w, h := st.Size()
	kx, ky := st.PixelsPerUnit()
	right, up := st.AxisLabels()
	font := recording.FontSmall
	pitch := font.Pitch()

	rec.SetStrokeColor(b.colors.Axis)
	rec.SetLineStyle(1, recording.DashSolid)

	y := float64(h) - rulerInset
	x0, x1 := float64(rulerInset), float64(w)-rulerInset
	rec.Line(recording.Vertex{X: x0, Y: y}, recording.Vertex{X: x1, Y: y})
	if step := niceStep(float64(w) / kx / rulerTicks); step > 0 {
		cx, px := float64(w)/2, step*kx
		for k := -int((cx - x0) / px); k <= int((x1-cx)/px); k++ {
			x := cx + float64(k)*px
			rec.Line(recording.Vertex{X: x, Y: y}, recording.Vertex{X: x, Y: y - rulerTick})
			if k%2 == 0 {
				s := strconv.FormatFloat(float64(k)*step, 'g', 4, 64)
				rec.Text(recording.Vertex{X: x - float64(len(s)-1)*pitch/2, Y: y + 8}, s, font)
			}
		}
	}
	rec.Text(recording.Vertex{X: x1 - float64(len(right))*pitch, Y: y - 3*rulerTick}, right, font|recording.FontBold)

	x := float64(rulerInset)
	y0, y1 := float64(rulerInset), float64(h)-rulerInset
	rec.Line(recording.Vertex{X: x, Y: y0}, recording.Vertex{X: x, Y: y1})
	if step := niceStep(float64(h) / ky / rulerTicks); step > 0 {
		cy, py := float64(h)/2, step*ky
		for k := -int((y1 - cy) / py); k <= int((cy-y0)/py); k++ {
			yy := cy - float64(k)*py
			rec.Line(recording.Vertex{X: x, Y: yy}, recording.Vertex{X: x + rulerTick, Y: yy})
		}
	}
	rec.Text(recording.Vertex{X: x + 2*rulerTick, Y: y0 + pitch}, up, font|recording.FontBold)
}
