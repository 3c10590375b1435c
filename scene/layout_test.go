package scene

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/optiview"
	"github.com/gogpu/optiview/interact"
	"github.com/gogpu/optiview/recording"
	"github.com/gogpu/optiview/render"
	"github.com/gogpu/optiview/view"
)

func testOptions() optiview.Options {
	o := optiview.DefaultOptions()
	o.Width, o.Height = 320, 240
	return o
}

func newLayout(t *testing.T, o optiview.Options) *Layout {
	t.Helper()
	l, err := NewLayout(Demo(), o)
	require.NoError(t, err)
	return l
}

// stepScheduler runs its timers when step is called.
type stepScheduler struct {
	fns map[int]func()
	id  int
}

func (s *stepScheduler) Every(_ time.Duration, fn func()) func() {
	if s.fns == nil {
		s.fns = make(map[int]func())
	}
	s.id++
	id := s.id
	s.fns[id] = fn
	return func() { delete(s.fns, id) }
}

func (s *stepScheduler) step() {
	for _, fn := range s.fns {
		fn()
	}
}

func TestNewLayoutInvalidOptions(t *testing.T) {
	o := testOptions()
	o.Width = 0
	_, err := NewLayout(Demo(), o)
	assert.ErrorIs(t, err, optiview.ErrInvalidOptions)

	o = testOptions()
	o.Palette.Lens = "blue"
	_, err = NewLayout(Demo(), o)
	assert.Error(t, err)
}

func TestNewLayoutFitsGeometry(t *testing.T) {
	l := newLayout(t, testOptions())
	st := l.State()

	lo, hi, ok := Bounds(l.Geometry())
	require.True(t, ok)
	for _, p := range []f64.Vec3{lo, hi} {
		x, y, _ := st.ToDevice(p)
		assert.True(t, x >= 0 && x <= 320 && y >= 0 && y <= 240, "corner %v at (%v, %v)", p, x, y)
	}

	assert.Positive(t, l.Frame().Base.Size())
	assert.Equal(t, l.Settings(), l.Saved())
	assert.True(t, l.TakeDirty())
	assert.False(t, l.TakeDirty())
}

func TestNewLayoutNilGeometry(t *testing.T) {
	l, err := NewLayout(nil, testOptions())
	require.NoError(t, err)
	assert.ErrorIs(t, l.Geometry().Err(), ErrNoGeometry)
	assert.Equal(t, 1, l.Frame().Base.Size())
}

func TestLayoutSampleRandom(t *testing.T) {
	o := testOptions()
	o.MaxRandomRays = 100
	l := newLayout(t, o)

	l.SampleRandom()
	assert.Equal(t, randomBatch, l.Random().Len())
	assert.Positive(t, l.Frame().Random.Size())

	l.SampleRandom()
	l.SampleRandom()
	assert.Equal(t, 100, l.Random().Len())
	assert.Zero(t, l.Random().Dropped(), "batches are trimmed to the remaining room")
}

func TestLayoutSkeletonDropsRandomUntilFinish(t *testing.T) {
	l := newLayout(t, testOptions())
	l.SampleRandom()
	require.Positive(t, l.Frame().Random.Size())

	l.BuildScene(interact.Skeleton)
	assert.Zero(t, l.Frame().Random.Size())
	assert.Equal(t, randomBatch, l.Random().Len(), "rays survive the skeleton build")

	l.FinishOverlay()
	assert.Positive(t, l.Frame().Random.Size())
}

func TestLayoutSetGeometryClearsOverlays(t *testing.T) {
	l := newLayout(t, testOptions())
	l.SampleRandom()
	l.Annotate(f64.Vec3{0, 0, 20}, "stop")
	require.Positive(t, l.Frame().Annotation.Size())

	l.SetGeometry(Demo())
	assert.Empty(t, l.Notes())
	assert.Zero(t, l.Random().Len())
	assert.Zero(t, l.Frame().Random.Size())
	assert.Zero(t, l.Frame().Annotation.Size())
}

func TestLayoutFailedGeometry(t *testing.T) {
	l := newLayout(t, testOptions())
	l.SampleRandom()
	l.Annotate(f64.Vec3{}, "origin")

	l.SetGeometry(&Static{Failure: errors.New("trace diverged")})
	f := l.Frame()
	assert.Equal(t, 1, f.Base.Size())
	for _, s := range []*recording.Stream{f.Finish, f.Random, f.Annotation} {
		assert.Zero(t, s.Size(), "%v stream", s.Purpose())
	}

	l.SampleRandom()
	assert.Zero(t, l.Random().Len())
}

func TestLayoutAnnotateAt(t *testing.T) {
	l := newLayout(t, testOptions())
	l.AnnotateAt(160, 120, "mid")
	require.Len(t, l.Notes(), 1)

	x, y, _ := l.State().ToDevice(l.Notes()[0].At)
	assert.InDelta(t, 160, x, 1e-6)
	assert.InDelta(t, 120, y, 1e-6)

	glyphs := count(l.Frame().Annotation.Commands(), recording.OpPlaceGlyph)
	assert.Equal(t, 3, glyphs)
}

func TestLayoutSetOptions(t *testing.T) {
	l := newLayout(t, testOptions())
	l.SampleRandom()
	before := l.Settings()

	o := testOptions()
	o.MaxRandomRays = 10
	o.Palette.Background = "#000000"
	require.NoError(t, l.SetOptions(o))

	assert.Equal(t, 10, l.Random().Len())
	assert.Equal(t, before, l.Settings())
	bg := l.Frame().Base.At(0)
	assert.Equal(t, color.NRGBA{A: 0xff}, bg.Color())

	o.Interaction.ZoomRatio = 2
	assert.ErrorIs(t, l.SetOptions(o), optiview.ErrInvalidOptions)
}

func TestLayoutResize(t *testing.T) {
	l := newLayout(t, testOptions())
	l.TakeDirty()
	l.Resize(320, 240)
	assert.False(t, l.TakeDirty())

	l.Resize(640, 480)
	assert.True(t, l.TakeDirty())
	w, h := l.State().Size()
	assert.Equal(t, [2]int{640, 480}, [2]int{w, h})
}

func TestLayoutRotateKeepsAngles(t *testing.T) {
	l := newLayout(t, testOptions())
	l.Rotate(10, -5)
	el, az := l.State().Angles()
	assert.InDelta(t, -5, el, 1e-9)
	assert.InDelta(t, 10, az, 1e-9)
}

func TestLayoutSettingsRoundTrip(t *testing.T) {
	l := newLayout(t, testOptions())
	l.State().SetUp(view.UpNegY)
	l.State().SetAngles(30, 120)
	l.State().ZoomAt(100, 80, view.ZoomIn)

	var buf bytes.Buffer
	require.NoError(t, l.Settings().Encode(&buf))
	assert.Contains(t, buf.String(), "-Y")

	s, err := DecodeSettings(&buf)
	require.NoError(t, err)

	m := newLayout(t, testOptions())
	require.NoError(t, m.Apply(s))
	got, want := m.Settings(), l.Settings()
	assert.Equal(t, want.Up, got.Up)
	assert.InDelta(t, want.Elevation, got.Elevation, 1e-12)
	assert.InDelta(t, want.Azimuth, got.Azimuth, 1e-12)
	assert.InDeltaSlice(t, want.Center[:], got.Center[:], 1e-9)
	assert.InDeltaSlice(t, want.Spans[:], got.Spans[:], 1e-9)
}

func TestLayoutApplyInvalid(t *testing.T) {
	l := newLayout(t, testOptions())
	s := l.Settings()

	bad := s
	bad.Up = "W"
	assert.ErrorIs(t, l.Apply(bad), ErrInvalidSettings)

	bad = s
	bad.Spans[1] = 0
	assert.ErrorIs(t, l.Apply(bad), ErrInvalidSettings)

	assert.Equal(t, s, l.Settings())
}

func TestDecodeSettingsUnknownField(t *testing.T) {
	_, err := DecodeSettings(strings.NewReader("zoom = 3\n"))
	assert.Error(t, err)
}

func TestLayoutDrivenByController(t *testing.T) {
	l := newLayout(t, testOptions())
	var persisted []Settings
	l.OnPersist = func(s Settings) { persisted = append(persisted, s) }

	sched := &stepScheduler{}
	c := interact.NewController(l, sched, l.Options().Interaction)
	defer c.Close()

	c.PointerDown(interact.ButtonSecondary, 100, 100)
	c.PointerDrag(130, 100)
	c.PointerUp(130, 100)

	_, az := l.State().Angles()
	assert.InDelta(t, 10, az, 1e-9)
	require.Len(t, persisted, 1)
	assert.InDelta(t, 10, persisted[0].Azimuth, 1e-9)

	c.Wheel(1, false, 160, 120)
	assert.Equal(t, interact.ZoomDebounce, c.Mode())
	for range l.Options().Interaction.DebounceTicks + 1 {
		sched.step()
	}
	assert.Equal(t, interact.Idle, c.Mode())
	assert.Len(t, persisted, 2)
}

func nonBackground(img []byte, bg color.NRGBA) (n int, colored bool) {
	for i := 0; i+3 < len(img); i += 4 {
		r, g, b := img[i], img[i+1], img[i+2]
		if r != bg.R || g != bg.G || b != bg.B {
			n++
			if r != g || g != b {
				colored = true
			}
		}
	}
	return n, colored
}

func TestLayoutRender(t *testing.T) {
	l := newLayout(t, testOptions())
	l.State().SetAngles(25, 40)
	l.BuildScene(interact.FullArt)
	l.FinishOverlay()

	r := render.NewRenderer()
	tgt := render.NewTarget(320, 240)
	require.NoError(t, l.Render(r, tgt))
	assert.False(t, l.TakeDirty())

	n, _ := nonBackground(tgt.Pixels(), color.NRGBA{0xff, 0xff, 0xff, 0xff})
	assert.Positive(t, n)
}

func TestLayoutRenderStereo(t *testing.T) {
	o := testOptions()
	o.Parallax = 0.05
	o.Palette.Lens = "#ffffff00"
	o.Palette.Ray = "#000000"
	l := newLayout(t, o)
	l.State().SetAngles(25, 40)
	l.BuildScene(interact.FullArt)

	tgt := render.NewTarget(320, 240)
	require.NoError(t, l.Render(render.NewRenderer(), tgt))

	_, colored := nonBackground(tgt.Pixels(), color.NRGBA{0xff, 0xff, 0xff, 0xff})
	assert.True(t, colored, "eye images differ somewhere")
}
