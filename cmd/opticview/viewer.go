package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/text/language"

	"github.com/gogpu/optiview"
	"github.com/gogpu/optiview/interact"
	"github.com/gogpu/optiview/render"
	"github.com/gogpu/optiview/scene"
	"github.com/gogpu/optiview/view"
)

const title = "opticview"

var errPixelFormat = errors.New("opticview: target pixels not uploadable")

// uploadable checks that t holds the tightly packed premultiplied RGBA8
// rows that ebiten.Image.WritePixels takes.
func uploadable(t *render.Target) error {
	if f := t.Format(); f != gputypes.TextureFormatRGBA8Unorm {
		return fmt.Errorf("%w: format %v", errPixelFormat, f)
	}
	if t.Stride() != 4*t.Width() {
		return fmt.Errorf("%w: stride %d for width %d", errPixelFormat, t.Stride(), t.Width())
	}
	return nil
}

// Keys 1 to 6 select the up axis.
var upKeys = [...]struct {
	key ebiten.Key
	up  view.Axis
}{
	{ebiten.Key1, view.UpPosZ},
	{ebiten.Key2, view.UpPosX},
	{ebiten.Key3, view.UpPosY},
	{ebiten.Key4, view.UpNegX},
	{ebiten.Key5, view.UpNegY},
	{ebiten.Key6, view.UpNegZ},
}

var buttons = [...]struct {
	eb ebiten.MouseButton
	ib interact.Button
}{
	{ebiten.MouseButtonLeft, interact.ButtonPrimary},
	{ebiten.MouseButtonRight, interact.ButtonSecondary},
	{ebiten.MouseButtonMiddle, interact.ButtonMiddle},
}

// viewer is the ebiten.Game that hosts a Layout. Gestures go to the
// Controller; debounce ticks and option reloads arrive through loop and
// run in Update.
type viewer struct {
	layout *scene.Layout
	ctl    *interact.Controller
	loop   *interact.Loop
	r      *render.Renderer
	cache  render.Cache
	img    *ebiten.Image
	lang   language.Tag

	lastX, lastY int
	wheel        float64
	caption      string
}

func newViewer(l *scene.Layout, lang language.Tag) *viewer {
	v := &viewer{
		layout: l,
		loop:   interact.NewLoop(),
		r:      render.NewRenderer(),
		lang:   lang,
	}
	v.ctl = interact.NewController(l, v.loop, l.Options().Interaction)
	return v
}

// applyOptions installs reloaded options, keeping the current panel
// size.
func (v *viewer) applyOptions(o optiview.Options) {
	o.Width, o.Height = v.layout.State().Size()
	if err := v.layout.SetOptions(o); err != nil {
		optiview.Logger().Warn("opticview: options rejected", "err", err)
		return
	}
	v.ctl.Close()
	v.ctl = interact.NewController(v.layout, v.loop, o.Interaction)
	v.cache.Invalidate()
}

func (v *viewer) close() {
	v.ctl.Close()
	v.loop.Close()
}

func (v *viewer) Update() error {
	v.loop.Drain()

	x, y := ebiten.CursorPosition()
	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			v.ctl.PointerDown(b.ib, x, y)
		}
	}
	if m := v.ctl.Mode(); (m == interact.Panning || m == interact.Rotating) && (x != v.lastX || y != v.lastY) {
		v.ctl.PointerDrag(x, y)
	}
	for _, b := range buttons[:2] {
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			v.ctl.PointerUp(x, y)
		}
	}
	v.lastX, v.lastY = x, y

	_, dy := ebiten.Wheel()
	v.wheel += dy
	if n := notches(&v.wheel); n != 0 {
		v.ctl.Wheel(n, ebiten.IsKeyPressed(ebiten.KeyShift), x, y)
	}

	if err := v.keys(x, y); err != nil {
		return err
	}

	caption := title + "  " + v.ctl.Readout(x, y).Format(v.lang)
	if caption != v.caption {
		v.caption = caption
		ebiten.SetWindowTitle(caption)
	}
	return nil
}

func (v *viewer) keys(x, y int) error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.layout.SampleRandom()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		v.layout.Fit()
		v.settle()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		p := v.ctl.Readout(x, y).World
		v.layout.AnnotateAt(float64(x), float64(y), fmt.Sprintf("(%.2f, %.2f, %.2f)", p[0], p[1], p[2]))
	}
	for _, k := range upKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			v.layout.State().SetUp(k.up)
			v.settle()
		}
	}
	return nil
}

func (v *viewer) settle() {
	v.layout.BuildScene(interact.FullArt)
	v.layout.FinishOverlay()
	v.layout.PersistData()
}

func (v *viewer) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	t, fresh := v.cache.Target(b.Dx(), b.Dy())
	if fresh || v.layout.TakeDirty() {
		if err := v.layout.Render(v.r, t); err != nil {
			optiview.Logger().Warn("opticview: render", "err", err)
			return
		}
		if err := uploadable(t); err != nil {
			optiview.Logger().Warn("opticview: upload", "err", err)
			return
		}
		if v.img == nil || v.img.Bounds() != t.Image().Bounds() {
			if v.img != nil {
				v.img.Deallocate()
			}
			v.img = ebiten.NewImage(t.Width(), t.Height())
		}
		v.img.WritePixels(t.Pixels())
	}
	if v.img != nil {
		screen.DrawImage(v.img, nil)
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.layout.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func runViewer(cfg *config) error {
	o, err := cfg.options()
	if err != nil {
		return err
	}
	l, err := cfg.newLayout(o)
	if err != nil {
		return err
	}
	v := newViewer(l, cfg.language())
	defer v.close()

	if cfg.optionsPath != "" {
		w, err := watchOptions(cfg.optionsPath, v.loop, func(o optiview.Options) {
			cfg.override(&o)
			v.applyOptions(o)
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(o.Width, o.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

var _ ebiten.Game = (*viewer)(nil)

// notches converts accumulated wheel offset to whole notches, leaving
// the fraction in acc.
func notches(acc *float64) int {
	n := math.Trunc(*acc)
	*acc -= n
	return int(n)
}
