package interact

import (
	"golang.org/x/image/math/f64"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/optiview/view"
)

// Readout is the cursor status line: the world point under the pointer
// and the current scale.
type Readout struct {
	World f64.Vec3

	// PerUnitH and PerUnitV are device pixels per world unit along the
	// screen axes.
	PerUnitH, PerUnitV float64

	// Right and Up name the world axes nearest the screen axes.
	Right, Up string
}

// ReadoutAt fills a Readout for device pixel (x, y) on the screen plane
// through the window center.
func ReadoutAt(st *view.State, x, y float64) Readout {
	kx, ky := st.PixelsPerUnit()
	right, up := st.AxisLabels()
	return Readout{
		World:    st.FromDevice(x, y, 0),
		PerUnitH: kx,
		PerUnitV: ky,
		Right:    right,
		Up:       up,
	}
}

// Format renders the readout for the given language.
func (r Readout) Format(tag language.Tag) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("X %.4f  Y %.4f  Z %.4f  |  %.2f px/unit (%s)  %.2f px/unit (%s)",
		r.World[0], r.World[1], r.World[2], r.PerUnitH, r.Right, r.PerUnitV, r.Up)
}

func (r Readout) String() string {
	return r.Format(language.English)
}
