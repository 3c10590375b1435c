package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/f64"
	"golang.org/x/text/language"

	"github.com/gogpu/optiview/view"
)

func TestReadoutAt(t *testing.T) {
	st := view.New(500, 500)
	st.SetCenter(f64.Vec3{1, 2, 3})

	r := ReadoutAt(st, 250, 250)
	assert.InDelta(t, 1, r.World[0], 1e-12)
	assert.InDelta(t, 2, r.World[1], 1e-12)
	assert.InDelta(t, 3, r.World[2], 1e-12)
	assert.Equal(t, 250.0, r.PerUnitH)
	assert.Equal(t, 250.0, r.PerUnitV)
	assert.Equal(t, "+X", r.Right)
	assert.Equal(t, "+Z", r.Up)

	// One unit right of center along screen X.
	r = ReadoutAt(st, 500, 250)
	assert.InDelta(t, 2, r.World[0], 1e-12)
}

func TestReadoutFormat(t *testing.T) {
	r := Readout{
		World:    f64.Vec3{1.5, -2, 3.25},
		PerUnitH: 250,
		PerUnitV: 125.5,
		Right:    "+X",
		Up:       "-Y",
	}

	en := r.String()
	assert.Contains(t, en, "X 1.5000")
	assert.Contains(t, en, "Z 3.2500")
	assert.Contains(t, en, "250.00 px/unit (+X)")
	assert.Contains(t, en, "125.50 px/unit (-Y)")

	de := r.Format(language.German)
	assert.Contains(t, de, "X 1,5000")
	assert.Contains(t, de, "125,50 px/unit (-Y)")
}

func TestControllerReadout(t *testing.T) {
	c, v, _ := newController(t)
	assert.Equal(t, ReadoutAt(v.st, 10, 20), c.Readout(10, 20))
}
