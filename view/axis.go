package view

import "golang.org/x/image/math/f64"

// Axis selects which world axis maps to screen-up at zero elevation.
type Axis uint8

const (
	UpPosZ Axis = iota
	UpPosX
	UpPosY
	UpNegX
	UpNegY
	UpNegZ
)

var axisNames = [...]string{
	UpPosZ: "+Z",
	UpPosX: "+X",
	UpPosY: "+Y",
	UpNegX: "-X",
	UpNegY: "-Y",
	UpNegZ: "-Z",
}

func (a Axis) String() string {
	if int(a) < len(axisNames) {
		return axisNames[a]
	}
	return "unknown"
}

// ParseAxis returns the Axis named by s ("+Z", "-x", "y", ...).
func ParseAxis(s string) (Axis, bool) {
	if len(s) == 1 {
		s = "+" + s
	}
	if len(s) == 2 && s[1] >= 'a' && s[1] <= 'z' {
		s = s[:1] + string(s[1]-'a'+'A')
	}
	for i, n := range axisNames {
		if n == s {
			return Axis(i), true
		}
	}
	return UpPosZ, false
}

var (
	unitX = f64.Vec3{1, 0, 0}
	unitY = f64.Vec3{0, 1, 0}
	unitZ = f64.Vec3{0, 0, 1}
)

// basis returns the right-handed frame (a, b, u) of an up axis, with
// a × b = u. At zero azimuth a is screen-right and b points into the
// screen; u is screen-up at zero elevation.
func (a Axis) basis() (f64.Vec3, f64.Vec3, f64.Vec3) {
	switch a {
	case UpPosX:
		return unitY, unitZ, unitX
	case UpPosY:
		return unitZ, unitX, unitY
	case UpNegX:
		return unitZ, unitY, neg(unitX)
	case UpNegY:
		return unitX, unitZ, neg(unitY)
	case UpNegZ:
		return unitY, unitX, neg(unitZ)
	default:
		return unitX, unitY, unitZ
	}
}
