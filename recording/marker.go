package recording

import "math"

// Marker is the affine pair a stream records near its head so that a
// vector consumer can turn device coordinates back into world units
// without redoing the view transform.
//
// For each axis i:
//
//	device[i] = Origin[i] + Scale[i]*view[i]
//
// where view is the rotated, world-unit coordinate (horizontal, vertical,
// out of screen). Scale[1] is negative because device y grows downward.
type Marker struct {
	Origin [3]float64
	Scale  [3]float64
}

// ToDevice maps view-plane world units to device coordinates.
func (m Marker) ToDevice(h, v, o float64) (x, y, z float64) {
	return m.Origin[0] + m.Scale[0]*h,
		m.Origin[1] + m.Scale[1]*v,
		m.Origin[2] + m.Scale[2]*o
}

// ToWorld is the inverse of ToDevice. Axes with a zero scale map to zero.
func (m Marker) ToWorld(x, y, z float64) (h, v, o float64) {
	return unscale(x, m.Origin[0], m.Scale[0]),
		unscale(y, m.Origin[1], m.Scale[1]),
		unscale(z, m.Origin[2], m.Scale[2])
}

// Valid reports whether every scale is finite and non-zero.
func (m Marker) Valid() bool {
	for _, s := range m.Scale {
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return false
		}
	}
	return true
}

func unscale(d, origin, scale float64) float64 {
	if scale == 0 {
		return 0
	}
	return (d - origin) / scale
}
