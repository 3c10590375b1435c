package optiview

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrInvalidOptions, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrInvalidOptions, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Colors is a parsed Palette.
type Colors struct {
	Background color.NRGBA
	Surface    color.NRGBA
	Lens       color.NRGBA
	Mirror     color.NRGBA
	Iris       color.NRGBA
	Ray        color.NRGBA
	RandomRay  color.NRGBA
	Axis       color.NRGBA
	Annotation color.NRGBA
}

// Parse converts every palette entry. The first malformed entry is reported.
func (p Palette) Parse() (Colors, error) {
	var c Colors
	for _, e := range []struct {
		src string
		dst *color.NRGBA
	}{
		{p.Background, &c.Background},
		{p.Surface, &c.Surface},
		{p.Lens, &c.Lens},
		{p.Mirror, &c.Mirror},
		{p.Iris, &c.Iris},
		{p.Ray, &c.Ray},
		{p.RandomRay, &c.RandomRay},
		{p.Axis, &c.Axis},
		{p.Annotation, &c.Annotation},
	} {
		v, err := ParseHexColor(e.src)
		if err != nil {
			return Colors{}, err
		}
		*e.dst = v
	}
	return c, nil
}

// DefaultColors returns the parsed default palette.
func DefaultColors() Colors {
	c, err := DefaultOptions().Palette.Parse()
	if err != nil {
		panic("optiview: default palette: " + err.Error())
	}
	return c
}
