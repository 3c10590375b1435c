package scene

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/optiview/interact"
	"github.com/gogpu/optiview/view"
)

// ErrInvalidSettings is returned (wrapped) for settings that cannot be
// applied.
var ErrInvalidSettings = errors.New("scene: invalid settings")

// Settings is the part of a layout's view that is kept between
// sessions.
type Settings struct {
	Center    [3]float64 `toml:"center"`
	Spans     [3]float64 `toml:"spans"`
	Elevation float64    `toml:"elevation"`
	Azimuth   float64    `toml:"azimuth"`
	Up        string     `toml:"up"`
}

// Settings captures the current view.
func (l *Layout) Settings() Settings {
	el, az := l.st.Angles()
	return Settings{
		Center:    l.st.Center(),
		Spans:     l.st.Spans(),
		Elevation: el,
		Azimuth:   az,
		Up:        l.st.Up().String(),
	}
}

// Apply restores a view captured by Settings and rebuilds the frame.
func (l *Layout) Apply(s Settings) error {
	up, ok := view.ParseAxis(s.Up)
	if !ok {
		return fmt.Errorf("%w: up axis %q", ErrInvalidSettings, s.Up)
	}
	for _, v := range s.Spans {
		if !(v > 0) {
			return fmt.Errorf("%w: spans %v", ErrInvalidSettings, s.Spans)
		}
	}
	l.st.SetUp(up)
	l.st.SetAngles(s.Elevation, s.Azimuth)
	l.st.SetCenter(f64.Vec3(s.Center))
	l.st.SetSpans(s.Spans[0], s.Spans[1], s.Spans[2])
	l.BuildScene(interact.FullArt)
	l.FinishOverlay()
	return nil
}

// Encode writes s as TOML.
func (s Settings) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// DecodeSettings reads settings written by Encode.
func DecodeSettings(r io.Reader) (Settings, error) {
	var s Settings
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("scene: decode settings: %w", err)
	}
	return s, nil
}
