package optiview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidOptions is returned (wrapped) by Options.Validate.
var ErrInvalidOptions = errors.New("optiview: invalid options")

// Options configures a view: interaction tuning, stereo parallax, frame
// limits, and the palette. The zero value is not usable; start from
// DefaultOptions and override fields, or decode a TOML document with
// DecodeOptions which applies the same defaults first.
//
// Example TOML:
//
//	width = 800
//	height = 600
//	parallax = 0.02
//
//	[interaction]
//	rotate_damping = 3
//	debounce_ticks = 4
//
//	[palette]
//	background = "#ffffff"
type Options struct {
	// Width and Height are the panel size in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Parallax is the stereo offset per pixel of depth. Zero disables the
	// anaglyph path entirely.
	Parallax float64 `toml:"parallax"`

	// MaxElements is the per-frame ceiling of sortable decorations.
	MaxElements int `toml:"max_elements"`

	// MaxRandomRays caps the accumulated random ray overlay.
	MaxRandomRays int `toml:"max_random_rays"`

	Interaction InteractionOptions `toml:"interaction"`
	Palette     Palette            `toml:"palette"`
}

// InteractionOptions tunes the gesture state machine.
type InteractionOptions struct {
	// ZoomRatio scales the spans on each zoom-in notch; zoom-out uses the
	// reciprocal. Must be in (0,1).
	ZoomRatio float64 `toml:"zoom_ratio"`

	// RotateDamping divides drag pixels into degrees (integer divide).
	RotateDamping int `toml:"rotate_damping"`

	// DebounceMillis is the wheel-zoom debounce tick period.
	DebounceMillis int `toml:"debounce_ms"`

	// DebounceTicks is the number of quiet ticks after which the full
	// rebuild fires.
	DebounceTicks int `toml:"debounce_ticks"`
}

// DebounceInterval returns the debounce tick period.
func (o InteractionOptions) DebounceInterval() time.Duration {
	return time.Duration(o.DebounceMillis) * time.Millisecond
}

// Palette holds the colors of the technical drawing as "#rrggbb" or
// "#rrggbbaa" strings.
type Palette struct {
	Background string `toml:"background"`
	Surface    string `toml:"surface"`
	Lens       string `toml:"lens"`
	Mirror     string `toml:"mirror"`
	Iris       string `toml:"iris"`
	Ray        string `toml:"ray"`
	RandomRay  string `toml:"random_ray"`
	Axis       string `toml:"axis"`
	Annotation string `toml:"annotation"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Width:         800,
		Height:        600,
		MaxElements:   4096,
		MaxRandomRays: 10000,
		Interaction: InteractionOptions{
			ZoomRatio:      math.Sqrt2 / 2,
			RotateDamping:  3,
			DebounceMillis: 50,
			DebounceTicks:  3,
		},
		Palette: Palette{
			Background: "#ffffff",
			Surface:    "#000000",
			Lens:       "#6080ff60",
			Mirror:     "#c0c0c080",
			Iris:       "#40404080",
			Ray:        "#d00000",
			RandomRay:  "#00a000",
			Axis:       "#808080",
			Annotation: "#0000c0",
		},
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidOptions.
func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: panel size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case math.IsNaN(o.Parallax) || math.IsInf(o.Parallax, 0):
		return fmt.Errorf("%w: parallax %v", ErrInvalidOptions, o.Parallax)
	case o.MaxElements <= 0:
		return fmt.Errorf("%w: max_elements %d", ErrInvalidOptions, o.MaxElements)
	case o.MaxRandomRays < 0:
		return fmt.Errorf("%w: max_random_rays %d", ErrInvalidOptions, o.MaxRandomRays)
	case !(o.Interaction.ZoomRatio > 0 && o.Interaction.ZoomRatio < 1):
		return fmt.Errorf("%w: zoom_ratio %v", ErrInvalidOptions, o.Interaction.ZoomRatio)
	case o.Interaction.RotateDamping <= 0:
		return fmt.Errorf("%w: rotate_damping %d", ErrInvalidOptions, o.Interaction.RotateDamping)
	case o.Interaction.DebounceMillis <= 0:
		return fmt.Errorf("%w: debounce_ms %d", ErrInvalidOptions, o.Interaction.DebounceMillis)
	case o.Interaction.DebounceTicks < 0:
		return fmt.Errorf("%w: debounce_ticks %d", ErrInvalidOptions, o.Interaction.DebounceTicks)
	}
	_, err := o.Palette.Parse()
	return err
}

// DecodeOptions reads a TOML document on top of DefaultOptions.
// Unknown keys are rejected.
func DecodeOptions(r io.Reader) (Options, error) {
	o := DefaultOptions()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&o); err != nil {
		return Options{}, fmt.Errorf("optiview: decode options: %w", err)
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// LoadOptions reads options from a TOML file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("optiview: load options: %w", err)
	}
	return DecodeOptions(bytes.NewReader(data))
}

// Encode writes the options as TOML.
func (o Options) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(o)
}
