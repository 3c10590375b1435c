package optiview

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultOptionsValid(t *testing.T) {
	o := DefaultOptions()
	if err := o.Validate(); err != nil {
		t.Fatalf("DefaultOptions().Validate() = %v, want nil", err)
	}
	if got := o.Interaction.ZoomRatio; math.Abs(got-0.70710678) > 1e-6 {
		t.Errorf("ZoomRatio = %v, want ~0.7071", got)
	}
	if got := o.Interaction.DebounceInterval(); got != 50*time.Millisecond {
		t.Errorf("DebounceInterval() = %v, want 50ms", got)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero width", func(o *Options) { o.Width = 0 }},
		{"nan parallax", func(o *Options) { o.Parallax = math.NaN() }},
		{"no elements", func(o *Options) { o.MaxElements = 0 }},
		{"negative rays", func(o *Options) { o.MaxRandomRays = -1 }},
		{"zoom ratio one", func(o *Options) { o.Interaction.ZoomRatio = 1 }},
		{"zero damping", func(o *Options) { o.Interaction.RotateDamping = 0 }},
		{"zero debounce", func(o *Options) { o.Interaction.DebounceMillis = 0 }},
		{"bad color", func(o *Options) { o.Palette.Ray = "#12" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			err := o.Validate()
			if !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("Validate() = %v, want ErrInvalidOptions", err)
			}
		})
	}
}

func TestDecodeOptions(t *testing.T) {
	doc := `
width = 500
height = 400
parallax = 0.05

[interaction]
rotate_damping = 4
debounce_ticks = 5

[palette]
ray = "#00ff00"
`
	o, err := DecodeOptions(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeOptions() error = %v", err)
	}
	if o.Width != 500 || o.Height != 400 {
		t.Errorf("size = %dx%d, want 500x400", o.Width, o.Height)
	}
	if o.Parallax != 0.05 {
		t.Errorf("Parallax = %v, want 0.05", o.Parallax)
	}
	if o.Interaction.RotateDamping != 4 || o.Interaction.DebounceTicks != 5 {
		t.Errorf("Interaction = %+v", o.Interaction)
	}
	// Untouched keys keep their defaults.
	if o.MaxElements != DefaultOptions().MaxElements {
		t.Errorf("MaxElements = %d, want default", o.MaxElements)
	}
	c, err := o.Palette.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Ray != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("Ray = %v, want opaque green", c.Ray)
	}
}

func TestDecodeOptionsUnknownKey(t *testing.T) {
	if _, err := DecodeOptions(strings.NewReader("colour = 1\n")); err == nil {
		t.Error("DecodeOptions() accepted an unknown key")
	}
}

func TestOptionsRoundTripFile(t *testing.T) {
	o := DefaultOptions()
	o.Parallax = 0.125
	var buf bytes.Buffer
	if err := o.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "view.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions() error = %v", err)
	}
	if got != o {
		t.Errorf("LoadOptions() = %+v, want %+v", got, o)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#102030", color.NRGBA{0x10, 0x20, 0x30, 0xff}},
		{"#10203040", color.NRGBA{0x10, 0x20, 0x30, 0x40}},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if err != nil {
			t.Errorf("ParseHexColor(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseHexColor("#zzzzzz"); err == nil {
		t.Error("ParseHexColor(#zzzzzz) should fail")
	}
}
