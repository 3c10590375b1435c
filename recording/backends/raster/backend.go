// Package raster provides the pixel backend of the recording system.
// It buffers each stream between Begin and End and draws it with
// render.Renderer into a render.Target.
//
// Streams are composited in the order they are played, so replaying a
// recording.Frame reproduces what the interactive view shows. With a
// non-zero parallax every stream is drawn as a red/cyan anaglyph.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/optiview/recording/backends/raster"
//
//	// Create via registry
//	backend, _ := recording.NewBackend("raster", 800, 600)
//
//	// Or create directly
//	backend := raster.NewBackend(800, 600)
//
//	// Playback a frame
//	frame.Playback(backend)
//
//	// Get output
//	backend.SaveToFile("view.png")
//	img := backend.Image()
package raster

import (
	"errors"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/transform"

	"github.com/gogpu/optiview/recording"
	"github.com/gogpu/optiview/render"
)

func init() {
	recording.Register("raster", func(w, h int) recording.Backend {
		return NewBackend(w, h)
	})
}

var (
	// ErrNotStarted is returned by End without a matching Begin.
	ErrNotStarted = errors.New("raster: End without Begin")

	// ErrBusy is returned by Begin while a stream is still open.
	ErrBusy = errors.New("raster: stream already open")

	// ErrNoImage is returned when output is requested before anything
	// was drawn.
	ErrNoImage = errors.New("raster: nothing rendered")
)

// Backend renders streams to a pixel image.
// It implements recording.Backend, recording.WriterBackend,
// recording.FileBackend, and recording.ImageBackend interfaces.
type Backend struct {
	r        *render.Renderer
	target   *render.Target
	stream   *recording.Stream
	parallax float64
	open     bool
	drawn    bool
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
	_ recording.ImageBackend  = (*Backend)(nil)
)

// NewBackend creates a raster backend with its own width x height target.
func NewBackend(width, height int) *Backend {
	return NewBackendForTarget(render.NewTarget(width, height))
}

// NewBackendForTarget creates a raster backend drawing into t.
func NewBackendForTarget(t *render.Target) *Backend {
	return &Backend{r: render.NewRenderer(), target: t}
}

// SetParallax selects anaglyph output for the streams that follow.
// Zero restores the mono path.
func (b *Backend) SetParallax(p float64) {
	b.parallax = p
}

// Target returns the target drawn into.
func (b *Backend) Target() *render.Target {
	return b.target
}

// Begin starts buffering a stream.
func (b *Backend) Begin(p recording.Purpose) error {
	if b.open {
		return ErrBusy
	}
	if b.stream == nil || b.stream.Purpose() != p {
		b.stream = recording.NewStream(p)
	} else {
		b.stream.Clear()
	}
	b.open = true
	return nil
}

// Command buffers one command. Commands outside Begin/End are ignored.
func (b *Backend) Command(c recording.Command) {
	if !b.open {
		return
	}
	b.stream.AppendCommand(c)
}

// End draws the buffered stream over the current pixels.
func (b *Backend) End() error {
	if !b.open {
		return ErrNotStarted
	}
	b.open = false
	if err := b.r.RenderStereo(b.target, b.parallax, b.stream); err != nil {
		return err
	}
	b.drawn = true
	return nil
}

// Image returns a copy of the rendered image. Returns nil before the
// first End. Later frames do not change a returned image.
func (b *Backend) Image() *image.RGBA {
	if !b.drawn {
		return nil
	}
	return b.target.Snapshot()
}

// pixels returns the live rendered image, or nil before the first End.
func (b *Backend) pixels() *image.RGBA {
	if !b.drawn {
		return nil
	}
	return b.target.Image()
}

// Thumbnail returns a copy of the rendered image scaled to width x
// height.
func (b *Backend) Thumbnail(width, height int) (*image.RGBA, error) {
	img := b.pixels()
	if img == nil {
		return nil, ErrNoImage
	}
	return transform.Resize(img, max(width, 1), max(height, 1), transform.Linear), nil
}

// WriteTo writes the rendered content as PNG to the given writer.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	img := b.pixels()
	if img == nil {
		return 0, ErrNoImage
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, img)
	return cw.n, err
}

// SaveToFile saves the rendered content as PNG to a file.
func (b *Backend) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := b.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Width returns the backend width.
func (b *Backend) Width() int {
	return b.target.Width()
}

// Height returns the backend height.
func (b *Backend) Height() int {
	return b.target.Height()
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
