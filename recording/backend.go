package recording

import (
	"image"
	"io"
)

// Backend is the interface that all stream consumers implement.
// A backend receives the commands of one or more streams in order and
// translates them to its output: raster pixels, a compressed command log,
// or anything else that can be driven by device-space polylines and glyphs.
//
// Backends are created via the registry using NewBackend(name) and
// registered via Register() in their init() functions.
//
// # Implementation Contract
//
// Each backend must:
//  1. Register in init() using recording.Register()
//  2. Accept every Opcode, ignoring the ones it has no use for
//  3. Tolerate a malformed stream (a PathTo with no open polyline, a
//     polyline left open at End) without failing
//
// # Example Backend Registration
//
//	func init() {
//	    recording.Register("svg", func(w, h int) recording.Backend {
//	        return NewSVGBackend(w, h)
//	    })
//	}
type Backend interface {
	// Begin starts playback of a stream with the given purpose.
	// Returns an error if the backend cannot accept more output.
	Begin(p Purpose) error

	// Command consumes one command.
	Command(c Command)

	// End finishes the stream started by Begin.
	End() error
}

// WriterBackend extends Backend with the ability to write output to an io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the accumulated output to the given writer.
	// This should only be called after End().
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend extends Backend with the ability to save output directly to a file.
type FileBackend interface {
	Backend

	// SaveToFile saves the accumulated output to a file at the given path.
	// This should only be called after End().
	SaveToFile(path string) error
}

// ImageBackend extends Backend with access to the rasterized result.
// This is implemented by the raster backend.
type ImageBackend interface {
	Backend

	// Image returns a copy of the rendered image. Returns nil before the
	// first End.
	Image() *image.RGBA
}
