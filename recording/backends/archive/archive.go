// Package archive provides a recording backend that logs streams to a
// zstd-compressed binary file, and the reader for that file.
//
// A log holds a header with the panel size followed by every stream
// played into the backend, in order. Reading it back yields streams equal
// command for command to the ones recorded, so a frame can be rendered
// again later or by another tool.
//
// # Example
//
//	import _ "github.com/gogpu/optiview/recording/backends/archive"
//
//	backend, _ := recording.NewBackend("archive", 800, 600)
//	frame.Playback(backend)
//	backend.(recording.FileBackend).SaveToFile("view.optv")
//
//	a, _ := archive.ReadFile("view.optv")
//	frame := a.Frame()
package archive

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/optiview/recording"
)

func init() {
	recording.Register("archive", func(w, h int) recording.Backend {
		return NewBackend(w, h)
	})
}

var (
	// ErrNotStarted is returned by End without a matching Begin.
	ErrNotStarted = errors.New("archive: End without Begin")

	// ErrBusy is returned by Begin while a stream is still open.
	ErrBusy = errors.New("archive: stream already open")

	// ErrFormat is returned (wrapped) for input that is not a valid log.
	ErrFormat = errors.New("archive: malformed log")
)

const (
	magic   = "OPTV"
	version = 1

	tagStream  = 'S'
	tagCommand = 'C'
	tagEnd     = 'E'
)

type header struct {
	Magic   [4]byte
	Version uint8
	Width   uint32
	Height  uint32
}

type record struct {
	Op      uint8
	A, B, C float64
	Glyph   int32
	Font    uint8
}

// Backend appends played streams to an in-memory log, compressed when
// written out.
// It implements recording.Backend, recording.WriterBackend, and
// recording.FileBackend interfaces.
type Backend struct {
	width, height int
	raw           bytes.Buffer
	open          bool
	streams       int
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates an archive backend for a width x height panel.
func NewBackend(width, height int) *Backend {
	b := &Backend{width: width, height: height}
	h := header{Version: version, Width: uint32(max(width, 0)), Height: uint32(max(height, 0))}
	copy(h.Magic[:], magic)
	_ = binary.Write(&b.raw, binary.LittleEndian, &h)
	return b
}

// Begin starts logging a stream.
func (b *Backend) Begin(p recording.Purpose) error {
	if b.open {
		return ErrBusy
	}
	b.raw.WriteByte(tagStream)
	b.raw.WriteByte(byte(p))
	b.open = true
	return nil
}

// Command logs one command. Commands outside Begin/End are ignored.
func (b *Backend) Command(c recording.Command) {
	if !b.open {
		return
	}
	b.raw.WriteByte(tagCommand)
	_ = binary.Write(&b.raw, binary.LittleEndian, &record{
		Op: uint8(c.Op), A: c.A, B: c.B, C: c.C, Glyph: int32(c.Glyph), Font: uint8(c.Font),
	})
}

// End closes the stream started by Begin.
func (b *Backend) End() error {
	if !b.open {
		return ErrNotStarted
	}
	b.raw.WriteByte(tagEnd)
	b.open = false
	b.streams++
	return nil
}

// Streams returns the number of complete streams logged.
func (b *Backend) Streams() int {
	return b.streams
}

// Reset discards the logged streams, keeping the header.
func (b *Backend) Reset() {
	b.raw.Truncate(binary.Size(header{}))
	b.open = false
	b.streams = 0
}

// WriteTo writes the compressed log to the given writer.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw, err := zstd.NewWriter(cw)
	if err != nil {
		return 0, err
	}
	if _, err := zw.Write(b.raw.Bytes()); err != nil {
		_ = zw.Close()
		return cw.n, err
	}
	err = zw.Close()
	return cw.n, err
}

// SaveToFile saves the compressed log to a file.
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

// Archive is a decoded log.
type Archive struct {
	Width, Height int
	Streams       []*recording.Stream
}

// Frame arranges the streams by purpose. When a purpose occurs more than
// once the last stream wins.
func (a *Archive) Frame() *recording.Frame {
	f := recording.NewFrame()
	for _, s := range a.Streams {
		var dst *recording.Stream
		switch s.Purpose() {
		case recording.PurposeBase:
			dst = f.Base
		case recording.PurposeFinish:
			dst = f.Finish
		case recording.PurposeRandom:
			dst = f.Random
		case recording.PurposeAnnotation:
			dst = f.Annotation
		default:
			continue
		}
		dst.Clear()
		for _, c := range s.All() {
			dst.AppendCommand(c)
		}
	}
	return f
}

// Marker returns the device mapping recorded in the first stream that
// carries one.
func (a *Archive) Marker() (recording.Marker, bool) {
	for _, s := range a.Streams {
		if m, ok := s.Marker(); ok {
			return m, true
		}
	}
	return recording.Marker{}, false
}

// Read decodes a log written by Backend.WriteTo.
func Read(r io.Reader) (*Archive, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	var h header
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrFormat, err)
	}
	if string(h.Magic[:]) != magic || h.Version != version {
		return nil, fmt.Errorf("%w: bad magic %q version %d", ErrFormat, h.Magic[:], h.Version)
	}

	a := &Archive{Width: int(h.Width), Height: int(h.Height)}
	var cur *recording.Stream
	for {
		tag, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch tag {
		case tagStream:
			p, err := br.ReadByte()
			if err != nil || cur != nil {
				return nil, fmt.Errorf("%w: stream %d start", ErrFormat, len(a.Streams))
			}
			cur = recording.NewStream(recording.Purpose(p))
		case tagCommand:
			var rec record
			if cur == nil {
				return nil, fmt.Errorf("%w: command outside a stream", ErrFormat)
			}
			if err := binary.Read(br, binary.LittleEndian, &rec); err != nil {
				return nil, fmt.Errorf("%w: command: %w", ErrFormat, err)
			}
			cur.AppendCommand(recording.Command{
				Op: recording.Opcode(rec.Op), A: rec.A, B: rec.B, C: rec.C,
				Glyph: rune(rec.Glyph), Font: recording.FontTag(rec.Font),
			})
		case tagEnd:
			if cur == nil {
				return nil, fmt.Errorf("%w: unmatched end", ErrFormat)
			}
			a.Streams = append(a.Streams, cur)
			cur = nil
		default:
			return nil, fmt.Errorf("%w: tag %#x", ErrFormat, tag)
		}
	}
	if cur != nil {
		return nil, fmt.Errorf("%w: truncated stream", ErrFormat)
	}
	return a, nil
}

// ReadFile decodes the log stored at path.
func ReadFile(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
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
