package recording

import (
	"iter"
	"slices"
)

// Purpose names what a stream is drawn for.
type Purpose uint8

const (
	PurposeBase       Purpose = iota // technical drawing: surfaces, axes, rulers, table rays
	PurposeFinish                    // front decorations re-emitted over the base
	PurposeRandom                    // accumulated random-sample rays
	PurposeAnnotation                // user free-text overlay
)

var purposeNames = [...]string{
	PurposeBase:       "base",
	PurposeFinish:     "finish",
	PurposeRandom:     "random",
	PurposeAnnotation: "annotation",
}

func (p Purpose) String() string {
	if int(p) < len(purposeNames) {
		return purposeNames[p]
	}
	return "unknown"
}

// markerWindow is how far from the head Marker looks for the affine pair.
const markerWindow = 16

// Stream is an ordered list of Commands describing one frame of artwork
// for one purpose. Producers only append; consumers only iterate. A stream
// is rebuilt wholesale with Clear rather than patched.
//
// Polyline discipline: OpMoveTo opens a polyline, each OpPathTo extends it,
// and exactly one OpStroke or OpFill (each carrying the final vertex) ends
// it before any other geometry begins.
//
// A Stream is not safe for concurrent use.
type Stream struct {
	purpose Purpose
	cmds    []Command
}

// NewStream creates an empty stream.
func NewStream(p Purpose) *Stream {
	return &Stream{purpose: p, cmds: make([]Command, 0, 256)}
}

// Purpose returns what the stream is drawn for.
func (s *Stream) Purpose() Purpose { return s.purpose }

// Append adds a command with up to three numeric operands. Extra operands
// are ignored.
func (s *Stream) Append(op Opcode, operands ...float64) {
	c := Command{Op: op}
	switch n := len(operands); {
	case n >= 3:
		c.C = operands[2]
		fallthrough
	case n == 2:
		c.B = operands[1]
		fallthrough
	case n == 1:
		c.A = operands[0]
	}
	s.cmds = append(s.cmds, c)
}

// AppendCommand adds a fully formed command.
func (s *Stream) AppendCommand(c Command) {
	s.cmds = append(s.cmds, c)
}

// Clear empties the stream, keeping its storage for the next frame.
func (s *Stream) Clear() {
	s.cmds = s.cmds[:0]
}

// Size returns the number of commands.
func (s *Stream) Size() int {
	if s == nil {
		return 0
	}
	return len(s.cmds)
}

// At returns the i'th command.
func (s *Stream) At(i int) Command {
	return s.cmds[i]
}

// Commands returns the recorded commands. The slice must not be modified.
func (s *Stream) Commands() []Command {
	if s == nil {
		return nil
	}
	return slices.Clip(s.cmds)
}

// All iterates over the commands in order.
func (s *Stream) All() iter.Seq2[int, Command] {
	return func(yield func(int, Command) bool) {
		if s == nil {
			return
		}
		for i, c := range s.cmds {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Marker returns the affine marker recorded near the head of the stream.
// ok is false unless both halves of the pair are present.
func (s *Stream) Marker() (m Marker, ok bool) {
	var haveOrigin, haveScale bool
	for i, c := range s.All() {
		if i >= markerWindow {
			break
		}
		switch c.Op {
		case OpSetAffineOrigin:
			m.Origin = [3]float64{c.A, c.B, c.C}
			haveOrigin = true
		case OpSetAffineScale:
			m.Scale = [3]float64{c.A, c.B, c.C}
			haveScale = true
		}
	}
	return m, haveOrigin && haveScale
}

// Playback replays the stream to a backend.
func (s *Stream) Playback(b Backend) error {
	if err := b.Begin(s.Purpose()); err != nil {
		return err
	}
	for _, c := range s.All() {
		b.Command(c)
	}
	return b.End()
}

// Frame groups the streams produced for one redraw.
type Frame struct {
	Base       *Stream
	Finish     *Stream
	Random     *Stream
	Annotation *Stream
}

// NewFrame allocates the four streams of a frame.
func NewFrame() *Frame {
	return &Frame{
		Base:       NewStream(PurposeBase),
		Finish:     NewStream(PurposeFinish),
		Random:     NewStream(PurposeRandom),
		Annotation: NewStream(PurposeAnnotation),
	}
}

// Streams returns the streams in compositing order: base, random,
// finish, annotation.
func (f *Frame) Streams() []*Stream {
	return []*Stream{f.Base, f.Random, f.Finish, f.Annotation}
}

// Playback replays every stream of the frame in compositing order.
func (f *Frame) Playback(b Backend) error {
	for _, s := range f.Streams() {
		if err := s.Playback(b); err != nil {
			return err
		}
	}
	return nil
}
