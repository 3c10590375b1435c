package archive

import (
	"bytes"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/optiview/recording"
)

func sampleFrame() *recording.Frame {
	f := recording.NewFrame()
	base := recording.NewRecorder(f.Base)
	base.SetBackground(color.White)
	base.SetMarker(recording.Marker{Origin: [3]float64{400, 300, 0}, Scale: [3]float64{12.5, -12.5, 12.5}})
	base.BeginRegion(recording.RegionSurfaces)
	base.SetStrokeColor(color.Black)
	base.SetLineStyle(1, recording.DashDashed)
	base.Polyline([]recording.Vertex{{X: 1, Y: 2, Z: -3}, {X: 4, Y: 5, Z: 6}, {X: 7, Y: 8, Z: 9}}, false)

	ann := recording.NewRecorder(f.Annotation)
	ann.Text(recording.Vertex{X: 10, Y: 20}, "λ/4", recording.FontSmall|recording.FontBold)
	return f
}

func TestRegistered(t *testing.T) {
	b, err := recording.NewBackend("archive", 32, 16)
	require.NoError(t, err)
	assert.IsType(t, &Backend{}, b)
}

func TestRoundTrip(t *testing.T) {
	f := sampleFrame()
	b := NewBackend(800, 600)
	require.NoError(t, f.Playback(b))
	assert.Equal(t, 4, b.Streams())

	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	a, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, a.Width)
	assert.Equal(t, 600, a.Height)
	require.Len(t, a.Streams, 4)

	got := a.Frame()
	for i, s := range f.Streams() {
		assert.Equal(t, s.Purpose(), got.Streams()[i].Purpose())
		assert.Equal(t, s.Commands(), got.Streams()[i].Commands(), "%v stream", s.Purpose())
	}

	m, ok := a.Marker()
	require.True(t, ok)
	want, _ := f.Base.Marker()
	assert.Equal(t, want, m)
}

func TestSaveAndReadFile(t *testing.T) {
	b := NewBackend(10, 10)
	require.NoError(t, sampleFrame().Base.Playback(b))

	path := filepath.Join(t.TempDir(), "view.optv")
	require.NoError(t, b.SaveToFile(path))

	a, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, a.Streams, 1)
	assert.Equal(t, recording.PurposeBase, a.Streams[0].Purpose())
}

func TestReset(t *testing.T) {
	b := NewBackend(10, 10)
	require.NoError(t, sampleFrame().Playback(b))
	b.Reset()
	assert.Zero(t, b.Streams())

	var buf bytes.Buffer
	_, err := b.WriteTo(&buf)
	require.NoError(t, err)
	a, err := Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, a.Streams)
	assert.Equal(t, 10, a.Width)
}

func TestLifecycleErrors(t *testing.T) {
	b := NewBackend(10, 10)
	assert.ErrorIs(t, b.End(), ErrNotStarted)
	require.NoError(t, b.Begin(recording.PurposeBase))
	assert.ErrorIs(t, b.Begin(recording.PurposeBase), ErrBusy)
}

func TestReadMalformed(t *testing.T) {
	compress := func(raw []byte) *bytes.Buffer {
		var buf bytes.Buffer
		zw, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = zw.Write(raw)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		return &buf
	}

	truncated := NewBackend(1, 1)
	require.NoError(t, truncated.Begin(recording.PurposeBase))
	truncated.Command(recording.Command{Op: recording.OpMoveTo})
	var open bytes.Buffer
	_, err := truncated.WriteTo(&open)
	require.NoError(t, err)

	valid := NewBackend(1, 1)
	hdr := valid.raw.Bytes()

	tests := []struct {
		name string
		in   *bytes.Buffer
	}{
		{"bad magic", compress([]byte("NOPE\x01\x00\x00\x00\x00\x00\x00\x00\x00"))},
		{"short header", compress([]byte("OPTV"))},
		{"unknown tag", compress(append(bytes.Clone(hdr), 'X'))},
		{"unmatched end", compress(append(bytes.Clone(hdr), tagEnd))},
		{"command outside stream", compress(append(bytes.Clone(hdr), tagCommand))},
		{"open stream", &open},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(tt.in)
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}
