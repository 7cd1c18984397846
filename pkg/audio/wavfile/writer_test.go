// ABOUTME: Tests for the float WAV writer
// ABOUTME: Round-trips through go-audio's decoder and simulates sink failures
package wavfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

// memSink is an in-memory Sink. Bytes past limit are refused when limit > 0.
type memSink struct {
	data     []byte
	pos      int64
	limit    int64
	closeErr error
	closed   bool
}

func (m *memSink) Write(p []byte) (int, error) {
	n := len(p)
	if m.limit > 0 && m.pos+int64(n) > m.limit {
		n = int(max(m.limit-m.pos, 0))
	}
	end := m.pos + int64(n)
	if end > int64(len(m.data)) {
		m.data = append(m.data, make([]byte, end-int64(len(m.data)))...)
	}
	copy(m.data[m.pos:end], p[:n])
	m.pos = end
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (m *memSink) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		m.pos = offset
	case io.SeekCurrent:
		m.pos += offset
	case io.SeekEnd:
		m.pos = int64(len(m.data)) + offset
	}
	return m.pos, nil
}

func (m *memSink) Close() error {
	m.closed = true
	return m.closeErr
}

func sine(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 44100))
	}
	return out
}

func readFloats(t *testing.T, data []byte, offset, size int) []float32 {
	t.Helper()
	out := make([]float32, size/4)
	if err := binary.Read(bytes.NewReader(data[offset:offset+size]), binary.LittleEndian, out); err != nil {
		t.Fatalf("reading samples: %v", err)
	}
	return out
}

func TestWriteRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		channels int
		samples  []float32
	}{
		{"mono sine", 44100, 1, sine(4410)},
		{"stereo", 48000, 2, sine(960)},
		{"extremes", 44100, 1, []float32{0, 1, -1, float32(math.SmallestNonzeroFloat32), math.MaxFloat32, float32(math.Inf(1))}},
		{"empty", 44100, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.wav")
			desc := Descriptor{Path: path, SampleRate: tt.rate, Channels: tt.channels}

			res, err := NewWriter().Write(desc, tt.samples)
			if err != nil {
				t.Fatalf("Write() failed: %v", err)
			}
			if res.FramesWritten != len(tt.samples)/tt.channels {
				t.Errorf("expected %d frames written, got %d", len(tt.samples)/tt.channels, res.FramesWritten)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer f.Close()

			d := wav.NewDecoder(f)
			d.ReadInfo()
			if err := d.Err(); err != nil {
				t.Fatalf("ReadInfo() failed: %v", err)
			}
			if int(d.SampleRate) != tt.rate {
				t.Errorf("expected sample rate %d, got %d", tt.rate, d.SampleRate)
			}
			if int(d.NumChans) != tt.channels {
				t.Errorf("expected %d channels, got %d", tt.channels, d.NumChans)
			}
			if d.BitDepth != 32 {
				t.Errorf("expected 32-bit samples, got %d", d.BitDepth)
			}
			if d.WavAudioFormat != formatIEEEFloat {
				t.Errorf("expected IEEE float format tag, got %d", d.WavAudioFormat)
			}
			if err := d.FwdToPCM(); err != nil {
				t.Fatalf("FwdToPCM() failed: %v", err)
			}
			if d.PCMSize != len(tt.samples)*4 {
				t.Fatalf("expected %d data bytes, got %d", len(tt.samples)*4, d.PCMSize)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			got := readFloats(t, raw, headerSize, d.PCMSize)
			for i := range tt.samples {
				if math.Float32bits(got[i]) != math.Float32bits(tt.samples[i]) {
					t.Fatalf("sample %d: got %v, want %v", i, got[i], tt.samples[i])
				}
			}
		})
	}
}

func TestWriteFullRecording(t *testing.T) {
	samples := sine(220500)
	sink := &memSink{}
	w := NewSinkWriter(func(string) (Sink, error) { return sink, nil })

	res, err := w.Write(Descriptor{Path: "recording.wav", SampleRate: 44100, Channels: 1}, samples)
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if res.FramesRequested != 220500 || res.FramesWritten != 220500 {
		t.Errorf("expected 220500 frames, got %d/%d", res.FramesWritten, res.FramesRequested)
	}
	if !sink.closed {
		t.Error("expected sink to be closed")
	}
	if len(sink.data) != headerSize+220500*4 {
		t.Errorf("expected %d bytes, got %d", headerSize+220500*4, len(sink.data))
	}
	if size := binary.LittleEndian.Uint32(sink.data[40:44]); size != 220500*4 {
		t.Errorf("expected data chunk size %d, got %d", 220500*4, size)
	}
}

func TestWriteDropsPartialFrame(t *testing.T) {
	sink := &memSink{}
	w := NewSinkWriter(func(string) (Sink, error) { return sink, nil })

	res, err := w.Write(Descriptor{SampleRate: 8000, Channels: 2}, []float32{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if res.FramesRequested != 2 || res.FramesWritten != 2 {
		t.Errorf("expected 2 frames, got %d/%d", res.FramesWritten, res.FramesRequested)
	}
	if res.Path != DefaultPath {
		t.Errorf("expected default path, got %q", res.Path)
	}
}

func TestWriteOpenError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "recording.wav")
	samples := sine(100)

	_, err := NewWriter().Write(Descriptor{Path: path, SampleRate: 44100, Channels: 1}, samples)
	if !errors.Is(err, ErrFileOpen) {
		t.Fatalf("expected ErrFileOpen, got %v", err)
	}
	if errors.Is(err, ErrFileClose) || errors.Is(err, ErrShortWrite) {
		t.Errorf("open failure must not match other errors: %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("expected no output file")
	}
	if len(samples) != 100 {
		t.Error("samples must be left untouched")
	}
}

func TestWriteShortWrite(t *testing.T) {
	// room for the header and 10 mono frames
	sink := &memSink{limit: headerSize + 10*4}
	w := NewSinkWriter(func(string) (Sink, error) { return sink, nil })

	res, err := w.Write(Descriptor{Path: "x.wav", SampleRate: 44100, Channels: 1}, sine(100))
	if !errors.Is(err, ErrShortWrite) {
		t.Fatalf("expected ErrShortWrite, got %v", err)
	}

	var swe *ShortWriteError
	if !errors.As(err, &swe) {
		t.Fatalf("expected *ShortWriteError, got %T", err)
	}
	if swe.Requested != 100 || swe.Written != 10 {
		t.Errorf("expected 10 of 100 frames, got %d of %d", swe.Written, swe.Requested)
	}
	if res.FramesWritten != 10 {
		t.Errorf("expected result to report 10 frames, got %d", res.FramesWritten)
	}
	if !sink.closed {
		t.Error("expected close to be attempted after short write")
	}
	if errors.Is(err, ErrFileClose) {
		t.Errorf("close succeeded, error should not match ErrFileClose: %v", err)
	}
}

func TestWriteCloseError(t *testing.T) {
	sink := &memSink{closeErr: errors.New("disk full")}
	w := NewSinkWriter(func(string) (Sink, error) { return sink, nil })

	res, err := w.Write(Descriptor{Path: "x.wav", SampleRate: 44100, Channels: 1}, sine(64))
	if !errors.Is(err, ErrFileClose) {
		t.Fatalf("expected ErrFileClose, got %v", err)
	}
	if errors.Is(err, ErrShortWrite) {
		t.Errorf("write succeeded, error should not match ErrShortWrite: %v", err)
	}
	if res.FramesWritten != 64 {
		t.Errorf("expected 64 frames written, got %d", res.FramesWritten)
	}
}

func TestWriteShortWriteAndCloseError(t *testing.T) {
	sink := &memSink{limit: headerSize + 4, closeErr: errors.New("flush failed")}
	w := NewSinkWriter(func(string) (Sink, error) { return sink, nil })

	_, err := w.Write(Descriptor{Path: "x.wav", SampleRate: 44100, Channels: 1}, sine(32))
	if !errors.Is(err, ErrShortWrite) || !errors.Is(err, ErrFileClose) {
		t.Errorf("expected both ErrShortWrite and ErrFileClose, got %v", err)
	}
}

func TestWriteMetadata(t *testing.T) {
	sink := &memSink{}
	w := NewSinkWriter(func(string) (Sink, error) { return sink, nil })

	desc := Descriptor{
		SampleRate: 44100,
		Channels:   1,
		Software:   "monorec test",
		Comment:    "session 1234",
	}
	if _, err := w.Write(desc, sine(32)); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	if !bytes.Contains(sink.data, []byte("monorec test")) {
		t.Error("expected software name in INFO chunk")
	}
	if !bytes.Contains(sink.data, []byte("session 1234")) {
		t.Error("expected comment in INFO chunk")
	}
	got := readFloats(t, sink.data, headerSize, 32*4)
	want := sine(32)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: metadata corrupted data, got %v want %v", i, got[i], want[i])
		}
	}
}

func TestDescriptorFrames(t *testing.T) {
	tests := []struct {
		channels int
		samples  int
		expected int
	}{
		{1, 220500, 220500},
		{2, 100, 50},
		{2, 101, 50},
		{0, 100, 0},
	}

	for _, tt := range tests {
		d := Descriptor{Channels: tt.channels}
		if got := d.Frames(tt.samples); got != tt.expected {
			t.Errorf("Frames(%d) with %d channels: expected %d, got %d", tt.samples, tt.channels, tt.expected, got)
		}
	}
}
