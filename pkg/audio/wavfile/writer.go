// ABOUTME: Float WAV file writer
// ABOUTME: Serializes a captured sample buffer as 32-bit IEEE float WAV
package wavfile

import (
	"errors"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// formatIEEEFloat is the WAVE_FORMAT_IEEE_FLOAT format tag
	formatIEEEFloat = 3

	bitDepth = 32

	// headerSize is RIFF + fmt chunk + data chunk header as written by the encoder
	headerSize = 44
)

// DefaultPath is where recordings are written when no path is given
const DefaultPath = "recording.wav"

// Sink is the destination of an encoded file
type Sink interface {
	io.WriteSeeker
	io.Closer
}

// Descriptor holds the output file parameters
type Descriptor struct {
	Path       string
	SampleRate int
	Channels   int

	// Software and Comment are stored in the file's INFO chunk when set
	Software string
	Comment  string
}

// Frames returns the number of whole frames in samples
func (d Descriptor) Frames(samples int) int {
	if d.Channels <= 0 {
		return 0
	}
	return samples / d.Channels
}

// Result reports what a Write call produced
type Result struct {
	Path            string
	FramesRequested int
	FramesWritten   int
}

// Writer encodes sample buffers to WAV sinks
type Writer struct {
	create func(path string) (Sink, error)
}

// NewWriter returns a Writer creating files on disk
func NewWriter() *Writer {
	return &Writer{
		create: func(path string) (Sink, error) {
			return os.Create(path)
		},
	}
}

// NewSinkWriter returns a Writer using create to obtain sinks
func NewSinkWriter(create func(path string) (Sink, error)) *Writer {
	return &Writer{create: create}
}

// Write encodes samples in one pass and closes the sink.
//
// A sink that cannot be created yields ErrFileOpen. If fewer frames reach
// the sink than requested the error matches ErrShortWrite, and the file is
// still finalized and closed. A failure finalizing or closing matches
// ErrFileClose regardless of the write outcome.
func (w *Writer) Write(desc Descriptor, samples []float32) (Result, error) {
	if desc.Path == "" {
		desc.Path = DefaultPath
	}
	frames := desc.Frames(len(samples))
	result := Result{Path: desc.Path, FramesRequested: frames}

	sink, err := w.create(desc.Path)
	if err != nil {
		return result, &FileError{Op: OpOpen, Path: desc.Path, Err: err}
	}

	counter := &countingSink{Sink: sink}
	enc := wav.NewEncoder(counter, desc.SampleRate, bitDepth, desc.Channels, formatIEEEFloat)
	if desc.Software != "" || desc.Comment != "" {
		enc.Metadata = &wav.Metadata{
			Software: desc.Software,
			Comments: desc.Comment,
		}
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: desc.Channels,
			SampleRate:  desc.SampleRate,
		},
		Data:           floatBits(samples[:frames*desc.Channels]),
		SourceBitDepth: bitDepth,
	}

	var errs []error

	writeErr := enc.Write(buf)
	result.FramesWritten = counter.frames(desc.Channels)
	if writeErr != nil || result.FramesWritten != frames {
		errs = append(errs, &ShortWriteError{
			Path:      desc.Path,
			Requested: frames,
			Written:   result.FramesWritten,
			Err:       writeErr,
		})
	}

	if err := finalize(enc, sink); err != nil {
		errs = append(errs, &FileError{Op: OpClose, Path: desc.Path, Err: err})
	}

	return result, errors.Join(errs...)
}

// finalize rewrites the header sizes, flushes and closes the sink
func finalize(enc *wav.Encoder, sink Sink) error {
	encErr := enc.Close()

	var syncErr error
	if f, ok := sink.(interface{ Sync() error }); ok {
		syncErr = f.Sync()
	}

	return errors.Join(encErr, syncErr, sink.Close())
}

// floatBits carries float32 bit patterns through the encoder's integer
// path so 32-bit words land in the file unchanged
func floatBits(samples []float32) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		out[i] = int(int32(math.Float32bits(s)))
	}
	return out
}

// countingSink counts the bytes that actually reach the sink
type countingSink struct {
	Sink
	written int64
}

func (c *countingSink) Write(p []byte) (int, error) {
	n, err := c.Sink.Write(p)
	c.written += int64(n)
	return n, err
}

// frames returns the whole frames written past the header
func (c *countingSink) frames(channels int) int {
	data := c.written - headerSize
	if data <= 0 || channels <= 0 {
		return 0
	}
	return int(data / int64(channels*bitDepth/8))
}
