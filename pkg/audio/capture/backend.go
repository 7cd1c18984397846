// ABOUTME: Audio subsystem interfaces used by the capture session
// ABOUTME: Implemented by the malgo and PortAudio backends in pkg/audio/input
package capture

import "time"

// Device describes the input device a stream is bound to
type Device struct {
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	LowInputLatency   time.Duration
}

// Result tells the audio subsystem whether to keep invoking the callback
type Result int

const (
	Continue Result = iota
	Complete
)

func (r Result) String() string {
	if r == Complete {
		return "complete"
	}
	return "continue"
}

// Callback receives one block of interleaved float32 samples.
// A nil block means input was unavailable for frames frames.
// It runs on the audio subsystem's real-time thread.
type Callback func(in []float32, frames int) Result

// Backend is an audio subsystem able to capture from an input device
type Backend interface {
	// Name identifies the backend in logs
	Name() string

	// DefaultInputDevice returns the system default input, or ErrNoInputDevice
	DefaultInputDevice() (Device, error)

	// OpenStream opens a float32 input stream on dev and registers cb
	OpenStream(dev Device, cfg StreamConfig, cb Callback) (Stream, error)

	// Terminate releases the subsystem
	Terminate() error
}

// Stream is an opened input stream
type Stream interface {
	Start() error
	Stop() error
	Close() error
}
