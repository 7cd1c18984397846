// ABOUTME: Capture session driving one fixed-duration recording
// ABOUTME: Owns the stream lifecycle and the real-time sample callback
package capture

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/harperreed/monorec/pkg/audio"
)

// State is the session lifecycle position
type State int

const (
	Uninitialized State = iota
	Opened
	Running
	Draining
	Stopped
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Opened:
		return "opened"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Stopped:
		return "stopped"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats is a snapshot of callback progress, safe to read while recording
type Stats struct {
	Samples         int
	Callbacks       int64
	SilentCallbacks int64
	Peak            float32
	Recording       bool
}

// Session records from the default input device into a bounded buffer.
//
// The controller goroutine calls the lifecycle methods; the audio subsystem
// calls Process on its own thread. Process is the only writer of the buffer
// and the buffer is read only after Close.
type Session struct {
	backend Backend
	config  StreamConfig
	device  Device
	stream  Stream
	state   State
	buffer  *SampleBuffer

	// recording is the stop signal. It only ever goes true -> false.
	recording atomic.Bool

	// complete is owned by the callback: set once it has returned Complete.
	complete bool

	samples         atomic.Int64
	callbacks       atomic.Int64
	silentCallbacks atomic.Int64
	peakBits        atomic.Uint32
}

// NewSession creates a session for cfg on backend
func NewSession(backend Backend, cfg StreamConfig) *Session {
	return &Session{
		backend: backend,
		config:  cfg,
		state:   Uninitialized,
	}
}

// Config returns the stream configuration
func (s *Session) Config() StreamConfig {
	return s.config
}

// Device returns the resolved input device
func (s *Session) Device() Device {
	return s.device
}

// State returns the lifecycle state
func (s *Session) State() State {
	return s.state
}

// Recording reports whether the stop signal is still clear
func (s *Session) Recording() bool {
	return s.recording.Load()
}

// Initialize resolves the default input device and sizes the buffer.
// Capacity is reserved here so the callback never allocates.
func (s *Session) Initialize() error {
	if s.state != Uninitialized || s.buffer != nil {
		return fmt.Errorf("%w: initialize in state %s", ErrInvalidState, s.state)
	}

	dev, err := s.backend.DefaultInputDevice()
	if err != nil {
		return err
	}

	s.device = dev
	s.buffer = NewSampleBuffer(s.config.MaxSamples)
	return nil
}

// Open opens the input stream and registers Process as its callback
func (s *Session) Open() error {
	if s.state != Uninitialized || s.buffer == nil {
		return fmt.Errorf("%w: open in state %s", ErrInvalidState, s.state)
	}

	s.recording.Store(true)
	stream, err := s.backend.OpenStream(s.device, s.config, s.Process)
	if err != nil {
		s.recording.Store(false)
		return &StreamError{Stage: StageOpen, Err: err}
	}

	s.stream = stream
	s.state = Opened
	return nil
}

// Start begins callback invocations
func (s *Session) Start() error {
	if s.state != Opened {
		return fmt.Errorf("%w: start in state %s", ErrInvalidState, s.state)
	}
	if err := s.stream.Start(); err != nil {
		return &StreamError{Stage: StageStart, Err: err}
	}
	s.state = Running
	return nil
}

// Drain signals the callback to stop and waits the grace period so the
// last in-flight invocation can finish
func (s *Session) Drain() {
	if s.state != Running {
		return
	}
	s.recording.Store(false)
	s.state = Draining
	if s.config.Grace > 0 {
		time.Sleep(s.config.Grace)
	}
}

// Stop halts the stream. After Stop returns no callback is in flight.
func (s *Session) Stop() error {
	if s.state != Draining {
		return fmt.Errorf("%w: stop in state %s", ErrInvalidState, s.state)
	}
	if err := s.stream.Stop(); err != nil {
		return &StreamError{Stage: StageStop, Err: err}
	}
	s.state = Stopped
	return nil
}

// Close releases the stream
func (s *Session) Close() error {
	if s.state != Stopped {
		return fmt.Errorf("%w: close in state %s", ErrInvalidState, s.state)
	}
	if err := s.stream.Close(); err != nil {
		return &StreamError{Stage: StageClose, Err: err}
	}
	s.state = Closed
	return nil
}

// Record runs Open, Start, waits out the duration, then Drain, Stop and Close.
// Cancelling ctx ends the wait early; the recording is still drained and
// closed normally. The returned buffer is complete and no longer shared.
func (s *Session) Record(ctx context.Context) (*SampleBuffer, error) {
	if err := s.Open(); err != nil {
		return nil, err
	}
	if err := s.Start(); err != nil {
		return nil, err
	}

	timer := time.NewTimer(s.config.Duration)
	select {
	case <-timer.C:
	case <-ctx.Done():
		timer.Stop()
	}

	s.Drain()
	if err := s.Stop(); err != nil {
		return nil, err
	}
	if err := s.Close(); err != nil {
		return nil, err
	}
	return s.buffer, nil
}

// Buffer returns the sample buffer once the stream is closed
func (s *Session) Buffer() (*SampleBuffer, error) {
	if s.state != Closed {
		return nil, fmt.Errorf("%w: buffer read in state %s", ErrInvalidState, s.state)
	}
	return s.buffer, nil
}

// Stats returns a snapshot of callback progress
func (s *Session) Stats() Stats {
	return Stats{
		Samples:         int(s.samples.Load()),
		Callbacks:       s.callbacks.Load(),
		SilentCallbacks: s.silentCallbacks.Load(),
		Peak:            math.Float32frombits(s.peakBits.Load()),
		Recording:       s.recording.Load(),
	}
}

// Process is the real-time callback. It appends one block to the buffer
// and must not allocate, log, lock or block.
//
// A nil block appends frames x channels zeros. A block that does not fit is
// truncated to the remaining capacity and the stop signal is raised. The
// stop signal is checked after the block is recorded, so the invocation that
// observes it still contributes its frames; later invocations append nothing.
func (s *Session) Process(in []float32, frames int) Result {
	if s.complete {
		return Complete
	}
	s.callbacks.Add(1)

	want := frames * s.config.Channels
	var n int
	if in == nil {
		n = s.buffer.AppendSilence(want)
		s.silentCallbacks.Add(1)
	} else {
		if len(in) < want {
			want = len(in)
		}
		n = s.buffer.Append(in[:want])
		if peak := audio.Peak(in[:n]); peak > math.Float32frombits(s.peakBits.Load()) {
			s.peakBits.Store(math.Float32bits(peak))
		}
	}
	s.samples.Add(int64(n))

	if n < want {
		s.recording.Store(false)
	}

	if s.recording.Load() {
		return Continue
	}
	s.complete = true
	return Complete
}
