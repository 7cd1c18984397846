//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package input

import (
	"errors"

	"github.com/harperreed/monorec/pkg/audio/capture"
)

var errPortAudioDisabled = errors.New("PortAudio support not enabled (build with -tags portaudio)")

// PortAudio capture backend (stub)
type PortAudio struct{}

// NewPortAudio creates a new PortAudio backend
func NewPortAudio() capture.Backend {
	return &PortAudio{}
}

// Name returns the backend name
func (p *PortAudio) Name() string {
	return BackendPortAudio
}

// DefaultInputDevice always fails in the stub
func (p *PortAudio) DefaultInputDevice() (capture.Device, error) {
	return capture.Device{}, errPortAudioDisabled
}

// OpenStream always fails in the stub
func (p *PortAudio) OpenStream(capture.Device, capture.StreamConfig, capture.Callback) (capture.Stream, error) {
	return nil, errPortAudioDisabled
}

// Terminate is a no-op in the stub
func (p *PortAudio) Terminate() error {
	return nil
}
