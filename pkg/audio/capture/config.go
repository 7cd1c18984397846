// ABOUTME: Capture stream configuration
// ABOUTME: Fixed recording constants and the derived sample capacity
package capture

import (
	"fmt"
	"time"

	"github.com/harperreed/monorec/pkg/audio"
)

// Recording constants. These are not configurable at runtime.
const (
	DefaultSampleRate      = 44100
	DefaultChannels        = 1
	DefaultFramesPerBuffer = 512
	DefaultDuration        = 5 * time.Second

	// DefaultGrace bounds the race between the stop signal and the last
	// in-flight callback invocation.
	DefaultGrace = 200 * time.Millisecond
)

// StreamConfig holds the immutable stream parameters for one recording
type StreamConfig struct {
	SampleRate      int
	Channels        int
	FramesPerBuffer int
	Duration        time.Duration
	Grace           time.Duration

	// MaxSamples is Duration x SampleRate x Channels
	MaxSamples int
}

// DefaultStreamConfig returns the fixed 5 second mono 44.1kHz configuration
func DefaultStreamConfig() StreamConfig {
	cfg, err := NewStreamConfig(DefaultSampleRate, DefaultChannels, DefaultFramesPerBuffer, DefaultDuration, DefaultGrace)
	if err != nil {
		panic(err)
	}
	return cfg
}

// NewStreamConfig validates the parameters and computes MaxSamples
func NewStreamConfig(sampleRate, channels, framesPerBuffer int, duration, grace time.Duration) (StreamConfig, error) {
	if sampleRate <= 0 {
		return StreamConfig{}, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if channels <= 0 {
		return StreamConfig{}, fmt.Errorf("invalid channel count: %d", channels)
	}
	if framesPerBuffer <= 0 {
		return StreamConfig{}, fmt.Errorf("invalid frames per buffer: %d", framesPerBuffer)
	}
	if duration <= 0 {
		return StreamConfig{}, fmt.Errorf("invalid duration: %v", duration)
	}
	if grace < 0 {
		return StreamConfig{}, fmt.Errorf("invalid grace period: %v", grace)
	}

	frames := int(duration * time.Duration(sampleRate) / time.Second)

	return StreamConfig{
		SampleRate:      sampleRate,
		Channels:        channels,
		FramesPerBuffer: framesPerBuffer,
		Duration:        duration,
		Grace:           grace,
		MaxSamples:      frames * channels,
	}, nil
}

// Format returns the sample format delivered to the callback
func (c StreamConfig) Format() audio.Format {
	return audio.Float32Format(c.SampleRate, c.Channels)
}

// MaxFrames returns the frame capacity of the recording
func (c StreamConfig) MaxFrames() int {
	return c.MaxSamples / c.Channels
}
