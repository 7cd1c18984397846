//go:build portaudio

// ABOUTME: PortAudio capture backend
// ABOUTME: Cross-platform float32 input using PortAudio
package input

import (
	"errors"
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"
	"github.com/harperreed/monorec/pkg/audio/capture"
)

// PortAudio capture backend
type PortAudio struct {
	initialized bool
	device      *portaudio.DeviceInfo
}

// NewPortAudio creates a new PortAudio backend
func NewPortAudio() capture.Backend {
	return &PortAudio{}
}

// Name returns the backend name
func (p *PortAudio) Name() string {
	return BackendPortAudio
}

func (p *PortAudio) init() error {
	if p.initialized {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", backendError(err))
	}
	p.initialized = true
	return nil
}

// DefaultInputDevice returns the default input device
func (p *PortAudio) DefaultInputDevice() (capture.Device, error) {
	if err := p.init(); err != nil {
		return capture.Device{}, err
	}

	info, err := portaudio.DefaultInputDevice()
	if err != nil || info == nil {
		return capture.Device{}, capture.ErrNoInputDevice
	}

	p.device = info
	return capture.Device{
		Name:              info.Name,
		MaxInputChannels:  info.MaxInputChannels,
		DefaultSampleRate: info.DefaultSampleRate,
		LowInputLatency:   info.DefaultLowInputLatency,
	}, nil
}

// OpenStream opens a float32 input-only stream with clipping disabled
func (p *PortAudio) OpenStream(dev capture.Device, cfg capture.StreamConfig, cb capture.Callback) (capture.Stream, error) {
	if p.device == nil {
		return nil, capture.ErrNoInputDevice
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   p.device,
			Channels: cfg.Channels,
			Latency:  p.device.DefaultLowInputLatency,
		},
		SampleRate:      float64(cfg.SampleRate),
		FramesPerBuffer: cfg.FramesPerBuffer,
		Flags:           portaudio.ClipOff,
	}

	frames := cfg.FramesPerBuffer
	onSamples := func(in []float32, _ portaudio.StreamCallbackTimeInfo, flags portaudio.StreamCallbackFlags) {
		if flags&portaudio.InputUnderflow != 0 {
			in = nil
		}
		cb(in, frames)
	}

	stream, err := portaudio.OpenStream(params, onSamples)
	if err != nil {
		return nil, backendError(err)
	}

	log.Printf("Capture device opened: %s, %dHz, %d channel(s), %d frames/buffer (portaudio/float32)",
		dev.Name, cfg.SampleRate, cfg.Channels, cfg.FramesPerBuffer)

	return &portAudioStream{stream: stream}, nil
}

// Terminate releases PortAudio
func (p *PortAudio) Terminate() error {
	if !p.initialized {
		return nil
	}
	p.initialized = false
	p.device = nil
	return portaudio.Terminate()
}

type portAudioStream struct {
	stream *portaudio.Stream
}

func (s *portAudioStream) Start() error {
	return backendError(s.stream.Start())
}

func (s *portAudioStream) Stop() error {
	return backendError(s.stream.Stop())
}

func (s *portAudioStream) Close() error {
	return backendError(s.stream.Close())
}

// backendError keeps PortAudio's numeric error code for diagnostics
func backendError(err error) error {
	if err == nil {
		return nil
	}
	var paErr portaudio.Error
	if errors.As(err, &paErr) {
		return &capture.BackendError{Code: int(paErr), Message: paErr.Error()}
	}
	return &capture.BackendError{Code: capture.UnknownCode, Message: err.Error()}
}
