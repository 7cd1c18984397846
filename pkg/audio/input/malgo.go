// ABOUTME: Malgo-based capture backend
// ABOUTME: Records float32 input through miniaudio via malgo
package input

import (
	"fmt"
	"log"
	"unsafe"

	"github.com/gen2brain/malgo"
	"github.com/harperreed/monorec/pkg/audio/capture"
)

// Malgo captures through miniaudio. The context is created lazily on the
// first device query and released by Terminate.
type Malgo struct {
	malgoCtx *malgo.AllocatedContext
	device   *malgo.DeviceInfo
}

// NewMalgo creates a new Malgo backend
func NewMalgo() capture.Backend {
	return &Malgo{}
}

// Name returns the backend name
func (m *Malgo) Name() string {
	return BackendMalgo
}

func (m *Malgo) context() (*malgo.AllocatedContext, error) {
	if m.malgoCtx != nil {
		return m.malgoCtx, nil
	}
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	m.malgoCtx = ctx
	return ctx, nil
}

// DefaultInputDevice returns the default capture device
func (m *Malgo) DefaultInputDevice() (capture.Device, error) {
	ctx, err := m.context()
	if err != nil {
		return capture.Device{}, err
	}

	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return capture.Device{}, fmt.Errorf("failed to enumerate capture devices: %w", err)
	}
	if len(infos) == 0 {
		return capture.Device{}, capture.ErrNoInputDevice
	}

	info := infos[0]
	for _, candidate := range infos {
		if candidate.IsDefault != 0 {
			info = candidate
			break
		}
	}

	m.device = &info
	return capture.Device{Name: info.Name()}, nil
}

// OpenStream initializes a float32 capture device delivering
// FramesPerBuffer frames per callback
func (m *Malgo) OpenStream(dev capture.Device, cfg capture.StreamConfig, cb capture.Callback) (capture.Stream, error) {
	ctx, err := m.context()
	if err != nil {
		return nil, err
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = uint32(cfg.Channels)
	deviceConfig.SampleRate = uint32(cfg.SampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(cfg.FramesPerBuffer)
	deviceConfig.Alsa.NoMMap = 1
	if m.device != nil {
		deviceConfig.Capture.DeviceID = m.device.ID.Pointer()
	}

	onSamples := func(pOutputSample, pInputSamples []byte, frameCount uint32) {
		cb(floats(pInputSamples), int(frameCount))
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSamples,
	})
	if err != nil {
		return nil, &capture.BackendError{Code: capture.UnknownCode, Message: err.Error()}
	}

	log.Printf("Capture device opened: %s, %dHz, %d channel(s), %d frames/period (malgo/F32)",
		dev.Name, cfg.SampleRate, cfg.Channels, cfg.FramesPerBuffer)

	return &malgoStream{device: device}, nil
}

// Terminate releases the malgo context
func (m *Malgo) Terminate() error {
	if m.malgoCtx == nil {
		return nil
	}
	err := m.malgoCtx.Uninit()
	m.malgoCtx.Free()
	m.malgoCtx = nil
	m.device = nil
	return err
}

type malgoStream struct {
	device *malgo.Device
}

func (s *malgoStream) Start() error {
	if err := s.device.Start(); err != nil {
		return &capture.BackendError{Code: capture.UnknownCode, Message: err.Error()}
	}
	return nil
}

func (s *malgoStream) Stop() error {
	if err := s.device.Stop(); err != nil {
		return &capture.BackendError{Code: capture.UnknownCode, Message: err.Error()}
	}
	return nil
}

func (s *malgoStream) Close() error {
	s.device.Uninit()
	return nil
}

// floats reinterprets a little-endian F32 byte block as samples without
// copying. An empty block means no input was delivered.
func floats(b []byte) []float32 {
	if len(b) < 4 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), len(b)/4)
}
