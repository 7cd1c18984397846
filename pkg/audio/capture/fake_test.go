// ABOUTME: Fake audio backend for session tests
// ABOUTME: Drives the callback from a goroutine like a real audio thread
package capture

import (
	"sync"
	"time"
)

type fakeBackend struct {
	device    Device
	deviceErr error
	openErr   error
	startErr  error
	stopErr   error
	closeErr  error

	// auto makes Start spawn a goroutine that feeds blocks every period
	auto   bool
	period time.Duration
	block  func(n int) []float32

	opened     int
	terminated bool
	stream     *fakeStream
	callback   Callback
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) DefaultInputDevice() (Device, error) {
	if b.deviceErr != nil {
		return Device{}, b.deviceErr
	}
	return b.device, nil
}

func (b *fakeBackend) OpenStream(dev Device, cfg StreamConfig, cb Callback) (Stream, error) {
	b.opened++
	if b.openErr != nil {
		return nil, b.openErr
	}
	b.callback = cb
	b.stream = &fakeStream{backend: b, frames: cfg.FramesPerBuffer, channels: cfg.Channels}
	return b.stream, nil
}

func (b *fakeBackend) Terminate() error {
	b.terminated = true
	return nil
}

type fakeStream struct {
	backend  *fakeBackend
	frames   int
	channels int

	started bool
	stopped int
	closed  int

	quit chan struct{}
	wg   sync.WaitGroup
}

func (s *fakeStream) Start() error {
	if s.backend.startErr != nil {
		return s.backend.startErr
	}
	s.started = true
	if !s.backend.auto {
		return nil
	}

	s.quit = make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.backend.period)
		defer ticker.Stop()
		for {
			select {
			case <-s.quit:
				return
			case <-ticker.C:
				var in []float32
				if s.backend.block != nil {
					in = s.backend.block(s.frames * s.channels)
				}
				if s.backend.callback(in, s.frames) == Complete {
					<-s.quit
					return
				}
			}
		}
	}()
	return nil
}

func (s *fakeStream) Stop() error {
	s.stopped++
	if s.backend.stopErr != nil {
		return s.backend.stopErr
	}
	if s.quit != nil {
		close(s.quit)
		s.wg.Wait()
		s.quit = nil
	}
	return nil
}

func (s *fakeStream) Close() error {
	s.closed++
	return s.backend.closeErr
}

// ramp returns n samples counting up from start in 1/1024 steps
func ramp(start, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32((start+i)%1024) / 1024
	}
	return out
}
