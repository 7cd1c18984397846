// ABOUTME: Main recorder application orchestration
// ABOUTME: Runs one capture session and hands the buffer to the WAV writer
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/monorec/internal/version"
	"github.com/harperreed/monorec/pkg/audio/capture"
	"github.com/harperreed/monorec/pkg/audio/wavfile"
)

// Config holds recorder configuration
type Config struct {
	OutputPath     string
	Stream         capture.StreamConfig
	StatusInterval time.Duration
}

// Status is a progress snapshot published while recording
type Status struct {
	Phase   string
	Device  string
	Elapsed time.Duration
	Stats   capture.Stats
}

// Result describes a finished recording
type Result struct {
	SessionID     uuid.UUID
	Device        string
	Samples       int
	FramesWritten int
	Path          string
}

// Recorder records once from the default input and saves the take
type Recorder struct {
	config   Config
	backend  capture.Backend
	writer   *wavfile.Writer
	onStatus func(Status)
}

// New creates a new recorder
func New(config Config, backend capture.Backend, writer *wavfile.Writer) *Recorder {
	if config.StatusInterval <= 0 {
		config.StatusInterval = 100 * time.Millisecond
	}
	if config.OutputPath == "" {
		config.OutputPath = wavfile.DefaultPath
	}
	return &Recorder{
		config:  config,
		backend: backend,
		writer:  writer,
	}
}

// OnStatus registers a progress callback. It runs on its own goroutine.
func (r *Recorder) OnStatus(fn func(Status)) {
	r.onStatus = fn
}

// Run captures for the configured duration, then writes the file.
// Cancelling ctx stops the capture early; what was recorded is still saved.
func (r *Recorder) Run(ctx context.Context) (Result, error) {
	result := Result{
		SessionID: uuid.New(),
		Path:      r.config.OutputPath,
	}
	cfg := r.config.Stream

	session := capture.NewSession(r.backend, cfg)
	if err := session.Initialize(); err != nil {
		return result, err
	}
	result.Device = session.Device().Name

	log.Printf("Session %s: %s via %s", result.SessionID, result.Device, r.backend.Name())
	log.Printf("Recording for %v (%dHz, %d channel(s), %d frames/buffer)...",
		cfg.Duration, cfg.SampleRate, cfg.Channels, cfg.FramesPerBuffer)

	stop := r.startStatusLoop(session, result.Device)
	buf, err := session.Record(ctx)
	stop()
	if err != nil {
		return result, err
	}

	stats := session.Stats()
	result.Samples = buf.Len()
	log.Printf("Recording finished: %d of %d samples, %d callbacks (%d without input)",
		buf.Len(), cfg.MaxSamples, stats.Callbacks, stats.SilentCallbacks)

	written, err := r.writer.Write(wavfile.Descriptor{
		Path:       r.config.OutputPath,
		SampleRate: cfg.SampleRate,
		Channels:   cfg.Channels,
		Software:   version.String(),
		Comment:    fmt.Sprintf("session %s", result.SessionID),
	}, buf.Samples())
	result.FramesWritten = written.FramesWritten

	var swe *wavfile.ShortWriteError
	if errors.As(err, &swe) {
		log.Printf("Error writing samples to file. Expected %d, wrote %d", swe.Requested, swe.Written)
	}
	if err != nil {
		return result, err
	}

	log.Printf("Successfully wrote %d samples to file.", buf.Len())
	log.Printf("Saved recording to %s", result.Path)
	return result, nil
}

// startStatusLoop publishes progress until the returned func is called
func (r *Recorder) startStatusLoop(session *capture.Session, device string) func() {
	if r.onStatus == nil {
		return func() {}
	}

	start := time.Now()
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(r.config.StatusInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				stats := session.Stats()
				phase := "recording"
				if !stats.Recording {
					phase = "stopping"
				}
				r.onStatus(Status{
					Phase:   phase,
					Device:  device,
					Elapsed: time.Since(start),
					Stats:   stats,
				})
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}
