// ABOUTME: Entry point for the monorec recorder
// ABOUTME: Parses CLI flags, records once and maps failures to exit codes
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/monorec/internal/app"
	"github.com/harperreed/monorec/internal/config"
	"github.com/harperreed/monorec/internal/logging"
	"github.com/harperreed/monorec/internal/ui"
	"github.com/harperreed/monorec/internal/version"
	"github.com/harperreed/monorec/pkg/audio/capture"
	"github.com/harperreed/monorec/pkg/audio/input"
	"github.com/harperreed/monorec/pkg/audio/wavfile"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitFatal   = 2 // audio subsystem lifecycle failure
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("monorec", flag.ContinueOnError)
	cfg, err := config.Parse(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}

	useTUI := !cfg.NoTUI

	// TUI mode: log only to file. Streaming mode: stdout and file.
	var console io.Writer
	if !useTUI {
		console = os.Stdout
	}
	logCloser := logging.Setup(logging.Options{File: cfg.LogFile, Console: console, Debug: cfg.Debug})
	defer logCloser.Close()

	log.Printf("Starting %s", version.String())
	if cfg.Debug {
		log.Printf("Debug logging enabled")
	}

	backend, err := input.New(cfg.Backend)
	if err != nil {
		return report(os.Stderr, cfg, err)
	}
	defer func() {
		if err := backend.Terminate(); err != nil {
			log.Printf("Error terminating %s: %v", backend.Name(), err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stream := capture.DefaultStreamConfig()

	// TUI setup
	var tuiProg *tea.Program
	tuiDone := make(chan struct{})
	if useTUI {
		control := ui.NewControl()
		tuiProg, err = ui.Run(ui.Setup{
			Backend:    backend.Name(),
			SampleRate: stream.SampleRate,
			Channels:   stream.Channels,
			Duration:   stream.Duration,
			MaxSamples: stream.MaxSamples,
			OutputPath: cfg.OutputPath,
		}, control)
		if err != nil {
			log.Printf("Failed to start TUI: %v", err)
			return exitFailure
		}

		ctx, stop = context.WithCancel(ctx)
		defer stop()
		go func() {
			select {
			case <-control.Stop:
				log.Printf("Stop requested from TUI")
				stop()
			case <-ctx.Done():
			}
		}()

		go func() {
			defer close(tuiDone)
			if _, err := tuiProg.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
		}()
	} else {
		close(tuiDone)
	}

	// Helper to update TUI
	updateTUI := func(msg tea.Msg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	recorder := app.New(app.Config{
		OutputPath: cfg.OutputPath,
		Stream:     stream,
	}, backend, wavfile.NewWriter())

	recorder.OnStatus(func(s app.Status) {
		updateTUI(ui.StatusMsg{
			Phase:           s.Phase,
			Device:          s.Device,
			Elapsed:         s.Elapsed,
			Samples:         s.Stats.Samples,
			Peak:            s.Stats.Peak,
			SilentCallbacks: s.Stats.SilentCallbacks,
		})
	})

	if !useTUI {
		fmt.Printf("Recording for %v...\n", stream.Duration)
	}

	res, err := recorder.Run(ctx)
	updateTUI(ui.DoneMsg{Path: res.Path, FramesWritten: res.FramesWritten, Err: err})
	<-tuiDone

	if err != nil {
		return report(os.Stderr, cfg, err)
	}
	if !useTUI {
		fmt.Printf("Saved recording to %s (%d frames)\n", res.Path, res.FramesWritten)
	}
	return exitOK
}

// report prints a diagnostic for err and returns the process exit code
func report(w io.Writer, cfg config.Config, err error) int {
	log.Printf("Recording failed: %v", err)

	var streamErr *capture.StreamError
	var shortErr *wavfile.ShortWriteError
	switch {
	case errors.As(err, &streamErr):
		fmt.Fprintf(w, "Audio error during stream %s\n", streamErr.Stage)
		fmt.Fprintf(w, "Error number: %d\n", streamErr.Code())
		fmt.Fprintf(w, "Error message: %s\n", streamErr.Message())
		return exitFatal
	case errors.Is(err, capture.ErrNoInputDevice):
		fmt.Fprintln(w, "Error: No default input device.")
	case errors.Is(err, wavfile.ErrFileOpen):
		fmt.Fprintf(w, "Error opening output file %s: %v\n", cfg.OutputPath, errors.Unwrap(err))
	case errors.As(err, &shortErr):
		fmt.Fprintf(w, "Error writing samples to file. Expected %d, wrote %d\n", shortErr.Requested, shortErr.Written)
		if errors.Is(err, wavfile.ErrFileClose) {
			fmt.Fprintln(w, "Error closing output file.")
		}
	case errors.Is(err, wavfile.ErrFileClose):
		fmt.Fprintln(w, "Error closing output file.")
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return exitFailure
}
