// ABOUTME: Log output setup
// ABOUTME: Routes the standard logger to a rotating file, optionally tee'd to stdout
package logging

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where log output goes
type Options struct {
	// File is the log file path; empty disables file logging
	File string

	// Console also writes to this writer (stdout when the TUI is off)
	Console io.Writer

	Debug bool
}

// Setup points the standard logger at the configured sinks and returns a
// closer for the log file
func Setup(opts Options) io.Closer {
	var writers []io.Writer
	var file *lumberjack.Logger

	if opts.File != "" {
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		writers = append(writers, file)
	}
	if opts.Console != nil {
		writers = append(writers, opts.Console)
	}

	switch len(writers) {
	case 0:
		log.SetOutput(io.Discard)
	case 1:
		log.SetOutput(writers[0])
	default:
		log.SetOutput(io.MultiWriter(writers...))
	}

	flags := log.LstdFlags
	if opts.Debug {
		flags |= log.Lmicroseconds | log.Lshortfile
	}
	log.SetFlags(flags)

	if file == nil {
		return nopCloser{}
	}
	return file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
