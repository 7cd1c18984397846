// ABOUTME: WAV writer error types
// ABOUTME: Open, short write and close failures of the output sink
package wavfile

import (
	"errors"
	"fmt"
)

var (
	ErrFileOpen   = errors.New("output file open failed")
	ErrShortWrite = errors.New("short write")
	ErrFileClose  = errors.New("output file close failed")
)

// Op names the file operation that failed
type Op string

const (
	OpOpen  Op = "open"
	OpClose Op = "close"
)

// FileError is a failure creating or finalizing the output file
type FileError struct {
	Op   Op
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is matches ErrFileOpen and ErrFileClose by operation
func (e *FileError) Is(target error) bool {
	switch target {
	case ErrFileOpen:
		return e.Op == OpOpen
	case ErrFileClose:
		return e.Op == OpClose
	}
	return false
}

// ShortWriteError reports fewer frames reaching the file than requested
type ShortWriteError struct {
	Path      string
	Requested int
	Written   int
	Err       error
}

func (e *ShortWriteError) Error() string {
	msg := fmt.Sprintf("writing %s: expected %d frames, wrote %d", e.Path, e.Requested, e.Written)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ShortWriteError) Unwrap() error {
	return e.Err
}

func (e *ShortWriteError) Is(target error) bool {
	return target == ErrShortWrite
}
