// ABOUTME: Capture error taxonomy
// ABOUTME: Device absence and per-stage stream lifecycle failures
package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrNoInputDevice means the audio subsystem reports no default input device
	ErrNoInputDevice = errors.New("no default input device")

	ErrStreamOpen  = errors.New("stream open failed")
	ErrStreamStart = errors.New("stream start failed")
	ErrStreamStop  = errors.New("stream stop failed")
	ErrStreamClose = errors.New("stream close failed")

	// ErrInvalidState means a lifecycle call was made out of order
	ErrInvalidState = errors.New("invalid session state")
)

// Stage names a stream lifecycle step
type Stage string

const (
	StageOpen  Stage = "open"
	StageStart Stage = "start"
	StageStop  Stage = "stop"
	StageClose Stage = "close"
)

// UnknownCode is reported when a backend does not expose a numeric error code
const UnknownCode = -1

// BackendError carries an audio subsystem's numeric code and message.
// Backends return it so diagnostics can print both.
type BackendError struct {
	Code    int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// StreamError is a fatal audio subsystem failure at one lifecycle stage
type StreamError struct {
	Stage Stage
	Err   error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream %s: %v", e.Stage, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// Is matches the per-stage sentinel errors
func (e *StreamError) Is(target error) bool {
	switch target {
	case ErrStreamOpen:
		return e.Stage == StageOpen
	case ErrStreamStart:
		return e.Stage == StageStart
	case ErrStreamStop:
		return e.Stage == StageStop
	case ErrStreamClose:
		return e.Stage == StageClose
	}
	return false
}

// Code returns the backend error code, or UnknownCode
func (e *StreamError) Code() int {
	var be *BackendError
	if errors.As(e.Err, &be) {
		return be.Code
	}
	return UnknownCode
}

// Message returns the backend's human-readable message
func (e *StreamError) Message() string {
	var be *BackendError
	if errors.As(e.Err, &be) {
		return be.Message
	}
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
