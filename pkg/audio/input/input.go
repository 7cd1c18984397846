// ABOUTME: Capture backend selection
// ABOUTME: Maps backend names to capture.Backend implementations
package input

import (
	"fmt"
	"strings"

	"github.com/harperreed/monorec/pkg/audio/capture"
)

const (
	BackendMalgo     = "malgo"
	BackendPortAudio = "portaudio"
)

// Backends lists the selectable backend names
var Backends = []string{BackendMalgo, BackendPortAudio}

// New returns the backend registered under name
func New(name string) (capture.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendMalgo:
		return NewMalgo(), nil
	case BackendPortAudio:
		return NewPortAudio(), nil
	default:
		return nil, fmt.Errorf("unknown capture backend %q (available: %s)", name, strings.Join(Backends, ", "))
	}
}
