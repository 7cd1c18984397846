// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the recording view
package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Control carries requests from the TUI back to the recorder
type Control struct {
	Stop chan struct{}
	once sync.Once
}

// NewControl creates a new control handler
func NewControl() *Control {
	return &Control{
		Stop: make(chan struct{}),
	}
}

// RequestStop closes Stop once
func (c *Control) RequestStop() {
	c.once.Do(func() { close(c.Stop) })
}

// NewModel creates a new TUI model
func NewModel(setup Setup, control *Control) Model {
	return Model{
		backend:    setup.Backend,
		device:     setup.Device,
		sampleRate: setup.SampleRate,
		channels:   setup.Channels,
		duration:   setup.Duration,
		maxSamples: setup.MaxSamples,
		outputPath: setup.OutputPath,
		phase:      "starting",
		control:    control,
	}
}

// Run creates the TUI program; the caller starts it
func Run(setup Setup, control *Control) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(setup, control))
	return p, nil
}
