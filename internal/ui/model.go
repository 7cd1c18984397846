// ABOUTME: Bubbletea model for the recording TUI
// ABOUTME: Defines progress state and update logic
package ui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/monorec/pkg/audio"
)

// Model represents the TUI state
type Model struct {
	// Setup
	backend    string
	device     string
	sampleRate int
	channels   int
	duration   time.Duration
	maxSamples int
	outputPath string

	// Progress
	phase           string
	elapsed         time.Duration
	samples         int
	peak            float32
	silentCallbacks int64

	// Result
	framesWritten int
	savedPath     string
	err           error
	done          bool

	control *Control

	width  int
	height int
}

// Setup carries the fixed recording parameters shown in the header
type Setup struct {
	Backend    string
	Device     string
	SampleRate int
	Channels   int
	Duration   time.Duration
	MaxSamples int
	OutputPath string
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	case DoneMsg:
		m.applyDone(msg)
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	s := ""
	s += m.renderHeader()
	s += m.renderProgress()
	s += m.renderResult()
	s += m.renderHelp()
	return s
}

func (m Model) renderHeader() string {
	return fmt.Sprintf(`┌─ monorec ────────────────────────────────────────────┐
│ Device: %-44s │
│ Format: %-44s │
│ Output: %-44s │
├──────────────────────────────────────────────────────┤
`, truncate(m.device+" ("+m.backend+")", 44),
		fmt.Sprintf("%dHz %s float32, %v", m.sampleRate, channelName(m.channels), m.duration),
		truncate(m.outputPath, 44))
}

func (m Model) renderProgress() string {
	elapsed := min(m.elapsed, m.duration)
	progress := 0
	if m.duration > 0 {
		progress = int(100 * elapsed / m.duration)
	}

	return fmt.Sprintf("│ State:  %-44s │\n"+
		"│ Time:   [%s] %5.1fs / %.1fs%-13s │\n"+
		"│ Level:  [%s] %-24s │\n"+
		"│ Samples: %d / %d  Silent blocks: %d%-8s │\n",
		m.phase,
		renderBar(progress, 100, 20), elapsed.Seconds(), m.duration.Seconds(), "",
		renderBar(levelPercent(m.peak), 100, 20), formatDB(m.peak),
		m.samples, m.maxSamples, m.silentCallbacks, "")
}

func (m Model) renderResult() string {
	if !m.done {
		return "│                                                      │\n"
	}
	if m.err != nil {
		return fmt.Sprintf("│ Error:  %-44s │\n", truncate(m.err.Error(), 44))
	}
	return fmt.Sprintf("│ Saved %d frames to %-33s │\n", m.framesWritten, truncate(m.savedPath, 33))
}

func (m Model) renderHelp() string {
	return `│ q:Stop early                                         │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.control != nil {
			m.control.RequestStop()
		}
		if m.done {
			return m, tea.Quit
		}
	}
	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Phase != "" {
		m.phase = msg.Phase
	}
	if msg.Device != "" {
		m.device = msg.Device
	}
	m.elapsed = msg.Elapsed
	m.samples = msg.Samples
	m.silentCallbacks = msg.SilentCallbacks
	if msg.Peak > m.peak {
		m.peak = msg.Peak
	}
}

func (m *Model) applyDone(msg DoneMsg) {
	m.done = true
	m.err = msg.Err
	m.savedPath = msg.Path
	m.framesWritten = msg.FramesWritten
	if msg.Err != nil {
		m.phase = "failed"
	} else {
		m.phase = "saved"
	}
}

// StatusMsg updates recording progress
type StatusMsg struct {
	Phase           string
	Device          string
	Elapsed         time.Duration
	Samples         int
	Peak            float32
	SilentCallbacks int64
}

// DoneMsg reports the final outcome and closes the TUI
type DoneMsg struct {
	Path          string
	FramesWritten int
	Err           error
}

// Utility functions
func renderBar(value, max, width int) string {
	value = min(value, max)
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

// levelPercent maps -60..0 dBFS onto 0..100
func levelPercent(peak float32) int {
	db := audio.Decibels(peak)
	if math.IsInf(db, -1) || db <= -60 {
		return 0
	}
	if db >= 0 {
		return 100
	}
	return int((db + 60) * 100 / 60)
}

func formatDB(peak float32) string {
	db := audio.Decibels(peak)
	if math.IsInf(db, -1) {
		return "silence"
	}
	return fmt.Sprintf("peak %.1f dBFS", db)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	if channels == 1 {
		return "Mono"
	}
	return fmt.Sprintf("%dch", channels)
}
