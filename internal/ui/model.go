// ABOUTME: Bubbletea model for the deck TUI
// ABOUTME: Defines application state, key handling, and rendering
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// Track
	trackName string
	hasTrack  bool
	loading   bool

	// Transport
	playing         bool
	positionSeconds float64
	totalSeconds    float64

	// Cues (frame positions, -1 for unset)
	cues       []int64
	sampleRate int

	// When armed, the next 1-4 key clears that cue instead of jumping
	clearArmed bool

	// Engine health
	faults uint64

	lastError string

	control *Control

	// Dimensions
	width  int
	height int
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
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderTransport()
	s += m.renderCues()
	s += m.renderHelp()

	return s
}

// renderHeader renders the track line
func (m Model) renderHeader() string {
	track := "No track loaded"
	switch {
	case m.loading:
		track = "Loading..."
	case m.hasTrack:
		track = truncate(m.trackName, 44)
	}

	return fmt.Sprintf(`┌─ Monodeck ───────────────────────────────────────────┐
│ Track: %-46s │
├──────────────────────────────────────────────────────┤
`, track)
}

// renderTransport renders play state, position, and the progress bar
func (m Model) renderTransport() string {
	stateIcon := "■"
	stateText := "Stopped"
	if m.playing {
		stateIcon = "▶"
		stateText = "Playing"
	}

	bar := renderBar(m.positionSeconds, m.totalSeconds, 36)

	s := fmt.Sprintf("│ %s %-7s  %s / %s%-24s │\n",
		stateIcon, stateText,
		formatTime(m.positionSeconds), formatTime(m.totalSeconds), "")
	s += fmt.Sprintf("│ [%s]%-15s │\n", bar, "")

	if m.faults > 0 {
		s += fmt.Sprintf("│ Faults: %-44d │\n", m.faults)
	}
	if m.lastError != "" {
		s += fmt.Sprintf("│ Error: %-45s │\n", truncate(m.lastError, 45))
	}

	return s
}

// renderCues renders the hot cue pads
func (m Model) renderCues() string {
	s := "├──────────────────────────────────────────────────────┤\n│ Cues: "

	for i, frame := range m.cues {
		if frame < 0 {
			s += fmt.Sprintf(" [%d] --:--.-", i+1)
		} else {
			s += fmt.Sprintf(" [%d] %s", i+1, formatTime(float64(frame)/float64(m.sampleRate)))
		}
	}

	mode := ""
	if m.clearArmed {
		mode = " CLEAR?"
	}
	s += fmt.Sprintf("%-7s│\n", mode)

	return s
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ space:Play/Pause  ←/→:Seek  1-4:Jump  !@#$:Set       │
│ c:Clear mode  0:Restart  q:Quit                      │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		m.control.send(ControlMsg{Cmd: CmdQuit})
		return m, tea.Quit
	case " ":
		m.clearArmed = false
		m.control.send(ControlMsg{Cmd: CmdToggle})
	case "left":
		m.clearArmed = false
		m.control.send(ControlMsg{Cmd: CmdSeekRel, Seconds: -5})
	case "right":
		m.clearArmed = false
		m.control.send(ControlMsg{Cmd: CmdSeekRel, Seconds: 5})
	case "0":
		m.clearArmed = false
		m.control.send(ControlMsg{Cmd: CmdSeekTo, Seconds: 0})
	case "c":
		m.clearArmed = !m.clearArmed
	case "1", "2", "3", "4":
		slot := int(key[0] - '1')
		if m.clearArmed {
			m.clearArmed = false
			m.control.send(ControlMsg{Cmd: CmdClearCue, Slot: slot})
		} else {
			m.control.send(ControlMsg{Cmd: CmdJumpCue, Slot: slot})
		}
	case "!":
		m.control.send(ControlMsg{Cmd: CmdSetCue, Slot: 0})
	case "@":
		m.control.send(ControlMsg{Cmd: CmdSetCue, Slot: 1})
	case "#":
		m.control.send(ControlMsg{Cmd: CmdSetCue, Slot: 2})
	case "$":
		m.control.send(ControlMsg{Cmd: CmdSetCue, Slot: 3})
	}

	return m, nil
}

// applyStatus updates model from a status push
func (m *Model) applyStatus(msg StatusMsg) {
	m.playing = msg.Playing
	m.positionSeconds = msg.PositionSeconds
	m.totalSeconds = msg.TotalSeconds
	m.hasTrack = msg.HasTrack
	m.faults = msg.Faults
	if msg.SampleRate > 0 {
		m.sampleRate = msg.SampleRate
	}
	if msg.Cues != nil {
		m.cues = msg.Cues
	}
	if msg.TrackName != "" {
		m.trackName = msg.TrackName
		m.loading = false
	}
	if msg.Loading {
		m.loading = true
	}
	if msg.Error != "" {
		m.lastError = msg.Error
		m.loading = false
	}
}

// StatusMsg pushes deck state into the TUI
type StatusMsg struct {
	Playing         bool
	PositionSeconds float64
	TotalSeconds    float64
	HasTrack        bool
	SampleRate      int
	Cues            []int64
	Faults          uint64
	TrackName       string
	Loading         bool
	Error           string
}

// Utility functions
func renderBar(value, max float64, width int) string {
	filled := 0
	if max > 0 {
		filled = int(value / max * float64(width))
		if filled > width {
			filled = width
		}
	}

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

// formatTime renders seconds as m:ss.t
func formatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	mins := int(seconds) / 60
	rest := seconds - float64(mins*60)
	return fmt.Sprintf("%d:%04.1f", mins, rest)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
