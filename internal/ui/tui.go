// ABOUTME: TUI initialization and control channel plumbing
// ABOUTME: Wraps the bubbletea program for the deck UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Command identifies a deck action requested from the keyboard
type Command int

const (
	CmdToggle Command = iota
	CmdSeekRel
	CmdSeekTo
	CmdSetCue
	CmdJumpCue
	CmdClearCue
	CmdQuit
)

// ControlMsg is one keyboard-initiated deck action
type ControlMsg struct {
	Cmd     Command
	Seconds float64
	Slot    int
}

// Control carries deck actions from the TUI to the application
type Control struct {
	Commands chan ControlMsg
}

// NewControl creates a control channel pair for the TUI
func NewControl() *Control {
	return &Control{
		Commands: make(chan ControlMsg, 10),
	}
}

// send delivers a control message without ever blocking the UI loop
func (c *Control) send(msg ControlMsg) {
	if c == nil {
		return
	}
	select {
	case c.Commands <- msg:
	default:
	}
}

// NewModel creates a new TUI model
func NewModel(control *Control) Model {
	return Model{
		control:    control,
		sampleRate: 48000,
		cues:       []int64{-1, -1, -1, -1},
	}
}

// Run creates the TUI program; the caller runs it and pushes StatusMsg
// updates via Program.Send.
func Run(control *Control) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(control), tea.WithAltScreen())
	return p, nil
}
