// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, key handling, and rendering helpers
package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil) // Control is optional for testing

	if model.playing {
		t.Error("expected playing to be false initially")
	}

	if model.hasTrack {
		t.Error("expected hasTrack to be false initially")
	}

	if len(model.cues) != 4 {
		t.Fatalf("expected 4 cue slots, got %d", len(model.cues))
	}
	for i, c := range model.cues {
		if c != -1 {
			t.Errorf("expected cue %d unset, got %d", i, c)
		}
	}

	if model.sampleRate != 48000 {
		t.Errorf("expected default sample rate 48000, got %d", model.sampleRate)
	}
}

func TestStatusMsgTransport(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{
		Playing:         true,
		PositionSeconds: 12.5,
		TotalSeconds:    180,
		HasTrack:        true,
		SampleRate:      44100,
	})

	if !model.playing {
		t.Error("expected playing after status update")
	}
	if model.positionSeconds != 12.5 {
		t.Errorf("expected position 12.5, got %v", model.positionSeconds)
	}
	if model.totalSeconds != 180 {
		t.Errorf("expected total 180, got %v", model.totalSeconds)
	}
	if model.sampleRate != 44100 {
		t.Errorf("expected sample rate 44100, got %d", model.sampleRate)
	}
}

func TestStatusMsgTrackName(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{Loading: true})
	if !model.loading {
		t.Error("expected loading state")
	}

	model.applyStatus(StatusMsg{TrackName: "mix.flac", HasTrack: true})
	if model.trackName != "mix.flac" {
		t.Errorf("expected track name 'mix.flac', got '%s'", model.trackName)
	}
	if model.loading {
		t.Error("expected loading cleared once a track name arrives")
	}

	// Empty name in a later push must not clear it
	model.applyStatus(StatusMsg{HasTrack: true})
	if model.trackName != "mix.flac" {
		t.Error("track name should not be cleared by empty string")
	}
}

func TestStatusMsgError(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{Loading: true})
	model.applyStatus(StatusMsg{Error: "decode failed"})

	if model.lastError != "decode failed" {
		t.Errorf("expected error retained, got '%s'", model.lastError)
	}
	if model.loading {
		t.Error("expected loading cleared on error")
	}
}

func TestStatusMsgCues(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{Cues: []int64{100, -1, 2000, -1}})

	if model.cues[0] != 100 || model.cues[2] != 2000 {
		t.Errorf("cues not applied: %v", model.cues)
	}

	// nil cues leave the previous table untouched
	model.applyStatus(StatusMsg{})
	if model.cues[0] != 100 {
		t.Error("cues should not be cleared by a push without them")
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func recvCommand(t *testing.T, ctrl *Control) ControlMsg {
	t.Helper()
	select {
	case msg := <-ctrl.Commands:
		return msg
	default:
		t.Fatal("expected a control message")
		return ControlMsg{}
	}
}

func TestKeyCommands(t *testing.T) {
	tests := []struct {
		key     string
		cmd     Command
		slot    int
		seconds float64
	}{
		{" ", CmdToggle, 0, 0},
		{"1", CmdJumpCue, 0, 0},
		{"4", CmdJumpCue, 3, 0},
		{"!", CmdSetCue, 0, 0},
		{"$", CmdSetCue, 3, 0},
		{"0", CmdSeekTo, 0, 0},
	}

	for _, tt := range tests {
		ctrl := NewControl()
		model := NewModel(ctrl)

		model.handleKey(keyMsg(tt.key))

		msg := recvCommand(t, ctrl)
		if msg.Cmd != tt.cmd {
			t.Errorf("key %q: expected command %v, got %v", tt.key, tt.cmd, msg.Cmd)
		}
		if msg.Slot != tt.slot {
			t.Errorf("key %q: expected slot %d, got %d", tt.key, tt.slot, msg.Slot)
		}
		if msg.Seconds != tt.seconds {
			t.Errorf("key %q: expected seconds %v, got %v", tt.key, tt.seconds, msg.Seconds)
		}
	}
}

func TestSeekKeys(t *testing.T) {
	ctrl := NewControl()
	model := NewModel(ctrl)

	model.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	msg := recvCommand(t, ctrl)
	if msg.Cmd != CmdSeekRel || msg.Seconds != -5 {
		t.Errorf("left arrow: expected seek -5s, got %v %v", msg.Cmd, msg.Seconds)
	}

	model.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	msg = recvCommand(t, ctrl)
	if msg.Cmd != CmdSeekRel || msg.Seconds != 5 {
		t.Errorf("right arrow: expected seek +5s, got %v %v", msg.Cmd, msg.Seconds)
	}
}

func TestClearMode(t *testing.T) {
	ctrl := NewControl()
	model := NewModel(ctrl)

	// Arm clear mode, then hit a pad
	updated, _ := model.handleKey(keyMsg("c"))
	model = updated.(Model)
	if !model.clearArmed {
		t.Fatal("expected clear mode armed")
	}

	updated, _ = model.handleKey(keyMsg("2"))
	model = updated.(Model)

	msg := recvCommand(t, ctrl)
	if msg.Cmd != CmdClearCue || msg.Slot != 1 {
		t.Errorf("expected clear cue slot 1, got %v slot %d", msg.Cmd, msg.Slot)
	}
	if model.clearArmed {
		t.Error("expected clear mode disarmed after use")
	}

	// Same pad without arming jumps instead
	model.handleKey(keyMsg("2"))
	msg = recvCommand(t, ctrl)
	if msg.Cmd != CmdJumpCue {
		t.Errorf("expected jump cue, got %v", msg.Cmd)
	}
}

func TestControlSendNeverBlocks(t *testing.T) {
	ctrl := NewControl()
	model := NewModel(ctrl)

	// Overflow the buffered channel; drops are acceptable, blocking is not
	for i := 0; i < 50; i++ {
		model.handleKey(keyMsg(" "))
	}

	if len(ctrl.Commands) != cap(ctrl.Commands) {
		t.Errorf("expected a full channel, got %d", len(ctrl.Commands))
	}
}

func TestNilControlSend(t *testing.T) {
	model := NewModel(nil)

	// Must not panic without a control channel
	model.handleKey(keyMsg(" "))
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "0:00.0"},
		{5.25, "0:05.2"},
		{59.5, "0:59.5"},
		{60, "1:00.0"},
		{125.5, "2:05.5"},
		{-3, "0:00.0"},
	}

	for _, tt := range tests {
		result := formatTime(tt.seconds)
		if result != tt.expected {
			t.Errorf("formatTime(%v) = %q, expected %q", tt.seconds, result, tt.expected)
		}
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		value, max float64
		width      int
		filled     int
	}{
		{0, 100, 10, 0},
		{50, 100, 10, 5},
		{100, 100, 10, 10},
		{150, 100, 10, 10}, // clamped
		{10, 0, 10, 0},     // no track
	}

	for _, tt := range tests {
		bar := renderBar(tt.value, tt.max, tt.width)
		runes := []rune(bar)
		if len(runes) != tt.width {
			t.Errorf("renderBar(%v, %v, %d): width %d", tt.value, tt.max, tt.width, len(runes))
			continue
		}
		filled := 0
		for _, r := range runes {
			if r == '█' {
				filled++
			}
		}
		if filled != tt.filled {
			t.Errorf("renderBar(%v, %v, %d): expected %d filled, got %d",
				tt.value, tt.max, tt.width, tt.filled, filled)
		}
	}
}

func TestTruncateFunction(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"this is longer than allowed", 10, "this is..."},
		{"", 10, ""},
		{"abcd", 4, "abcd"},
		{"abcde", 4, "a..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q",
				tt.input, tt.maxLen, result, tt.expected)
		}
	}
}

func TestViewRendersWithoutTrack(t *testing.T) {
	model := NewModel(nil)
	model.width = 80
	model.height = 24

	view := model.View()
	if view == "" {
		t.Fatal("expected non-empty view")
	}
}
