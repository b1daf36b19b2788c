// ABOUTME: Transport command definitions for the control-to-engine queue
// ABOUTME: Commands are immutable values consumed exactly once by the callback
package deck

import "github.com/Monodeck/monodeck-go/pkg/audio"

// CommandType tags the command variant
type CommandType uint8

const (
	// CommandNone is the zero value and never a valid command
	CommandNone CommandType = iota

	// CommandPlay starts playback from the current position
	CommandPlay

	// CommandPause stops playback, keeping the current position
	CommandPause

	// CommandSeekTo jumps to Frame, clamped to the track bounds
	CommandSeekTo

	// CommandSetCue stores the current position into cue slot Slot
	CommandSetCue

	// CommandJumpToCue seeks to the position stored in Slot, if set
	CommandJumpToCue

	// CommandClearCue unsets cue slot Slot
	CommandClearCue

	// CommandLoadTrack swaps the active track buffer for Track
	CommandLoadTrack
)

// String returns the command type name
func (t CommandType) String() string {
	switch t {
	case CommandPlay:
		return "play"
	case CommandPause:
		return "pause"
	case CommandSeekTo:
		return "seek"
	case CommandSetCue:
		return "set-cue"
	case CommandJumpToCue:
		return "jump-to-cue"
	case CommandClearCue:
		return "clear-cue"
	case CommandLoadTrack:
		return "load-track"
	default:
		return "none"
	}
}

// Command is one transport command. Only the fields relevant to Type are
// meaningful; the rest stay at their zero values.
type Command struct {
	Type  CommandType
	Frame int64              // CommandSeekTo target
	Slot  int                // cue slot for the cue commands
	Track *audio.TrackBuffer // CommandLoadTrack payload
}
