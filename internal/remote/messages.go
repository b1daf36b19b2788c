// ABOUTME: Message type definitions for the WebSocket control protocol
// ABOUTME: Controllers send deck commands and receive periodic state updates
package remote

// Message is the top-level wrapper for all control messages
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ClientHello is sent by controllers to initiate the handshake
type ClientHello struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Version  int    `json:"version"`
}

// ServerHello is the deck's response to client/hello
type ServerHello struct {
	ServerID   string `json:"server_id"`
	Name       string `json:"name"`
	Version    int    `json:"version"`
	SampleRate int    `json:"sample_rate"`
	NumCues    int    `json:"num_cues"`
}

// DeckCommand is a control request from a connected controller
type DeckCommand struct {
	Command string  `json:"command"` // play, pause, seek, set_cue, jump_cue, clear_cue, load
	Seconds float64 `json:"seconds,omitempty"`
	Frame   int64   `json:"frame,omitempty"`
	Slot    int     `json:"slot,omitempty"`
	Path    string  `json:"path,omitempty"`
}

// DeckState reports the deck's transport state (sent as deck/state message)
type DeckState struct {
	Playing         bool    `json:"playing"`
	PositionFrames  int64   `json:"position_frames"`
	TotalFrames     int64   `json:"total_frames"`
	PositionSeconds float64 `json:"position_seconds"`
	TotalSeconds    float64 `json:"total_seconds"`
	SampleRate      int     `json:"sample_rate"`
	TrackEpoch      uint64  `json:"track_epoch"`
	Faults          uint64  `json:"faults"`
	Cues            []int64 `json:"cues"` // -1 for unset slots
}

// LoadUpdate reports completion or failure of an asynchronous track load
type LoadUpdate struct {
	LoadID   string  `json:"load_id"`
	Path     string  `json:"path"`
	Duration float64 `json:"duration,omitempty"` // seconds
	Error    string  `json:"error,omitempty"`
}

// ErrorMessage reports a rejected command back to the controller
type ErrorMessage struct {
	Message string `json:"message"`
}
