// ABOUTME: Tests for the WebSocket control server
// ABOUTME: Covers config validation, command dispatch, and state conversion
package remote

import (
	"strings"
	"testing"

	"github.com/Monodeck/monodeck-go/pkg/deck"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	engine := deck.NewEngine(deck.EngineConfig{})
	d := deck.New(deck.Config{Engine: engine})

	s, err := NewServer(Config{Deck: d})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return s
}

func TestNewServerRequiresDeck(t *testing.T) {
	_, err := NewServer(Config{})
	if err == nil {
		t.Fatal("expected error for missing deck")
	}
}

func TestNewServerDefaults(t *testing.T) {
	s := newTestServer(t)

	if s.config.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, s.config.Port)
	}
	if s.config.Name == "" {
		t.Error("expected a default name")
	}
	if s.config.StateInterval != DefaultStateInterval {
		t.Errorf("expected default state interval %v, got %v", DefaultStateInterval, s.config.StateInterval)
	}
	if s.serverID == "" {
		t.Error("expected a generated server ID")
	}
}

func TestStateFromSnapshot(t *testing.T) {
	snap := deck.Snapshot{
		PositionFrames: 24000,
		TotalFrames:    48000,
		SampleRate:     48000,
		Playing:        true,
		TrackEpoch:     3,
		Faults:         1,
	}
	for i := range snap.Cues {
		snap.Cues[i] = -1
	}
	snap.Cues[2] = 12000

	state := stateFromSnapshot(snap)

	if !state.Playing {
		t.Error("expected playing state")
	}
	if state.PositionSeconds != 0.5 {
		t.Errorf("expected 0.5s position, got %v", state.PositionSeconds)
	}
	if state.TotalSeconds != 1.0 {
		t.Errorf("expected 1.0s total, got %v", state.TotalSeconds)
	}
	if len(state.Cues) != deck.NumCues {
		t.Fatalf("expected %d cue slots, got %d", deck.NumCues, len(state.Cues))
	}
	if state.Cues[2] != 12000 {
		t.Errorf("expected cue 2 at 12000, got %d", state.Cues[2])
	}
	if state.Cues[0] != -1 {
		t.Errorf("expected cue 0 unset, got %d", state.Cues[0])
	}
	if state.TrackEpoch != 3 || state.Faults != 1 {
		t.Errorf("epoch/faults not carried: %d/%d", state.TrackEpoch, state.Faults)
	}
}

// drainMessages collects everything buffered on a client's send channel
func drainMessages(c *client) []Message {
	var msgs []Message
	for {
		select {
		case m := <-c.sendChan:
			msgs = append(msgs, m.(Message))
		default:
			return msgs
		}
	}
}

func TestHandleDeckCommandDispatch(t *testing.T) {
	s := newTestServer(t)
	c := &client{ID: "c1", Name: "test", sendChan: make(chan interface{}, 100)}

	commands := []map[string]interface{}{
		{"command": "play"},
		{"command": "pause"},
		{"command": "seek", "seconds": 1.5},
		{"command": "set_cue", "slot": 0},
		{"command": "jump_cue", "slot": 0},
		{"command": "clear_cue", "slot": 3},
	}

	for _, cmd := range commands {
		s.handleDeckCommand(c, cmd)
	}

	if msgs := drainMessages(c); len(msgs) != 0 {
		t.Errorf("valid commands produced %d unexpected messages: %+v", len(msgs), msgs)
	}

	if pending := s.deck.Engine().Pending(); pending != len(commands) {
		t.Errorf("expected %d queued commands, got %d", len(commands), pending)
	}
}

func TestHandleDeckCommandErrors(t *testing.T) {
	s := newTestServer(t)
	c := &client{ID: "c1", Name: "test", sendChan: make(chan interface{}, 100)}

	tests := []struct {
		name    string
		payload map[string]interface{}
		wantSub string
	}{
		{"unknown command", map[string]interface{}{"command": "scratch"}, "unknown command"},
		{"invalid cue slot", map[string]interface{}{"command": "set_cue", "slot": 9}, "cue slot"},
		{"load without path", map[string]interface{}{"command": "load"}, "path"},
	}

	for _, tt := range tests {
		s.handleDeckCommand(c, tt.payload)

		msgs := drainMessages(c)
		if len(msgs) != 1 {
			t.Errorf("%s: expected 1 error message, got %d", tt.name, len(msgs))
			continue
		}
		if msgs[0].Type != "server/error" {
			t.Errorf("%s: expected server/error, got %s", tt.name, msgs[0].Type)
			continue
		}
		em := msgs[0].Payload.(ErrorMessage)
		if !strings.Contains(em.Message, tt.wantSub) {
			t.Errorf("%s: error %q does not mention %q", tt.name, em.Message, tt.wantSub)
		}
	}
}

func TestSendMessageBufferFull(t *testing.T) {
	s := newTestServer(t)
	c := &client{ID: "c1", Name: "test", sendChan: make(chan interface{}, 1)}

	if err := s.sendMessage(c, "deck/state", DeckState{}); err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	if err := s.sendMessage(c, "deck/state", DeckState{}); err == nil {
		t.Error("expected error when send buffer is full")
	}
}
