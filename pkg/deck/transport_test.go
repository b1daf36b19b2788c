// ABOUTME: Tests for the transport state machine
// ABOUTME: Covers seek clamping, advancement, and end-of-track behavior
package deck

import "testing"

func TestTransportSeekClamps(t *testing.T) {
	tests := []struct {
		name     string
		target   int64
		expected int64
	}{
		{"negative clamps to zero", -100, 0},
		{"in range", 500, 500},
		{"at total", 1000, 1000},
		{"past total clamps", 5000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := transport{}
			tr.load(1000)
			tr.seekTo(tt.target)
			if tr.position != tt.expected {
				t.Errorf("expected position %d, got %d", tt.expected, tr.position)
			}
		})
	}
}

func TestTransportSeekKeepsPlayState(t *testing.T) {
	tr := transport{}
	tr.load(1000)
	tr.play()
	tr.seekTo(500)
	if !tr.playing {
		t.Error("seek must not change play state")
	}

	tr.pause()
	tr.seekTo(200)
	if tr.playing {
		t.Error("seek must not resume playback")
	}
}

func TestTransportAdvance(t *testing.T) {
	tr := transport{}
	tr.load(1000)
	tr.play()

	consumed := tr.advance(256)
	if consumed != 256 {
		t.Errorf("expected 256 frames consumed, got %d", consumed)
	}
	if tr.position != 256 {
		t.Errorf("expected position 256, got %d", tr.position)
	}
	if !tr.playing {
		t.Error("expected still playing")
	}
}

func TestTransportAdvanceStopsAtEnd(t *testing.T) {
	tr := transport{}
	tr.load(1000)
	tr.play()
	tr.seekTo(900)

	consumed := tr.advance(256)
	if consumed != 100 {
		t.Errorf("expected 100 frames consumed at end, got %d", consumed)
	}
	if tr.position != 1000 {
		t.Errorf("expected position clamped to 1000, got %d", tr.position)
	}
	if tr.playing {
		t.Error("expected stopped at end of track")
	}

	// Further advancement stays put
	if tr.advance(256) != 0 {
		t.Error("expected no consumption past end")
	}
	if tr.position != 1000 {
		t.Errorf("position moved past end: %d", tr.position)
	}
}

func TestTransportLoadResets(t *testing.T) {
	tr := transport{}
	tr.load(1000)
	tr.play()
	tr.seekTo(500)

	tr.load(2000)
	if tr.position != 0 {
		t.Errorf("expected position reset to 0, got %d", tr.position)
	}
	if tr.playing {
		t.Error("expected stopped after load")
	}
	if tr.total != 2000 {
		t.Errorf("expected total 2000, got %d", tr.total)
	}
}
