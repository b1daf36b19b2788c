// ABOUTME: Tests for the snapshot publication cell
// ABOUTME: Verifies consistency under concurrent publish and read
package deck

import (
	"sync"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	var cell snapshotCell

	s := Snapshot{
		PositionFrames: 22050,
		TotalFrames:    44100,
		SampleRate:     44100,
		Playing:        true,
		TrackEpoch:     3,
		Faults:         1,
	}
	s.Cues[0] = 1000
	s.Cues[1] = cueUnset
	s.Cues[2] = cueUnset
	s.Cues[3] = cueUnset

	cell.publish(s)
	got := cell.read()

	if got != s {
		t.Errorf("expected %+v, got %+v", s, got)
	}
}

func TestSnapshotDerivedFields(t *testing.T) {
	s := Snapshot{
		PositionFrames: 24000,
		TotalFrames:    48000,
		SampleRate:     48000,
	}

	if s.PositionSeconds() != 0.5 {
		t.Errorf("expected 0.5s, got %f", s.PositionSeconds())
	}
	if s.TotalSeconds() != 1.0 {
		t.Errorf("expected 1.0s, got %f", s.TotalSeconds())
	}

	var zero Snapshot
	if zero.PositionSeconds() != 0 {
		t.Error("expected 0 position seconds with no sample rate")
	}
}

func TestSnapshotCueSet(t *testing.T) {
	s := Snapshot{}
	for i := range s.Cues {
		s.Cues[i] = cueUnset
	}
	s.Cues[2] = 500

	if s.CueSet(0) {
		t.Error("slot 0 should be unset")
	}
	if !s.CueSet(2) {
		t.Error("slot 2 should be set")
	}
	if s.CueSet(-1) || s.CueSet(NumCues) {
		t.Error("out-of-range slots are never set")
	}
}

func TestSnapshotConcurrentReaders(t *testing.T) {
	var cell snapshotCell

	// Writer publishes coupled values; readers must never observe a
	// mixture of two publishes.
	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := int64(0); i < 10000; i++ {
			cell.publish(Snapshot{
				PositionFrames: i,
				TotalFrames:    i * 2,
				SampleRate:     48000,
			})
		}
		close(done)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				s := cell.read()
				if s.TotalFrames != s.PositionFrames*2 {
					t.Errorf("torn read: position=%d total=%d", s.PositionFrames, s.TotalFrames)
					return
				}
				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}

	wg.Wait()
}
