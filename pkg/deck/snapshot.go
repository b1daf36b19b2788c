// ABOUTME: Atomically published engine state for control-thread consumption
// ABOUTME: Seqlock-style cell; the callback writer never waits on readers
package deck

import "sync/atomic"

// Snapshot is a read-only copy of the engine's published state. The control
// thread polls it for UI display and load-handoff confirmation; it never
// aliases live engine state.
type Snapshot struct {
	PositionFrames int64
	TotalFrames    int64
	SampleRate     int
	Playing        bool
	TrackEpoch     uint64
	Faults         uint64
	Cues           [NumCues]int64 // -1 for unset slots
}

// PositionSeconds returns the playhead position in seconds
func (s Snapshot) PositionSeconds() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(s.PositionFrames) / float64(s.SampleRate)
}

// TotalSeconds returns the track duration in seconds
func (s Snapshot) TotalSeconds() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(s.TotalFrames) / float64(s.SampleRate)
}

// CueSet reports whether the given slot holds a position
func (s Snapshot) CueSet(slot int) bool {
	return validSlot(slot) && s.Cues[slot] != cueUnset
}

// snapshotCell is a single-writer, multi-reader publication cell. The
// writer (the audio callback) bumps the sequence to an odd value, stores
// the fields, and bumps it even again; readers retry until they observe a
// stable even sequence. The writer never blocks and never allocates.
type snapshotCell struct {
	seq      atomic.Uint64
	position atomic.Int64
	total    atomic.Int64
	rate     atomic.Int64
	playing  atomic.Bool
	epoch    atomic.Uint64
	faults   atomic.Uint64
	cues     [NumCues]atomic.Int64
}

// publish stores a new snapshot. Writer side only.
func (c *snapshotCell) publish(s Snapshot) {
	c.seq.Add(1)
	c.position.Store(s.PositionFrames)
	c.total.Store(s.TotalFrames)
	c.rate.Store(int64(s.SampleRate))
	c.playing.Store(s.Playing)
	c.epoch.Store(s.TrackEpoch)
	c.faults.Store(s.Faults)
	for i := range s.Cues {
		c.cues[i].Store(s.Cues[i])
	}
	c.seq.Add(1)
}

// read returns the latest consistent snapshot, retrying over in-flight
// publishes. Each retry window is one bounded publish, so the loop is short.
func (c *snapshotCell) read() Snapshot {
	for {
		seq := c.seq.Load()
		if seq&1 == 1 {
			continue
		}

		s := Snapshot{
			PositionFrames: c.position.Load(),
			TotalFrames:    c.total.Load(),
			SampleRate:     int(c.rate.Load()),
			Playing:        c.playing.Load(),
			TrackEpoch:     c.epoch.Load(),
			Faults:         c.faults.Load(),
		}
		for i := range s.Cues {
			s.Cues[i] = c.cues[i].Load()
		}

		if c.seq.Load() == seq {
			return s
		}
	}
}
