// ABOUTME: Transport state machine owning playback position and play state
// ABOUTME: Mutated only on the engine side; published via the snapshot cell
package deck

// transport holds the playhead and play state. All mutation happens on the
// callback side, so plain fields suffice; the control thread only ever sees
// copies through the snapshot.
//
// Invariant: 0 <= position <= total.
type transport struct {
	position int64
	total    int64
	playing  bool
}

// play starts advancement; no-op when already playing
func (t *transport) play() {
	t.playing = true
}

// pause stops advancement, keeping the position; no-op when already stopped
func (t *transport) pause() {
	t.playing = false
}

// seekTo jumps to frame, clamped to [0, total]. Play state is untouched.
func (t *transport) seekTo(frame int64) {
	if frame < 0 {
		frame = 0
	} else if frame > t.total {
		frame = t.total
	}
	t.position = frame
}

// advance moves the playhead by up to frames, clamping at end of track.
// Reaching the end forces the stopped state. Returns the frames actually
// consumed from the track.
func (t *transport) advance(frames int) int64 {
	remaining := t.total - t.position
	consumed := int64(frames)
	if consumed >= remaining {
		consumed = remaining
		t.position = t.total
		t.playing = false
		return consumed
	}
	t.position += consumed
	return consumed
}

// load resets the transport for a track of the given length
func (t *transport) load(total int64) {
	t.total = total
	t.position = 0
	t.playing = false
}
