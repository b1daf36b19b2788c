// ABOUTME: Control-thread facade over the engine command queue
// ABOUTME: Async track loading, transport commands, and buffer retirement
package deck

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Monodeck/monodeck-go/pkg/audio"
	"github.com/Monodeck/monodeck-go/pkg/audio/decode"
)

// ErrInvalidCueSlot is returned for a cue slot outside [0, NumCues)
var ErrInvalidCueSlot = errors.New("cue slot out of range")

// LoadResult reports the outcome of an asynchronous load. On failure Err is
// set and the previously loaded track keeps playing untouched.
type LoadResult struct {
	ID       string
	Path     string
	Frames   int64
	Duration float64 // seconds
	Err      error
}

// Config holds deck construction parameters
type Config struct {
	// Engine is the callback engine this deck drives. Required.
	Engine *Engine

	// OnLoad is called on a background goroutine when an asynchronous
	// load completes or fails. Optional.
	OnLoad func(LoadResult)
}

// Deck is the non-real-time control surface of a single playback deck.
// Methods are safe for concurrent use by multiple control goroutines: the
// facade serializes them so the engine's queue sees a single producer.
// None of them block on the audio callback.
type Deck struct {
	engine *Engine
	onLoad func(LoadResult)

	mu       sync.Mutex
	loaded   *audio.TrackBuffer
	loadSeq  uint64
	retiring []retiree
}

// retiree is an old track buffer waiting for the engine to move past it
type retiree struct {
	buf   *audio.TrackBuffer
	epoch uint64 // engine epoch at which buf is no longer referenced
}

// New creates a deck over the given engine
func New(cfg Config) *Deck {
	return &Deck{
		engine: cfg.Engine,
		onLoad: cfg.OnLoad,
	}
}

// Engine returns the underlying callback engine
func (d *Deck) Engine() *Engine {
	return d.engine
}

// Load decodes path in the background and hands the finished buffer to the
// engine. It returns a load ID immediately; completion or failure arrives
// via the OnLoad callback. A failed load leaves current playback untouched.
func (d *Deck) Load(path string) string {
	id := uuid.New().String()

	go func() {
		buf, err := decode.DecodeConformed(path, d.engine.SampleRate())
		if err != nil {
			d.report(LoadResult{ID: id, Path: path, Err: err})
			return
		}

		if err := d.LoadBuffer(buf); err != nil {
			d.report(LoadResult{ID: id, Path: path, Err: err})
			return
		}

		d.report(LoadResult{
			ID:       id,
			Path:     path,
			Frames:   buf.Frames(),
			Duration: buf.Duration().Seconds(),
		})
	}()

	return id
}

// LoadBuffer enqueues an already-decoded buffer, which must be conformed to
// the engine's sample rate and channel count.
func (d *Deck) LoadBuffer(buf *audio.TrackBuffer) error {
	if buf != nil && (buf.Channels != d.engine.Channels() || buf.SampleRate != d.engine.SampleRate()) {
		return fmt.Errorf("buffer format %d Hz/%dch does not match engine %d Hz/%dch",
			buf.SampleRate, buf.Channels, d.engine.SampleRate(), d.engine.Channels())
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.engine.Enqueue(Command{Type: CommandLoadTrack, Track: buf}); err != nil {
		return err
	}

	d.loadSeq++
	if d.loaded != nil {
		// The old buffer is out of the callback's hands once the engine
		// epoch reaches this load's sequence number.
		d.retiring = append(d.retiring, retiree{buf: d.loaded, epoch: d.loadSeq})
	}
	d.loaded = buf
	return nil
}

// enqueue serializes queue pushes across control goroutines. The engine's
// ring assumes a single producer; the facade provides it.
func (d *Deck) enqueue(cmd Command) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine.Enqueue(cmd)
}

// Play enqueues a play command
func (d *Deck) Play() error {
	return d.enqueue(Command{Type: CommandPlay})
}

// Pause enqueues a pause command
func (d *Deck) Pause() error {
	return d.enqueue(Command{Type: CommandPause})
}

// Seek enqueues a jump to the given frame; out-of-range targets are clamped
// by the engine rather than rejected.
func (d *Deck) Seek(frame int64) error {
	return d.enqueue(Command{Type: CommandSeekTo, Frame: frame})
}

// SeekSeconds enqueues a jump to the given time offset
func (d *Deck) SeekSeconds(seconds float64) error {
	return d.Seek(int64(seconds * float64(d.engine.SampleRate())))
}

// SetCue captures the engine's position at drain time into slot
func (d *Deck) SetCue(slot int) error {
	if !validSlot(slot) {
		return fmt.Errorf("%w: %d (valid: 0-%d)", ErrInvalidCueSlot, slot, NumCues-1)
	}
	return d.enqueue(Command{Type: CommandSetCue, Slot: slot})
}

// JumpToCue seeks to the position stored in slot; a no-op if the slot is unset
func (d *Deck) JumpToCue(slot int) error {
	if !validSlot(slot) {
		return fmt.Errorf("%w: %d (valid: 0-%d)", ErrInvalidCueSlot, slot, NumCues-1)
	}
	return d.enqueue(Command{Type: CommandJumpToCue, Slot: slot})
}

// ClearCue unsets slot
func (d *Deck) ClearCue(slot int) error {
	if !validSlot(slot) {
		return fmt.Errorf("%w: %d (valid: 0-%d)", ErrInvalidCueSlot, slot, NumCues-1)
	}
	return d.enqueue(Command{Type: CommandClearCue, Slot: slot})
}

// Snapshot returns the latest published engine state and releases any
// retired track buffers the engine has confirmed moving past.
func (d *Deck) Snapshot() Snapshot {
	s := d.engine.Snapshot()
	d.release(s.TrackEpoch)
	return s
}

// release drops references to retired buffers whose successor load the
// engine has already applied; the garbage collector does the actual freeing.
func (d *Deck) release(epoch uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.retiring[:0]
	for _, r := range d.retiring {
		if epoch < r.epoch {
			kept = append(kept, r)
		}
	}
	d.retiring = kept
}

// report delivers a load result to the configured callback
func (d *Deck) report(res LoadResult) {
	if d.onLoad != nil {
		d.onLoad(res)
	}
}
