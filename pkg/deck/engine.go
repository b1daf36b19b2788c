// ABOUTME: Real-time mixer engine driven by the output device callback
// ABOUTME: Drains commands, renders one block from the track, publishes state
package deck

import (
	"errors"

	"github.com/Monodeck/monodeck-go/pkg/audio"
	"github.com/Monodeck/monodeck-go/pkg/dsp"
)

const (
	// DefaultBlockFrames is the device callback period in frames
	DefaultBlockFrames = 256

	// defaultQueueSize bounds the command ring
	defaultQueueSize = 64

	// defaultDrainLimit caps commands applied per callback so drain work
	// stays bounded even when the producer bursts
	defaultDrainLimit = 32
)

// ErrQueueFull is returned when a command cannot be enqueued because the
// engine has not drained the ring yet
var ErrQueueFull = errors.New("command queue full")

// EngineConfig holds engine construction parameters. Zero values pick the
// defaults: 48 kHz stereo, 256-frame blocks, identity chain.
type EngineConfig struct {
	SampleRate  int
	Channels    int
	BlockFrames int
	QueueSize   int
	DrainLimit  int
	Chain       *dsp.Chain
}

// Engine is the callback-driven playback core. Render runs on the audio
// device's real-time thread and must be its only caller; Enqueue and
// Snapshot are the control thread's half of the contract.
//
// Render never blocks, never allocates, and never returns an error into the
// device path: inconsistencies degrade to a silent block and a fault count.
type Engine struct {
	cfg   EngineConfig
	queue *commandQueue
	chain *dsp.Chain

	// Callback-side state, untouched by the control thread
	tr     transport
	cues   cueTable
	track  *audio.TrackBuffer
	epoch  uint64
	faults uint64

	snap snapshotCell
}

// NewEngine creates an engine with the given configuration
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = audio.DefaultSampleRate
	}
	if cfg.Channels == 0 {
		cfg.Channels = audio.DefaultChannels
	}
	if cfg.BlockFrames == 0 {
		cfg.BlockFrames = DefaultBlockFrames
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.DrainLimit == 0 {
		cfg.DrainLimit = defaultDrainLimit
	}

	e := &Engine{
		cfg:   cfg,
		queue: newCommandQueue(cfg.QueueSize),
		chain: cfg.Chain,
	}
	e.cues.reset()
	e.publish()
	return e
}

// SampleRate returns the engine sample rate
func (e *Engine) SampleRate() int { return e.cfg.SampleRate }

// Channels returns the engine channel count
func (e *Engine) Channels() int { return e.cfg.Channels }

// BlockFrames returns the configured callback period in frames
func (e *Engine) BlockFrames() int { return e.cfg.BlockFrames }

// Enqueue submits a command for the next callback drain. It never blocks;
// a full ring returns ErrQueueFull to the caller instead. Control side only.
func (e *Engine) Enqueue(cmd Command) error {
	if !e.queue.push(cmd) {
		return ErrQueueFull
	}
	return nil
}

// Pending reports how many enqueued commands the callback has not yet
// drained. Approximate when the callback is running concurrently.
func (e *Engine) Pending() int {
	return e.queue.pending()
}

// Snapshot returns the most recently published engine state. Non-blocking.
func (e *Engine) Snapshot() Snapshot {
	return e.snap.read()
}

// Render produces one block of interleaved audio into out, which must hold
// frames * Channels() samples. Called by the output device; real-time safe.
func (e *Engine) Render(out []float32, frames int) {
	e.drain()

	n := frames * e.cfg.Channels

	if !e.tr.playing {
		zero(out[:n])
		e.publish()
		return
	}

	if e.track == nil {
		// Play was issued with nothing loaded; stop until a track arrives
		zero(out[:n])
		e.tr.pause()
		e.publish()
		return
	}

	if e.track.Channels != e.cfg.Channels || e.track.SampleRate != e.cfg.SampleRate {
		// Unconformed buffer reached the engine; silence beats glitching
		zero(out[:n])
		e.faults++
		e.publish()
		return
	}

	e.track.ReadAt(e.tr.position, out[:n])
	e.chain.Process(out[:n], frames)
	e.tr.advance(frames)
	e.publish()
}

// drain applies queued commands in enqueue order before any audio is
// produced, so a SetCue always captures the position that will be heard.
func (e *Engine) drain() {
	for i := 0; i < e.cfg.DrainLimit; i++ {
		cmd, ok := e.queue.pop()
		if !ok {
			return
		}
		e.apply(cmd)
	}
}

// apply executes one command against the transport and cue table
func (e *Engine) apply(cmd Command) {
	switch cmd.Type {
	case CommandPlay:
		e.tr.play()

	case CommandPause:
		e.tr.pause()

	case CommandSeekTo:
		e.tr.seekTo(cmd.Frame)

	case CommandSetCue:
		if !validSlot(cmd.Slot) {
			e.faults++
			return
		}
		e.cues.set(cmd.Slot, e.tr.position)

	case CommandJumpToCue:
		if !validSlot(cmd.Slot) {
			e.faults++
			return
		}
		if frame, ok := e.cues.frame(cmd.Slot); ok {
			e.tr.seekTo(frame)
		}

	case CommandClearCue:
		if !validSlot(cmd.Slot) {
			e.faults++
			return
		}
		e.cues.clear(cmd.Slot)

	case CommandLoadTrack:
		e.track = cmd.Track
		if e.track != nil {
			e.tr.load(e.track.Frames())
		} else {
			e.tr.load(0)
		}
		e.cues.reset()
		e.epoch++

	default:
		e.faults++
	}
}

// publish pushes the current state into the snapshot cell
func (e *Engine) publish() {
	s := Snapshot{
		PositionFrames: e.tr.position,
		TotalFrames:    e.tr.total,
		SampleRate:     e.cfg.SampleRate,
		Playing:        e.tr.playing,
		TrackEpoch:     e.epoch,
		Faults:         e.faults,
		Cues:           e.cues.slots,
	}
	e.snap.publish(s)
}

// zero writes silence
func zero(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}
