// ABOUTME: Single-deck playback core with a real-time callback engine
// ABOUTME: Command queue in, audio blocks and state snapshots out
// Package deck implements the real-time playback core of a single-deck
// player.
//
// Two execution contexts share the deck:
//   - The audio device's callback thread calls Engine.Render, which drains
//     pending transport commands, produces one block of audio through the
//     DSP chain, and publishes a state snapshot. It never blocks, allocates,
//     or errors into the device path.
//   - The control thread drives a Deck, which validates input, enqueues
//     commands onto a bounded lock-free SPSC ring, decodes tracks in the
//     background, and reads published snapshots.
//
// Commands are applied in enqueue order at the start of a callback, before
// any audio is produced, so a SetCue captures exactly the position that
// will be heard. Track replacement is an atomic reference swap inside the
// drain; the deck holds the old buffer until a snapshot's TrackEpoch shows
// the callback has moved on.
//
// Example:
//
//	engine := deck.NewEngine(deck.EngineConfig{})
//	d := deck.New(deck.Config{Engine: engine})
//	d.Load("track.mp3")
//	d.Play()
package deck
