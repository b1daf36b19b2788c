// ABOUTME: DSP package providing the playback signal chain
// ABOUTME: In-place, allocation-free stages suitable for the audio callback
// Package dsp provides the deck's signal processing chain.
//
// A Chain is an ordered sequence of Stage instances applied in place over
// each audio block. The set and order of stages is fixed when the chain is
// built; an empty chain is the identity transform, which is the engine's
// default. Stage parameters (fader gain, EQ band gains) are stored in
// atomics so the control thread can adjust them while the callback runs.
//
// Included stages:
//   - Gain: linear channel fader
//   - Isolator: 3-band EQ isolator with Linkwitz-Riley 24 dB/oct crossovers
//   - Clip: hard clamp to [-1, 1] for the chain tail
//
// Example:
//
//	fader := dsp.NewGain(1.0)
//	eq := dsp.NewIsolator(48000, 2, 256)
//	chain := dsp.NewChain(eq, fader, dsp.NewClip())
package dsp
