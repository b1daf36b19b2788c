// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines TrackBuffer, Format and sample/gain conversion functions
// Package audio provides fundamental audio types and utilities for the deck engine.
//
// This package defines core types used throughout the monodeck library:
//   - Format: Describes a PCM stream format (sample rate, channels)
//   - TrackBuffer: A fully decoded track as interleaved float32 PCM with
//     frame-addressable, zero-filling random access
//
// It also provides utilities for converting between sample and gain domains:
//   - float32 ↔ int16 sample conversions (device output is 16-bit)
//   - dB ↔ linear gain conversions with a -80 dB kill threshold
//
// Example:
//
//	buf := &audio.TrackBuffer{
//	    Samples:    pcm,
//	    SampleRate: 48000,
//	    Channels:   2,
//	}
//
//	block := make([]float32, 256*buf.Channels)
//	buf.ReadAt(startFrame, block)
package audio
