// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Conforms decoded tracks to the engine sample rate
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling. Decoding uses Apply to conform
// a whole track to the engine rate in one shot.
//
// Example:
//
//	conformed := resample.Apply(samples, 44100, 48000, 2)
package resample
