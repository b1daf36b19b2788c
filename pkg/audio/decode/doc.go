// ABOUTME: Audio decoding package supporting multiple codecs
// ABOUTME: Provides whole-file decoding of MP3, FLAC, and WAV to PCM
// Package decode provides whole-file audio decoding to float32 PCM.
//
// Decoding runs on the control side, fully ahead of playback: the engine is
// only ever handed a finished TrackBuffer. Supported formats:
//   - MP3: hajimehoshi/go-mp3
//   - FLAC: mewkiz/flac
//   - WAV: go-audio/wav
//
// DecodeConformed additionally conforms the result to stereo at the engine
// sample rate, which is what the deck expects.
//
// Example:
//
//	buf, err := decode.DecodeConformed("track.mp3", audio.DefaultSampleRate)
//	if err != nil {
//	    log.Fatal(err)
//	}
package decode
