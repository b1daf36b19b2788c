// ABOUTME: Core audio type definitions for the deck engine
// ABOUTME: Defines formats, the decoded track buffer, and sample/gain helpers
package audio

import (
	"math"
	"time"
)

const (
	// DefaultSampleRate is the engine's native rate; decode conforms to it.
	DefaultSampleRate = 48000

	// DefaultChannels is the engine's native channel count (stereo).
	DefaultChannels = 2
)

// KillThresholdDB is the gain in dB at or below which a band is fully muted.
const KillThresholdDB = -80.0

// Format describes a PCM stream format
type Format struct {
	SampleRate int
	Channels   int
}

// TrackBuffer holds a fully decoded track as interleaved float32 PCM.
// It is immutable once handed to the engine; a new load replaces it wholesale.
type TrackBuffer struct {
	Samples    []float32 // interleaved, len = frames * channels
	SampleRate int
	Channels   int
}

// Frames returns the total frame count of the buffer
func (t *TrackBuffer) Frames() int64 {
	if t.Channels == 0 {
		return 0
	}
	return int64(len(t.Samples) / t.Channels)
}

// Duration returns the playback duration of the buffer
func (t *TrackBuffer) Duration() time.Duration {
	if t.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(t.Frames()) / float64(t.SampleRate) * float64(time.Second))
}

// ReadAt copies interleaved samples starting at startFrame into dst and
// returns the number of whole frames copied from the buffer. Any region of
// dst beyond the end of the track is zero-filled, so callers always receive
// exactly len(dst)/Channels frames of output.
func (t *TrackBuffer) ReadAt(startFrame int64, dst []float32) int {
	total := t.Frames()
	wantFrames := len(dst) / t.Channels

	if startFrame < 0 {
		startFrame = 0
	}

	avail := total - startFrame
	if avail < 0 {
		avail = 0
	}

	copyFrames := int64(wantFrames)
	if copyFrames > avail {
		copyFrames = avail
	}

	n := int(copyFrames) * t.Channels
	if n > 0 {
		copy(dst[:n], t.Samples[startFrame*int64(t.Channels):])
	}
	for i := n; i < wantFrames*t.Channels; i++ {
		dst[i] = 0
	}

	return int(copyFrames)
}

// SampleToInt16 converts a float32 sample in [-1, 1] to int16, clamping
func SampleToInt16(sample float32) int16 {
	if sample > 1.0 {
		sample = 1.0
	} else if sample < -1.0 {
		sample = -1.0
	}
	return int16(sample * 32767.0)
}

// SampleFromInt16 converts an int16 sample to float32 in [-1, 1]
func SampleFromInt16(sample int16) float32 {
	return float32(sample) / 32768.0
}

// DBToLinear converts dB to linear gain. At or below the kill threshold
// (-80 dB) the gain is exactly zero.
func DBToLinear(db float64) float64 {
	if db <= KillThresholdDB || math.IsNaN(db) || math.IsInf(db, 0) {
		return 0.0
	}
	return math.Pow(10.0, db/20.0)
}

// LinearToDB converts linear gain to dB
func LinearToDB(gain float64) float64 {
	if gain <= 0 {
		return math.Inf(-1)
	}
	return 20.0 * math.Log10(gain)
}
