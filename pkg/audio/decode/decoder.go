// ABOUTME: File decoding entry point with format dispatch
// ABOUTME: Decodes MP3, FLAC, and WAV files to float32 track buffers
package decode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Monodeck/monodeck-go/pkg/audio"
	"github.com/Monodeck/monodeck-go/pkg/audio/resample"
)

// ErrUnsupportedFormat indicates the file extension maps to no known decoder
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decode decodes an audio file to a TrackBuffer at its native sample rate
// and channel count. The format is chosen by file extension.
func Decode(path string) (*audio.TrackBuffer, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".mp3":
		return decodeMP3(path)
	case ".flac":
		return decodeFLAC(path)
	case ".wav", ".wave":
		return decodeWAV(path)
	default:
		return nil, fmt.Errorf("%w: %s (supported: .mp3, .flac, .wav)", ErrUnsupportedFormat, ext)
	}
}

// DecodeConformed decodes an audio file and conforms it to stereo at the
// given sample rate, the shape the deck engine consumes.
func DecodeConformed(path string, sampleRate int) (*audio.TrackBuffer, error) {
	buf, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return Conform(buf, sampleRate), nil
}

// Conform returns a stereo buffer at the target sample rate. Mono input is
// duplicated to both channels; more than two channels keep the first two.
// Buffers already in the target shape are returned as-is.
func Conform(buf *audio.TrackBuffer, sampleRate int) *audio.TrackBuffer {
	out := buf

	if out.Channels != audio.DefaultChannels {
		out = toStereo(out)
	}

	if out.SampleRate != sampleRate {
		out = &audio.TrackBuffer{
			Samples:    resample.Apply(out.Samples, out.SampleRate, sampleRate, out.Channels),
			SampleRate: sampleRate,
			Channels:   out.Channels,
		}
	}

	return out
}

// toStereo converts a buffer of any channel count to two channels
func toStereo(buf *audio.TrackBuffer) *audio.TrackBuffer {
	frames := buf.Frames()
	samples := make([]float32, frames*audio.DefaultChannels)

	switch {
	case buf.Channels == 1:
		for i := int64(0); i < frames; i++ {
			s := buf.Samples[i]
			samples[i*2] = s
			samples[i*2+1] = s
		}
	default:
		// Keep the first two channels
		for i := int64(0); i < frames; i++ {
			base := i * int64(buf.Channels)
			samples[i*2] = buf.Samples[base]
			samples[i*2+1] = buf.Samples[base+1]
		}
	}

	return &audio.TrackBuffer{
		Samples:    samples,
		SampleRate: buf.SampleRate,
		Channels:   audio.DefaultChannels,
	}
}
