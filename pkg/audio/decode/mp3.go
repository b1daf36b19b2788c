// ABOUTME: MP3 file decoder
// ABOUTME: Decodes a whole MP3 file to a float32 track buffer
package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Monodeck/monodeck-go/pkg/audio"
	mp3 "github.com/hajimehoshi/go-mp3"
)

// decodeMP3 reads a complete MP3 file into a TrackBuffer
func decodeMP3(path string) (*audio.TrackBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	// The decoder emits interleaved 16-bit little-endian stereo
	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	numSamples := len(raw) / 2
	samples := make([]float32, numSamples)
	for i := 0; i < numSamples; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
		samples[i] = audio.SampleFromInt16(sample16)
	}

	return &audio.TrackBuffer{
		Samples:    samples,
		SampleRate: decoder.SampleRate(),
		Channels:   2,
	}, nil
}
