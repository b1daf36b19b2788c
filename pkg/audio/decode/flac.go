// ABOUTME: FLAC file decoder
// ABOUTME: Decodes a whole FLAC file to a float32 track buffer
package decode

import (
	"fmt"
	"io"
	"os"

	"github.com/Monodeck/monodeck-go/pkg/audio"
	"github.com/mewkiz/flac"
)

// decodeFLAC reads a complete FLAC file into a TrackBuffer
func decodeFLAC(path string) (*audio.TrackBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FLAC file: %w", err)
	}
	defer f.Close()

	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	bitDepth := int(info.BitsPerSample)
	scale := float32(int64(1) << (bitDepth - 1))

	// NSamples is per channel; zero means unknown, so start empty
	samples := make([]float32, 0, info.NSamples*uint64(channels))

	for {
		frame, err := stream.ParseNext()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("flac frame parse error: %w", err)
		}

		blockSize := int(frame.BlockSize)
		for i := 0; i < blockSize; i++ {
			for ch := 0; ch < channels; ch++ {
				samples = append(samples, float32(frame.Subframes[ch].Samples[i])/scale)
			}
		}
	}

	return &audio.TrackBuffer{
		Samples:    samples,
		SampleRate: int(info.SampleRate),
		Channels:   channels,
	}, nil
}
