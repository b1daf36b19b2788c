// ABOUTME: Tests for file decoding and format conforming
// ABOUTME: Round-trips generated WAV files and checks dispatch errors
package decode

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Monodeck/monodeck-go/pkg/audio"
)

// writeWAV writes 16-bit PCM data to a temporary WAV file
func writeWAV(t *testing.T, sampleRate, channels int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create wav file: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("failed to write wav data: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("failed to close encoder: %v", err)
	}

	return path
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	_, err := Decode("track.ogg")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecodeMissingFile(t *testing.T) {
	if _, err := Decode("does-not-exist.wav"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecodeWAVStereo(t *testing.T) {
	// 4 stereo frames of recognizable 16-bit values
	data := []int{1000, -1000, 2000, -2000, 3000, -3000, 4000, -4000}
	path := writeWAV(t, 48000, 2, data)

	buf, err := Decode(path)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if buf.SampleRate != 48000 {
		t.Errorf("expected 48000 Hz, got %d", buf.SampleRate)
	}
	if buf.Channels != 2 {
		t.Errorf("expected 2 channels, got %d", buf.Channels)
	}
	if buf.Frames() != 4 {
		t.Errorf("expected 4 frames, got %d", buf.Frames())
	}

	for i, v := range data {
		expected := float32(v) / 32768.0
		if math.Abs(float64(buf.Samples[i]-expected)) > 1e-6 {
			t.Errorf("sample %d: expected %f, got %f", i, expected, buf.Samples[i])
		}
	}
}

func TestDecodeConformedMonoUpmix(t *testing.T) {
	data := []int{8192, -8192, 16384}
	path := writeWAV(t, 48000, 1, data)

	buf, err := DecodeConformed(path, 48000)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if buf.Channels != 2 {
		t.Fatalf("expected stereo output, got %d channels", buf.Channels)
	}
	if buf.Frames() != 3 {
		t.Fatalf("expected 3 frames, got %d", buf.Frames())
	}

	// Each mono sample duplicated to both channels
	for i := int64(0); i < buf.Frames(); i++ {
		left := buf.Samples[i*2]
		right := buf.Samples[i*2+1]
		if left != right {
			t.Errorf("frame %d: expected identical channels, got %f / %f", i, left, right)
		}
	}
}

func TestDecodeConformedResamples(t *testing.T) {
	data := make([]int, 441*2)
	path := writeWAV(t, 44100, 2, data)

	buf, err := DecodeConformed(path, 48000)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if buf.SampleRate != 48000 {
		t.Errorf("expected 48000 Hz after conform, got %d", buf.SampleRate)
	}

	// 441 frames at 44.1k is 10ms, so ~480 frames at 48k
	if buf.Frames() < 470 || buf.Frames() > 481 {
		t.Errorf("expected ~480 frames, got %d", buf.Frames())
	}
}

func TestConformPassthrough(t *testing.T) {
	in := &audio.TrackBuffer{
		Samples:    []float32{0.1, 0.2, 0.3, 0.4},
		SampleRate: 48000,
		Channels:   2,
	}

	out := Conform(in, 48000)
	if out != in {
		t.Error("expected conforming an already-conformed buffer to return it unchanged")
	}
}

func TestConformDropsExtraChannels(t *testing.T) {
	// Two 4-channel frames; channels 3 and 4 must be dropped
	in := &audio.TrackBuffer{
		Samples:    []float32{0.1, 0.2, 0.7, 0.8, 0.3, 0.4, 0.9, 1.0},
		SampleRate: 48000,
		Channels:   4,
	}

	out := Conform(in, 48000)
	if out.Channels != 2 {
		t.Fatalf("expected 2 channels, got %d", out.Channels)
	}
	want := []float32{0.1, 0.2, 0.3, 0.4}
	for i := range want {
		if out.Samples[i] != want[i] {
			t.Errorf("sample %d: expected %f, got %f", i, want[i], out.Samples[i])
		}
	}
}
