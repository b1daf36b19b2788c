// ABOUTME: Tests for the linear resampler
// ABOUTME: Verifies rate conversion ratios and interpolation behavior
package resample

import (
	"math"
	"testing"
)

func TestResampleSameRate(t *testing.T) {
	input := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}

	out := Apply(input, 48000, 48000, 2)
	if len(out) != len(input) {
		t.Fatalf("expected %d samples, got %d", len(input), len(out))
	}
	for i := range input {
		if out[i] != input[i] {
			t.Errorf("sample %d: expected %f, got %f", i, input[i], out[i])
		}
	}
}

func TestResampleUpsampleLength(t *testing.T) {
	// 100 stereo frames at 44.1k should produce ~108 frames at 48k
	input := make([]float32, 100*2)
	out := Apply(input, 44100, 48000, 2)

	frames := len(out) / 2
	if frames < 105 || frames > 109 {
		t.Errorf("expected ~108 output frames, got %d", frames)
	}
}

func TestResampleDownsampleLength(t *testing.T) {
	input := make([]float32, 480*2)
	out := Apply(input, 48000, 44100, 2)

	frames := len(out) / 2
	if frames < 438 || frames > 441 {
		t.Errorf("expected ~441 output frames, got %d", frames)
	}
}

func TestResampleInterpolatesLinearRamp(t *testing.T) {
	// A linear ramp should survive linear interpolation exactly
	inputFrames := 100
	input := make([]float32, inputFrames)
	for i := range input {
		input[i] = float32(i) / float32(inputFrames)
	}

	r := New(48000, 96000, 1)
	output := make([]float32, r.OutputSamplesNeeded(len(input)))
	n := r.Resample(input, output)

	if n == 0 {
		t.Fatal("no output produced")
	}

	for i := 0; i < n; i++ {
		expected := float32(i) / 2.0 / float32(inputFrames)
		if math.Abs(float64(output[i]-expected)) > 1e-5 {
			t.Fatalf("sample %d: expected %f, got %f", i, expected, output[i])
		}
	}
}

func TestResampleEmptyInput(t *testing.T) {
	r := New(44100, 48000, 2)
	output := make([]float32, 64)
	if n := r.Resample(nil, output); n != 0 {
		t.Errorf("expected 0 samples from empty input, got %d", n)
	}
}

func TestResamplerReset(t *testing.T) {
	r := New(44100, 48000, 1)
	input := make([]float32, 100)
	output := make([]float32, 200)
	r.Resample(input, output)

	r.Reset()
	if r.position != 0 {
		t.Errorf("expected position 0 after reset, got %f", r.position)
	}
}
