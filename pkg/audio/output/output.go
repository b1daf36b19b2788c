// ABOUTME: Audio output interface definition
// ABOUTME: Backends drive a render callback that pulls blocks from the engine
package output

import "fmt"

// RenderFunc fills out with frames * channels interleaved float32 samples.
// It is invoked on the output backend's audio thread and must follow the
// real-time rules: no blocking, no allocation.
type RenderFunc func(out []float32, frames int)

// Output represents an audio output device that pulls audio from a renderer
type Output interface {
	// Open initializes the device and starts pulling blocks of about
	// blockFrames frames from render
	Open(sampleRate, channels, blockFrames int, render RenderFunc) error

	// Close stops the device and releases its resources
	Close() error
}

// New creates an output backend by name: "malgo" (miniaudio, true device
// callback) or "oto".
func New(backend string) (Output, error) {
	switch backend {
	case "malgo":
		return NewMalgo(), nil
	case "oto":
		return NewOto(), nil
	default:
		return nil, fmt.Errorf("unknown output backend: %s (supported: malgo, oto)", backend)
	}
}
