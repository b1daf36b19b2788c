// ABOUTME: Hard clip stage for the chain tail
// ABOUTME: Clamps samples to [-1, 1] before they reach the output device
package dsp

// Clip clamps every sample to [-1, 1]. Placed at the tail of a chain so EQ
// boosts and fader sums cannot over-range the device conversion.
type Clip struct{}

// NewClip creates a clip stage
func NewClip() *Clip {
	return &Clip{}
}

// Process clamps the block in place
func (c *Clip) Process(buf []float32, frames int) {
	for i, s := range buf {
		if s > 1.0 {
			buf[i] = 1.0
		} else if s < -1.0 {
			buf[i] = -1.0
		}
	}
}
