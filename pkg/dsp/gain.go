// ABOUTME: Channel fader gain stage
// ABOUTME: Applies a control-thread-adjustable linear gain to the whole block
package dsp

// Gain scales every sample by a linear gain in [0, 1]. The gain is stored
// atomically so the control thread can move the fader while audio runs.
type Gain struct {
	gain atomicGain
}

// NewGain creates a gain stage with the given initial linear gain
func NewGain(gain float64) *Gain {
	g := &Gain{}
	g.Set(gain)
	return g
}

// Set updates the linear gain, clamping to [0, 1]
func (g *Gain) Set(gain float64) {
	if gain < 0 {
		gain = 0
	} else if gain > 1 {
		gain = 1
	}
	g.gain.store(gain)
}

// Value returns the current linear gain
func (g *Gain) Value() float64 {
	return g.gain.load()
}

// Process scales the block in place
func (g *Gain) Process(buf []float32, frames int) {
	gain := float32(g.gain.load())
	if gain == 1.0 {
		return
	}
	for i := range buf {
		buf[i] *= gain
	}
}
