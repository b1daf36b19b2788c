// ABOUTME: Three-band EQ isolator stage with Linkwitz-Riley crossovers
// ABOUTME: Low/mid/high band gains in dB, adjustable from the control thread
package dsp

import (
	"fmt"

	"github.com/Monodeck/monodeck-go/pkg/audio"
)

const (
	// DefaultLowCrossoverHz splits low from mid
	DefaultLowCrossoverHz = 250.0

	// DefaultHighCrossoverHz splits mid from high
	DefaultHighCrossoverHz = 2500.0
)

// Isolator is a 3-band isolator:
//   - Low  (< low crossover):  LR4 low-pass
//   - Mid  (between crossovers): LR4 high-pass then LR4 low-pass
//   - High (> high crossover): LR4 high-pass
//
// Band gains are in dB; at or below -80 dB a band is killed outright.
// Each band keeps separate filter state, and per-block scratch buffers are
// allocated once at construction so Process stays allocation-free.
type Isolator struct {
	channels  int
	maxFrames int

	lpLow  *lr4
	hpMid  *lr4
	lpMid  *lr4
	hpHigh *lr4

	lowGain  atomicGain
	midGain  atomicGain
	highGain atomicGain

	low  []float32
	mid  []float32
	high []float32
}

// NewIsolator creates an isolator with the default 250 Hz / 2.5 kHz
// crossovers. maxFrames bounds the block size Process will see in one call;
// larger blocks are filtered in maxFrames-sized chunks.
func NewIsolator(sampleRate, channels, maxFrames int) *Isolator {
	iso, err := NewIsolatorCrossovers(sampleRate, channels, maxFrames,
		DefaultLowCrossoverHz, DefaultHighCrossoverHz)
	if err != nil {
		// Defaults are valid for every supported sample rate
		panic(err)
	}
	return iso
}

// NewIsolatorCrossovers creates an isolator with explicit crossover
// frequencies, which must satisfy 0 < low < high < 0.45 * sampleRate.
func NewIsolatorCrossovers(sampleRate, channels, maxFrames int, lowCut, highCut float64) (*Isolator, error) {
	if !(0 < lowCut && lowCut < highCut && highCut < float64(sampleRate)*0.45) {
		return nil, fmt.Errorf("invalid crossovers %.0f/%.0f Hz for %d Hz sample rate", lowCut, highCut, sampleRate)
	}

	iso := &Isolator{
		channels:  channels,
		maxFrames: maxFrames,
		lpLow:     newLR4Lowpass(lowCut, sampleRate, channels),
		hpMid:     newLR4Highpass(lowCut, sampleRate, channels),
		lpMid:     newLR4Lowpass(highCut, sampleRate, channels),
		hpHigh:    newLR4Highpass(highCut, sampleRate, channels),
		low:       make([]float32, maxFrames*channels),
		mid:       make([]float32, maxFrames*channels),
		high:      make([]float32, maxFrames*channels),
	}
	iso.SetGainsDB(0, 0, 0)
	return iso, nil
}

// SetGainsDB sets the per-band gains in dB
func (iso *Isolator) SetGainsDB(low, mid, high float64) {
	iso.lowGain.store(audio.DBToLinear(low))
	iso.midGain.store(audio.DBToLinear(mid))
	iso.highGain.store(audio.DBToLinear(high))
}

// Gains returns the current per-band linear gains
func (iso *Isolator) Gains() (low, mid, high float64) {
	return iso.lowGain.load(), iso.midGain.load(), iso.highGain.load()
}

// Reset clears all filter state
func (iso *Isolator) Reset() {
	iso.lpLow.reset()
	iso.hpMid.reset()
	iso.lpMid.reset()
	iso.hpHigh.reset()
}

// Process splits the block into bands, applies band gains, and sums back
// into buf in place.
func (iso *Isolator) Process(buf []float32, frames int) {
	for frames > 0 {
		chunk := frames
		if chunk > iso.maxFrames {
			chunk = iso.maxFrames
		}
		iso.processChunk(buf[:chunk*iso.channels], chunk)
		buf = buf[chunk*iso.channels:]
		frames -= chunk
	}
}

func (iso *Isolator) processChunk(buf []float32, frames int) {
	n := frames * iso.channels

	iso.lpLow.processInto(iso.low[:n], buf, frames)
	iso.hpMid.processInto(iso.mid[:n], buf, frames)
	iso.lpMid.process(iso.mid[:n], frames)
	iso.hpHigh.processInto(iso.high[:n], buf, frames)

	gl := float32(iso.lowGain.load())
	gm := float32(iso.midGain.load())
	gh := float32(iso.highGain.load())

	for i := 0; i < n; i++ {
		buf[i] = gl*iso.low[i] + gm*iso.mid[i] + gh*iso.high[i]
	}
}
