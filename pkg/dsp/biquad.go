// ABOUTME: RBJ cookbook biquad filters in transposed direct form II
// ABOUTME: Per-channel state over interleaved buffers, designed for small blocks
package dsp

import "math"

// biquadCoeffs holds normalized (a0 == 1) second-order section coefficients
type biquadCoeffs struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// butterworthQ gives a maximally flat 12 dB/oct section
const butterworthQ = 1.0 / math.Sqrt2

// lowpassCoeffs designs an RBJ low-pass section at fc
func lowpassCoeffs(fc float64, sampleRate int) biquadCoeffs {
	w0 := 2.0 * math.Pi * fc / float64(sampleRate)
	cosw0 := math.Cos(w0)
	sinw0 := math.Sin(w0)
	alpha := sinw0 / (2.0 * butterworthQ)

	a0 := 1.0 + alpha
	return biquadCoeffs{
		b0: (1.0 - cosw0) * 0.5 / a0,
		b1: (1.0 - cosw0) / a0,
		b2: (1.0 - cosw0) * 0.5 / a0,
		a1: -2.0 * cosw0 / a0,
		a2: (1.0 - alpha) / a0,
	}
}

// highpassCoeffs designs an RBJ high-pass section at fc
func highpassCoeffs(fc float64, sampleRate int) biquadCoeffs {
	w0 := 2.0 * math.Pi * fc / float64(sampleRate)
	cosw0 := math.Cos(w0)
	sinw0 := math.Sin(w0)
	alpha := sinw0 / (2.0 * butterworthQ)

	a0 := 1.0 + alpha
	return biquadCoeffs{
		b0: (1.0 + cosw0) * 0.5 / a0,
		b1: -(1.0 + cosw0) / a0,
		b2: (1.0 + cosw0) * 0.5 / a0,
		a1: -2.0 * cosw0 / a0,
		a2: (1.0 - alpha) / a0,
	}
}

// biquad is a second-order filter with independent state per channel,
// processing interleaved buffers. Transposed direct form II keeps the state
// small and numerically stable.
type biquad struct {
	c        biquadCoeffs
	channels int
	z1, z2   []float64
}

func newBiquad(c biquadCoeffs, channels int) *biquad {
	return &biquad{
		c:        c,
		channels: channels,
		z1:       make([]float64, channels),
		z2:       make([]float64, channels),
	}
}

func (b *biquad) reset() {
	for ch := 0; ch < b.channels; ch++ {
		b.z1[ch] = 0
		b.z2[ch] = 0
	}
}

// processInto filters src into dst; dst and src may alias
func (b *biquad) processInto(dst, src []float32, frames int) {
	c := b.c
	for ch := 0; ch < b.channels; ch++ {
		z1 := b.z1[ch]
		z2 := b.z2[ch]
		for n := 0; n < frames; n++ {
			i := n*b.channels + ch
			x := float64(src[i])
			y := x*c.b0 + z1
			z1 = x*c.b1 + z2 - c.a1*y
			z2 = x*c.b2 - c.a2*y
			dst[i] = float32(y)
		}
		b.z1[ch] = z1
		b.z2[ch] = z2
	}
}

// process filters the buffer in place
func (b *biquad) process(buf []float32, frames int) {
	b.processInto(buf, buf, frames)
}

// lr4 is a Linkwitz-Riley 24 dB/oct filter, two cascaded Butterworth sections
type lr4 struct {
	s1, s2 *biquad
}

func newLR4Lowpass(fc float64, sampleRate, channels int) *lr4 {
	c := lowpassCoeffs(fc, sampleRate)
	return &lr4{s1: newBiquad(c, channels), s2: newBiquad(c, channels)}
}

func newLR4Highpass(fc float64, sampleRate, channels int) *lr4 {
	c := highpassCoeffs(fc, sampleRate)
	return &lr4{s1: newBiquad(c, channels), s2: newBiquad(c, channels)}
}

func (f *lr4) processInto(dst, src []float32, frames int) {
	f.s1.processInto(dst, src, frames)
	f.s2.process(dst, frames)
}

// process filters the buffer in place
func (f *lr4) process(buf []float32, frames int) {
	f.processInto(buf, buf, frames)
}

func (f *lr4) reset() {
	f.s1.reset()
	f.s2.reset()
}
