// ABOUTME: DSP stage and chain definitions for the playback signal path
// ABOUTME: Stages process interleaved float32 blocks in place without allocating
package dsp

import (
	"math"
	"sync/atomic"
)

// Stage processes one block of interleaved float32 samples in place.
// Process runs on the audio callback and must not block or allocate;
// control-side parameter changes go through atomics on the stage itself.
type Stage interface {
	Process(buf []float32, frames int)
}

// Chain is an ordered sequence of stages applied in place. The ordering is
// fixed at construction; an empty or nil chain is the identity transform.
type Chain struct {
	stages []Stage
}

// NewChain creates a chain from the given stages
func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages}
}

// Process runs every stage over the block in order
func (c *Chain) Process(buf []float32, frames int) {
	if c == nil {
		return
	}
	for _, s := range c.stages {
		s.Process(buf, frames)
	}
}

// Len returns the number of stages in the chain
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.stages)
}

// atomicGain holds a float64 gain readable from the callback without locks
type atomicGain struct {
	bits atomic.Uint64
}

func (g *atomicGain) store(v float64) {
	g.bits.Store(math.Float64bits(v))
}

func (g *atomicGain) load() float64 {
	return math.Float64frombits(g.bits.Load())
}
