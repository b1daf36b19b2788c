// ABOUTME: Oto-based audio output using a pull-style io.Reader bridge
// ABOUTME: Oto's player reads S16LE bytes that the reader renders on demand
package output

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/Monodeck/monodeck-go/pkg/audio"
)

// Oto output implementation using the ebitengine/oto library. Oto pulls
// audio through an io.Reader rather than a callback, so the renderer is
// wrapped in a renderReader that produces block-sized chunks on demand.
type Oto struct {
	mu sync.Mutex

	otoCtx *oto.Context
	player *oto.Player
	ready  bool
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	return &Oto{}
}

// Open initializes the oto context and starts a player over the renderer
func (o *Oto) Open(sampleRate, channels, blockFrames int, render RenderFunc) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		return fmt.Errorf("output already open")
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Duration(blockFrames) * time.Second / time.Duration(sampleRate) * 4,
	}

	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	reader := newRenderReader(render, channels, blockFrames)
	player := otoCtx.NewPlayer(reader)
	player.Play()

	o.otoCtx = otoCtx
	o.player = player
	o.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels, %d-frame blocks (oto)",
		sampleRate, channels, blockFrames)

	return nil
}

// Close stops playback and releases the player
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		if err := o.player.Close(); err != nil {
			log.Printf("Warning: oto player close error: %v", err)
		}
		o.player = nil
		o.ready = false
	}
	// oto contexts cannot be uninitialized; the context is left for reuse
	return nil
}

// renderReader adapts a RenderFunc to io.Reader, producing interleaved
// signed 16-bit little-endian samples in block-sized chunks.
type renderReader struct {
	render      RenderFunc
	channels    int
	blockFrames int
	scratch     []float32
	buf         []byte
	off         int
}

func newRenderReader(render RenderFunc, channels, blockFrames int) *renderReader {
	return &renderReader{
		render:      render,
		channels:    channels,
		blockFrames: blockFrames,
		scratch:     make([]float32, blockFrames*channels),
		buf:         make([]byte, blockFrames*channels*2),
		off:         blockFrames * channels * 2,
	}
}

// Read fills p with rendered audio. Leftover bytes from a block that did
// not fit the previous Read are flushed before rendering the next block.
func (r *renderReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if r.off >= len(r.buf) {
		n := r.blockFrames * r.channels
		r.render(r.scratch, r.blockFrames)

		for i := 0; i < n; i++ {
			s := audio.SampleToInt16(r.scratch[i])
			r.buf[i*2] = byte(s)
			r.buf[i*2+1] = byte(s >> 8)
		}
		r.off = 0
	}

	copied := copy(p, r.buf[r.off:])
	r.off += copied
	return copied, nil
}
