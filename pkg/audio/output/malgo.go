// ABOUTME: Malgo-based audio output using the miniaudio device callback
// ABOUTME: The device data callback pulls blocks straight from the renderer
package output

import (
	"fmt"
	"log"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/Monodeck/monodeck-go/pkg/audio"
)

// Malgo output implementation using the malgo/miniaudio library. The device
// invokes the data callback on its own real-time thread; the callback pulls
// from the renderer into a scratch buffer allocated once at Open.
type Malgo struct {
	mu sync.Mutex

	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device

	sampleRate  int
	channels    int
	blockFrames int
	render      RenderFunc
	scratch     []float32
	ready       bool
}

// NewMalgo creates a new Malgo output
func NewMalgo() *Malgo {
	return &Malgo{}
}

// Open initializes the playback device and starts the callback loop
func (m *Malgo) Open(sampleRate, channels, blockFrames int, render RenderFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		return fmt.Errorf("output already open")
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	m.malgoCtx = ctx

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = uint32(channels)
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(blockFrames)
	deviceConfig.Alsa.NoMMap = 1

	m.sampleRate = sampleRate
	m.channels = channels
	m.blockFrames = blockFrames
	m.render = render
	m.scratch = make([]float32, blockFrames*channels)

	onSamples := func(pOutputSample, pInputSamples []byte, frameCount uint32) {
		m.dataCallback(pOutputSample, int(frameCount))
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSamples,
	})
	if err != nil {
		m.teardownContext()
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		m.teardownContext()
		return fmt.Errorf("failed to start device: %w", err)
	}

	m.device = device
	m.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels, %d-frame blocks (malgo)",
		sampleRate, channels, blockFrames)

	return nil
}

// dataCallback fills the device buffer from the renderer. The device may
// ask for more frames than the configured block; larger requests are
// rendered in block-sized chunks so the scratch buffer never grows.
func (m *Malgo) dataCallback(pOutput []byte, frames int) {
	offset := 0
	for frames > 0 {
		chunk := frames
		if chunk > m.blockFrames {
			chunk = m.blockFrames
		}

		n := chunk * m.channels
		m.render(m.scratch[:n], chunk)

		for i := 0; i < n; i++ {
			s := audio.SampleToInt16(m.scratch[i])
			pOutput[offset+i*2] = byte(s)
			pOutput[offset+i*2+1] = byte(s >> 8)
		}

		offset += n * 2
		frames -= chunk
	}
}

// Close stops the device and releases malgo resources
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		if err := m.device.Stop(); err != nil {
			log.Printf("Warning: device stop error: %v", err)
		}
		m.device.Uninit()
		m.device = nil
		m.ready = false
	}

	m.teardownContext()
	return nil
}

// teardownContext releases the malgo context (must hold m.mu)
func (m *Malgo) teardownContext() {
	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.Printf("Warning: malgo context uninit error: %v", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
}
