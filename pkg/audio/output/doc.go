// ABOUTME: Package doc for the audio output backends
// ABOUTME: Documents the pull-based Output interface and backend selection
/*
Package output provides audio playback backends behind a small pull-based
interface. A backend opens a device and repeatedly invokes the supplied
RenderFunc from its playback thread; the renderer fills each block with
interleaved float32 samples which the backend converts to the device format.

Two backends are available:

  - "malgo" (default): miniaudio via gen2brain/malgo, a true device
    callback with block-sized period configuration.
  - "oto": ebitengine/oto, which pulls audio through an io.Reader bridge.

Backends are selected by name:

	out, err := output.New("malgo")
	if err != nil {
		log.Fatal(err)
	}
	err = out.Open(48000, 2, 256, engine.Render)
	defer out.Close()

The RenderFunc must follow real-time discipline: it is called from the
audio thread and must not block.
*/
package output
