package playback

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-noise/dsp/core"
	"github.com/cwbudde/algo-noise/synth"
)

const bytesPerSample = 4 // float32 little-endian

// streamReader adapts a synth.Engine to the io.Reader contract the output
// device pulls from: interleaved float32 LE frames, the mono engine sample
// replicated across every channel.
//
// Read runs on the device's goroutine (the audio domain). It takes no locks
// and, after the first call sized the scratch buffer, performs no
// allocations. While the controller is stopped it emits silence so the
// paused device can drain without artifacts.
type streamReader struct {
	engine   *synth.Engine
	channels int
	running  atomic.Bool

	mono []float64
}

func newStreamReader(engine *synth.Engine, channels int) *streamReader {
	if channels < 1 {
		channels = 1
	}
	return &streamReader{
		engine:   engine,
		channels: channels,
		mono:     make([]float64, engine.Config().BlockSize),
	}
}

func (r *streamReader) setRunning(running bool) {
	r.running.Store(running)
}

// Read fills p with rendered audio. It always satisfies the full request:
// the device must never observe a short read on a healthy stream.
func (r *streamReader) Read(p []byte) (int, error) {
	frameBytes := bytesPerSample * r.channels
	frames := len(p) / frameBytes

	if !r.running.Load() || frames == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	r.mono = core.EnsureLen(r.mono, frames)
	r.engine.RenderBlock(r.mono)

	for i, s := range r.mono {
		bits := math.Float32bits(float32(s))
		off := i * frameBytes
		for c := 0; c < r.channels; c++ {
			binary.LittleEndian.PutUint32(p[off+c*bytesPerSample:], bits)
		}
	}

	// Zero any trailing bytes of a partial frame.
	for i := frames * frameBytes; i < len(p); i++ {
		p[i] = 0
	}

	return len(p), nil
}
