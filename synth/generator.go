package synth

import (
	"math/rand"
	"time"
)

// Generator produces uniform broadband noise scaled by a parameter snapshot.
// It owns a private, non-locking random source, so filling a block takes no
// lock and performs no allocation. A Generator is not safe for concurrent
// use; the audio domain is its only caller.
type Generator struct {
	rng *rand.Rand
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSeed sets a deterministic seed for reproducible output. Without it the
// generator seeds from the clock; only uniformity matters, not a particular
// sequence.
func WithSeed(seed int64) GeneratorOption {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// NewGenerator creates a noise generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Fill writes one noise sample per frame into dst:
//
//	uniform(-1,1) * SpectralTilt * PitchGainFactor(PitchShift)
//
// The whole block uses the single snapshot p, so no frame can observe a torn
// parameter pair. Every sample lies within [-p.Scale(), p.Scale()].
func (g *Generator) Fill(dst []float64, p Parameters) {
	scale := p.Scale()
	for i := range dst {
		dst[i] = (g.rng.Float64()*2 - 1) * scale
	}
}
