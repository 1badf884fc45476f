package synth

import (
	"sync/atomic"

	"github.com/cwbudde/algo-noise/dsp/core"
)

// Engine ties the pipeline together: it holds the published parameter
// snapshot and renders mono noise blocks through the optional filter stage.
//
// SetControl may be called from any goroutine at gesture rate; RenderBlock
// belongs exclusively to the audio domain. The two never block each other:
// the writer publishes an immutable snapshot with an atomic pointer swap and
// the renderer loads the latest snapshot once per block.
type Engine struct {
	cfg    core.ProcessorConfig
	target atomic.Pointer[Parameters]

	gen   *Generator
	stage *FilterStage // nil when the minimal-fidelity path is selected
}

// engineConfig collects construction options.
type engineConfig struct {
	seed          int64
	seeded        bool
	filterEnabled bool
	smoothingSec  float64
	initial       Parameters
}

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

// WithEngineSeed seeds the noise source for reproducible output.
func WithEngineSeed(seed int64) EngineOption {
	return func(cfg *engineConfig) {
		cfg.seed = seed
		cfg.seeded = true
	}
}

// WithFilterStage enables or disables the two-band filter stage. Disabled,
// the engine ships the raw scaled noise (the minimal-fidelity variant);
// enabled is the default, full-fidelity behavior.
func WithFilterStage(enabled bool) EngineOption {
	return func(cfg *engineConfig) {
		cfg.filterEnabled = enabled
	}
}

// WithEngineSmoothingTime sets the filter gain smoothing time constant in
// seconds.
func WithEngineSmoothingTime(seconds float64) EngineOption {
	return func(cfg *engineConfig) {
		cfg.smoothingSec = seconds
	}
}

// WithInitialControl sets the starting control position, e.g. one restored
// by the UI collaborator from its own persistence.
func WithInitialControl(pos ControlPosition) EngineOption {
	return func(cfg *engineConfig) {
		cfg.initial = MapControl(pos)
	}
}

// NewEngine creates an engine for the given processor configuration.
func NewEngine(cfg core.ProcessorConfig, opts ...EngineOption) *Engine {
	ec := engineConfig{
		filterEnabled: true,
		smoothingSec:  defaultSmoothingSeconds,
		initial:       MapControl(ControlPosition{X: 0.5, Y: 0.5}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&ec)
		}
	}

	e := &Engine{cfg: cfg}

	var genOpts []GeneratorOption
	if ec.seeded {
		genOpts = append(genOpts, WithSeed(ec.seed))
	}
	e.gen = NewGenerator(genOpts...)

	if ec.filterEnabled {
		e.stage = NewFilterStage(cfg.SampleRate, ec.initial,
			WithSmoothingTime(ec.smoothingSec))
	}

	initial := ec.initial
	e.target.Store(&initial)

	return e
}

// Config returns the engine processor configuration.
func (e *Engine) Config() core.ProcessorConfig {
	return e.cfg
}

// SetControl publishes a new parameter snapshot derived from a raw control
// position. Out-of-range and NaN coordinates are clamped. Safe to call from
// any goroutine at high frequency without disturbing the audio domain.
func (e *Engine) SetControl(x, y float64) {
	p := MapControl(ControlPosition{X: x, Y: y})
	e.target.Store(&p)
}

// Parameters returns the most recently published snapshot.
func (e *Engine) Parameters() Parameters {
	return *e.target.Load()
}

// ColorBand returns the noise color region of the current spectral tilt,
// for driving visual feedback.
func (e *Engine) ColorBand() ColorBand {
	return e.Parameters().ColorBand()
}

// FilterEnabled reports whether the filter stage is active.
func (e *Engine) FilterEnabled() bool {
	return e.stage != nil
}

// RenderBlock fills dst with one mono sample per frame. It loads exactly one
// parameter snapshot, so every frame in the block sees a self-consistent
// parameter pair. Lock-free and allocation-free; safe to call from a
// real-time audio callback.
func (e *Engine) RenderBlock(dst []float64) {
	p := *e.target.Load()

	e.gen.Fill(dst, p)

	if e.stage != nil {
		e.stage.Update(p)
		e.stage.ProcessBlock(dst)
	}
}

// Reset clears filter delay memory. Ordinary parameter updates never reset
// state; this is for explicit engine restarts only.
func (e *Engine) Reset() {
	if e.stage != nil {
		e.stage.Reset()
	}
}
