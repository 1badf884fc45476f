package synth

import (
	"math"

	"github.com/cwbudde/algo-noise/dsp/core"
)

// Working range for both synthesis parameters. Control input beyond this
// range is clamped, never rejected.
const (
	ParamMin = 0.2
	ParamMax = 0.8
)

// Color band thresholds on SpectralTilt.
const (
	brownPinkThreshold = 0.4
	pinkRedThreshold   = 0.7
)

// ControlPosition is one raw input sample from the control surface,
// nominally in [0,1]x[0,1]. Values outside that range (fast drags across a
// screen edge, NaN from a buggy caller) are tolerated.
type ControlPosition struct {
	X, Y float64
}

// Parameters are the bounded synthesis parameters derived from a control
// position. Both fields always lie in [ParamMin, ParamMax] and are never
// NaN or infinite.
type Parameters struct {
	SpectralTilt float64
	PitchShift   float64
}

// MapControl converts a control position into synthesis parameters. It is
// the single source of truth for the control mapping: pure, deterministic,
// and total over all float inputs.
func MapControl(pos ControlPosition) Parameters {
	return Parameters{
		SpectralTilt: core.Clamp(1-pos.Y, ParamMin, ParamMax),
		PitchShift:   core.Clamp(pos.X, ParamMin, ParamMax),
	}
}

// Clamped returns p with both fields forced into the working range. Engine
// runs every published snapshot through this, so a hand-built Parameters
// value cannot smuggle an out-of-range field into the audio domain.
func (p Parameters) Clamped() Parameters {
	return Parameters{
		SpectralTilt: core.Clamp(p.SpectralTilt, ParamMin, ParamMax),
		PitchShift:   core.Clamp(p.PitchShift, ParamMin, ParamMax),
	}
}

// PitchGainFactor maps the pitch-shift parameter to a linear gain,
// 2^(p-0.5): roughly one octave of brightness range across the parameter
// span, unity at the center.
func PitchGainFactor(p float64) float64 {
	return math.Exp2(p - 0.5)
}

// Scale returns the peak amplitude of the raw generator output for these
// parameters.
func (p Parameters) Scale() float64 {
	return p.SpectralTilt * PitchGainFactor(p.PitchShift)
}

// ColorBand classifies spectral tilt into the named noise colors used for
// visual feedback. It has no effect on synthesis, which is continuous.
type ColorBand int

const (
	Brown ColorBand = iota
	Pink
	Red
)

// String returns the band name.
func (b ColorBand) String() string {
	switch b {
	case Brown:
		return "brown"
	case Pink:
		return "pink"
	case Red:
		return "red"
	default:
		return "unknown"
	}
}

// ColorBand returns the noise color region for the current spectral tilt.
func (p Parameters) ColorBand() ColorBand {
	switch {
	case p.SpectralTilt < brownPinkThreshold:
		return Brown
	case p.SpectralTilt < pinkRedThreshold:
		return Pink
	default:
		return Red
	}
}
