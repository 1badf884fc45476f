package synth

import (
	"math"

	"github.com/cwbudde/algo-noise/dsp/core"
	"github.com/cwbudde/algo-noise/dsp/filter/biquad"
	"github.com/cwbudde/algo-noise/dsp/filter/design"
)

// Filter stage design constants, tuned by ear rather than derived from an
// acoustic model.
const (
	bassCornerHz     = 150.0
	bassGainSpanDB   = 24.0
	bassGainOffsetDB = -12.0

	midGainDB       = 6.0
	midBandwidthOct = 1.5
	midFreqSpanHz   = 1000.0
	midFreqOffsetHz = 200.0

	defaultSmoothingSeconds = 0.02
)

// BassGainDB maps spectral tilt to the bass band gain in dB
// (tilt*24 - 12; about -7.2 dB to +7.2 dB over the working range).
func BassGainDB(tilt float64) float64 {
	return tilt*bassGainSpanDB + bassGainOffsetDB
}

// MidFrequencyHz maps pitch shift to the mid band center frequency in Hz
// (pitch*1000 + 200; 400 Hz to 1 kHz over the working range).
func MidFrequencyHz(pitch float64) float64 {
	return pitch*midFreqSpanHz + midFreqOffsetHz
}

// FilterStage shapes raw noise through two parallel-summed biquad bands: a
// fixed 150 Hz low-pass weighted by a tilt-dependent gain, and a 1.5-octave
// band-pass whose center follows the pitch parameter at a fixed +6 dB boost.
//
// Band gains move through one-pole smoothers and the band-pass retune
// preserves delay-line state, so parameter updates never click. Delay memory
// persists across updates and is cleared only by Reset.
//
// A FilterStage is owned by the audio domain and is not safe for concurrent
// use.
type FilterStage struct {
	sampleRate float64

	bass *biquad.Chain
	mid  *biquad.Chain

	// Single-element scratch slices reused on retune so Update never
	// allocates.
	bassCoeffs []biquad.Coefficients
	midCoeffs  []biquad.Coefficients

	bassGain   paramSmoother
	midGainLin float64
	midFreqHz  float64
}

// FilterStageOption configures a FilterStage.
type FilterStageOption func(*FilterStage)

// WithSmoothingTime sets the gain smoothing time constant in seconds.
// Values <= 0 disable smoothing.
func WithSmoothingTime(seconds float64) FilterStageOption {
	return func(f *FilterStage) {
		f.bassGain = newParamSmoother(seconds, f.sampleRate)
	}
}

// NewFilterStage creates a filter stage tuned for the given initial
// parameters.
func NewFilterStage(sampleRate float64, initial Parameters, opts ...FilterStageOption) *FilterStage {
	initial = initial.Clamped()

	f := &FilterStage{
		sampleRate: sampleRate,
		bassCoeffs: make([]biquad.Coefficients, 1),
		midCoeffs:  make([]biquad.Coefficients, 1),
		midGainLin: core.DBToLinear(midGainDB),
		midFreqHz:  MidFrequencyHz(initial.PitchShift),
	}
	f.bassGain = newParamSmoother(defaultSmoothingSeconds, sampleRate)

	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	f.bassCoeffs[0] = design.Lowpass(bassCornerHz, 1/math.Sqrt2, sampleRate)
	f.bass = biquad.NewChain(f.bassCoeffs)
	f.midCoeffs[0] = design.BandpassOctaves(f.midFreqHz, midBandwidthOct, sampleRate)
	f.mid = biquad.NewChain(f.midCoeffs)

	f.bassGain.snap(core.DBToLinear(BassGainDB(initial.SpectralTilt)))

	return f
}

// Update retunes the stage for a new parameter snapshot. The bass gain eases
// toward its new value; the band-pass is re-centered with its state
// preserved. Called once per rendered block by the audio domain.
func (f *FilterStage) Update(p Parameters) {
	p = p.Clamped()

	f.bassGain.setTarget(core.DBToLinear(BassGainDB(p.SpectralTilt)))

	freq := MidFrequencyHz(p.PitchShift)
	if freq != f.midFreqHz {
		f.midCoeffs[0] = design.BandpassOctaves(freq, midBandwidthOct, f.sampleRate)
		f.mid.UpdateCoefficients(f.midCoeffs, 1)
		f.midFreqHz = freq
	}
}

// ProcessBlock filters buf in place. Zero-alloc, lock-free, bounded-time.
// Non-finite samples are replaced by zero and the band state cleared; a NaN
// must never reach the output device.
func (f *FilterStage) ProcessBlock(buf []float64) {
	for i, x := range buf {
		b := f.bass.ProcessSample(x)
		m := f.mid.ProcessSample(x)

		y := core.FlushDenormals(b*f.bassGain.next() + m*f.midGainLin)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			f.bass.Reset()
			f.mid.Reset()
			y = 0
		}

		buf[i] = y
	}
}

// Reset clears all delay memory and snaps the gain smoother to its target.
// Only an explicit engine restart calls this; ordinary parameter updates
// keep the filter state.
func (f *FilterStage) Reset() {
	f.bass.Reset()
	f.mid.Reset()
	f.bassGain.snap(f.bassGain.target)
}

// MidFrequency returns the currently applied band-pass center in Hz.
func (f *FilterStage) MidFrequency() float64 {
	return f.midFreqHz
}
