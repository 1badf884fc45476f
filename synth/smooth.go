package synth

import "math"

// paramSmoother is a one-pole smoother that eases a gain value toward its
// target over a short window, so parameter jumps never produce zipper noise
// or clicks in the output.
type paramSmoother struct {
	current float64
	target  float64
	coeff   float64
}

// newParamSmoother derives the per-sample smoothing coefficient from a time
// constant in seconds at the given sample rate.
func newParamSmoother(timeSeconds, sampleRate float64) paramSmoother {
	if timeSeconds <= 0 || sampleRate <= 0 {
		// Degenerate configuration: follow the target immediately.
		return paramSmoother{coeff: 1}
	}
	return paramSmoother{
		coeff: 1 - math.Exp(-1/(timeSeconds*sampleRate)),
	}
}

func (s *paramSmoother) setTarget(v float64) {
	s.target = v
}

// snap jumps to v without smoothing. Used on construction and explicit reset.
func (s *paramSmoother) snap(v float64) {
	s.current = v
	s.target = v
}

// next advances the smoother one sample and returns the new value.
func (s *paramSmoother) next() float64 {
	s.current += (s.target - s.current) * s.coeff
	return s.current
}
