// Package tilt measures the spectral balance of an audio signal: the energy
// ratio between the bands below and above a split frequency, in dB. It backs
// the noise-color verification tests and the offline analyze command.
package tilt

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultFFTSize = 2048
	defaultOverlap = 0.5

	eps = 1e-12
)

type config struct {
	fftSize int
	overlap float64
}

// Option configures the analyzer.
type Option func(*config)

// WithFFTSize sets the analysis FFT size. Accepted values are powers of two
// between 256 and 8192; anything else keeps the default of 2048.
func WithFFTSize(n int) Option {
	return func(cfg *config) {
		switch n {
		case 256, 512, 1024, 2048, 4096, 8192:
			cfg.fftSize = n
		}
	}
}

// WithOverlap sets the analysis frame overlap fraction, clamped to [0, 0.95].
func WithOverlap(frac float64) Option {
	return func(cfg *config) {
		if math.IsNaN(frac) {
			return
		}
		cfg.overlap = math.Min(math.Max(frac, 0), 0.95)
	}
}

// BandBalanceDB returns 10*log10(lowEnergy/highEnergy) for the Welch-averaged
// power spectrum of samples, split at splitHz. Positive values mean the
// signal is bass-heavy; broadband white noise at a 500 Hz split comes out
// strongly negative because most of the band lies above the split.
func BandBalanceDB(samples []float64, sampleRate, splitHz float64, opts ...Option) (float64, error) {
	cfg := config{fftSize: defaultFFTSize, overlap: defaultOverlap}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("tilt: sample rate must be > 0: %f", sampleRate)
	}
	nyquist := sampleRate / 2
	if splitHz <= 0 || splitHz >= nyquist || math.IsNaN(splitHz) {
		return 0, fmt.Errorf("tilt: split frequency %f outside (0, %f)", splitHz, nyquist)
	}
	if len(samples) < cfg.fftSize {
		return 0, fmt.Errorf("tilt: need at least %d samples, got %d", cfg.fftSize, len(samples))
	}

	plan, err := algofft.NewPlan64(cfg.fftSize)
	if err != nil {
		return 0, fmt.Errorf("tilt: fft plan: %w", err)
	}

	hop := int(math.Round(float64(cfg.fftSize) * (1 - cfg.overlap)))
	if hop < 1 {
		hop = 1
	}

	win := hannWindow(cfg.fftSize)

	bins := cfg.fftSize/2 + 1
	var (
		frame = make([]float64, cfg.fftSize)
		in    = make([]complex128, cfg.fftSize)
		out   = make([]complex128, cfg.fftSize)
		re    = make([]float64, bins)
		im    = make([]float64, bins)
		pow   = make([]float64, bins)
		acc   = make([]float64, bins)
	)

	for start := 0; start+cfg.fftSize <= len(samples); start += hop {
		copy(frame, samples[start:start+cfg.fftSize])
		vecmath.MulBlockInPlace(frame, win)

		for i, s := range frame {
			in[i] = complex(s, 0)
		}
		if err := plan.Forward(out, in); err != nil {
			return 0, fmt.Errorf("tilt: fft: %w", err)
		}

		for k := 0; k < bins; k++ {
			re[k] = real(out[k])
			im[k] = imag(out[k])
		}
		vecmath.Power(pow, re, im)
		for k := 0; k < bins; k++ {
			acc[k] += pow[k]
		}
	}

	binHz := sampleRate / float64(cfg.fftSize)
	low, high := 0.0, 0.0
	for k := 1; k < bins; k++ { // skip the DC bin
		if float64(k)*binHz <= splitHz {
			low += acc[k]
		} else {
			high += acc[k]
		}
	}

	return 10 * math.Log10((low+eps)/(high+eps)), nil
}

// hannWindow returns a periodic Hann window of length n.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return w
}
