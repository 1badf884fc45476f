package biquad

import (
	"math"
	"testing"
)

func TestNewChain_Defaults(t *testing.T) {
	c := NewChain([]Coefficients{passthrough(), passthrough()})
	if c.NumSections() != 2 {
		t.Fatalf("sections: got %d, want 2", c.NumSections())
	}
	if c.Order() != 4 {
		t.Fatalf("order: got %d, want 4", c.Order())
	}
	if c.Gain() != 1 {
		t.Fatalf("default gain: got %v, want 1", c.Gain())
	}
}

func TestChainProcessSample_GainAndCascade(t *testing.T) {
	c := NewChain([]Coefficients{passthrough(), passthrough()}, WithGain(0.5))
	if y := c.ProcessSample(1); !almostEqual(y, 0.5, eps) {
		t.Fatalf("got %v, want 0.5", y)
	}
}

func TestChainProcessBlock_MatchesSample(t *testing.T) {
	coeffs := []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.5, B1: 0.5},
	}
	input := []float64{1, -0.5, 0.25, 0.75, -1, 0.1}

	c1 := NewChain(coeffs, WithGain(0.8))
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = c1.ProcessSample(x)
	}

	c2 := NewChain(coeffs, WithGain(0.8))
	block := make([]float64, len(input))
	copy(block, input)
	c2.ProcessBlock(block)

	for i := range ref {
		if !almostEqual(block[i], ref[i], eps) {
			t.Errorf("sample %d: block %v, sample-wise %v", i, block[i], ref[i])
		}
	}
}

func TestChainUpdateCoefficients_PreservesState(t *testing.T) {
	coeffs := []Coefficients{{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}}
	c := NewChain(coeffs)
	c.ProcessSample(1)
	c.ProcessSample(-0.5)

	before := c.State()
	retuned := []Coefficients{{B0: 0.3, B1: 0.4, B2: 0.3, A1: -0.1, A2: 0.02}}
	c.UpdateCoefficients(retuned, 0.9)

	after := c.State()
	if before[0] != after[0] {
		t.Fatalf("same-size update must preserve state: %v vs %v", before, after)
	}
	if c.Gain() != 0.9 {
		t.Fatalf("gain not updated: %v", c.Gain())
	}
	if c.Section(0).Coefficients != retuned[0] {
		t.Fatalf("coefficients not swapped: %+v", c.Section(0).Coefficients)
	}
}

func TestChainUpdateCoefficients_SizeChangeResets(t *testing.T) {
	c := NewChain([]Coefficients{{B0: 0.5, B1: 0.5}})
	c.ProcessSample(1)

	c.UpdateCoefficients([]Coefficients{passthrough(), passthrough()}, 1)
	if c.NumSections() != 2 {
		t.Fatalf("sections: got %d, want 2", c.NumSections())
	}
	for i, st := range c.State() {
		if st != ([2]float64{0, 0}) {
			t.Fatalf("section %d state not reset: %v", i, st)
		}
	}
}

func TestChainReset(t *testing.T) {
	c := NewChain([]Coefficients{{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}})
	c.ProcessSample(1)
	c.Reset()
	for i, st := range c.State() {
		if st != ([2]float64{0, 0}) {
			t.Fatalf("section %d state not cleared: %v", i, st)
		}
	}
}

func TestChainSetState(t *testing.T) {
	c := NewChain([]Coefficients{{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}})
	c.ProcessSample(1)
	saved := c.State()

	c.Reset()
	c.SetState(saved)
	if c.State()[0] != saved[0] {
		t.Fatalf("state not restored: got %v, want %v", c.State(), saved)
	}
}

func TestChainMagnitudeDB_PassthroughIsFlat(t *testing.T) {
	c := NewChain([]Coefficients{passthrough()})
	for _, f := range []float64{10, 100, 1000, 10000} {
		db := c.MagnitudeDB(f, 48000)
		if math.Abs(db) > 1e-9 {
			t.Errorf("passthrough at %v Hz: %v dB, want 0", f, db)
		}
	}
}

func TestChainImpulseResponse_RestoresState(t *testing.T) {
	c := NewChain([]Coefficients{{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}})
	c.ProcessSample(1)
	saved := c.State()

	ir := c.ImpulseResponse(16)
	if len(ir) != 16 {
		t.Fatalf("length: got %d, want 16", len(ir))
	}
	if !almostEqual(ir[0], 0.25, eps) {
		t.Fatalf("ir[0]: got %v, want 0.25", ir[0])
	}
	if c.State()[0] != saved[0] {
		t.Fatalf("state not restored after impulse response")
	}
}
