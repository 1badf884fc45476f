package synth

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-noise/internal/testutil"
)

const stageSampleRate = 48000.0

func TestBassGainDB_Mapping(t *testing.T) {
	cases := []struct {
		tilt, want float64
	}{
		{0.2, -7.2},
		{0.5, 0},
		{0.8, 7.2},
	}
	for _, tc := range cases {
		if got := BassGainDB(tc.tilt); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("tilt %v: got %v dB, want %v", tc.tilt, got, tc.want)
		}
	}
}

func TestMidFrequencyHz_Mapping(t *testing.T) {
	cases := []struct {
		pitch, want float64
	}{
		{0.2, 400},
		{0.5, 700},
		{0.8, 1000},
	}
	for _, tc := range cases {
		if got := MidFrequencyHz(tc.pitch); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("pitch %v: got %v Hz, want %v", tc.pitch, got, tc.want)
		}
	}
}

// rms of buf after discarding the first skip samples of transient.
func steadyRMS(buf []float64, skip int) float64 {
	sum := 0.0
	for _, v := range buf[skip:] {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(buf)-skip))
}

func sineInto(buf []float64, freq float64) {
	step := 2 * math.Pi * freq / stageSampleRate
	for i := range buf {
		buf[i] = math.Sin(step * float64(i))
	}
}

func TestFilterStage_TiltControlsBassLevel(t *testing.T) {
	// A 100 Hz tone sits below the bass corner, so the output level should
	// follow the tilt-dependent bass gain: +7.2 dB vs -7.2 dB is a >2.5x
	// amplitude spread even with the mid band's residual contribution.
	process := func(tilt float64) float64 {
		p := Parameters{SpectralTilt: tilt, PitchShift: 0.5}
		f := NewFilterStage(stageSampleRate, p, WithSmoothingTime(0))
		buf := make([]float64, 48000)
		sineInto(buf, 100)
		f.ProcessBlock(buf)
		return steadyRMS(buf, 4800)
	}

	loud := process(0.8)
	quiet := process(0.2)
	if loud/quiet < 2.5 {
		t.Fatalf("bass level spread too small: %v / %v = %v", loud, quiet, loud/quiet)
	}
}

func TestFilterStage_MidBandFollowsPitch(t *testing.T) {
	// With pitch 0.2 the band-pass sits at 400 Hz: a 400 Hz tone should
	// come through noticeably stronger than a 4 kHz tone, which falls
	// outside both bands.
	p := Parameters{SpectralTilt: 0.5, PitchShift: 0.2}

	level := func(freq float64) float64 {
		f := NewFilterStage(stageSampleRate, p, WithSmoothingTime(0))
		buf := make([]float64, 48000)
		sineInto(buf, freq)
		f.ProcessBlock(buf)
		return steadyRMS(buf, 4800)
	}

	if inBand, outOfBand := level(400), level(4000); inBand/outOfBand < 3 {
		t.Fatalf("mid band selectivity too low: %v vs %v", inBand, outOfBand)
	}
}

func TestFilterStage_UpdateRetunesMidFrequency(t *testing.T) {
	f := NewFilterStage(stageSampleRate, Parameters{SpectralTilt: 0.5, PitchShift: 0.5})
	testutil.RequireNearlyEqual(t, f.MidFrequency(), 700, 1e-9)

	f.Update(Parameters{SpectralTilt: 0.5, PitchShift: 0.8})
	testutil.RequireNearlyEqual(t, f.MidFrequency(), 1000, 1e-9)
}

func TestFilterStage_UpdatePreservesDelayState(t *testing.T) {
	f := NewFilterStage(stageSampleRate, Parameters{SpectralTilt: 0.5, PitchShift: 0.5})

	buf := make([]float64, 256)
	sineInto(buf, 300)
	f.ProcessBlock(buf)

	before := f.mid.State()
	f.Update(Parameters{SpectralTilt: 0.8, PitchShift: 0.8})
	after := f.mid.State()

	if before[0] != after[0] {
		t.Fatalf("retune must preserve delay state: %v vs %v", before, after)
	}
}

func TestFilterStage_ResetClearsDelayState(t *testing.T) {
	f := NewFilterStage(stageSampleRate, Parameters{SpectralTilt: 0.5, PitchShift: 0.5})

	buf := make([]float64, 256)
	sineInto(buf, 300)
	f.ProcessBlock(buf)

	f.Reset()
	for _, st := range f.bass.State() {
		if st != ([2]float64{0, 0}) {
			t.Fatalf("bass state not cleared: %v", st)
		}
	}
	for _, st := range f.mid.State() {
		if st != ([2]float64{0, 0}) {
			t.Fatalf("mid state not cleared: %v", st)
		}
	}
}

func TestFilterStage_GainRampHasNoClick(t *testing.T) {
	f := NewFilterStage(stageSampleRate, Parameters{SpectralTilt: 0.2, PitchShift: 0.5})

	// Settle on a constant input, then slam the tilt to the other extreme.
	settle := make([]float64, 9600)
	for i := range settle {
		settle[i] = 1
	}
	f.ProcessBlock(settle)
	last := settle[len(settle)-1]

	f.Update(Parameters{SpectralTilt: 0.8, PitchShift: 0.5})

	ramp := make([]float64, 256)
	for i := range ramp {
		ramp[i] = 1
	}
	f.ProcessBlock(ramp)

	prev := last
	for i, v := range ramp {
		if math.Abs(v-prev) > 0.02 {
			t.Fatalf("sample %d: step %v -> %v jumps by %v", i, prev, v, math.Abs(v-prev))
		}
		prev = v
	}
}

func TestFilterStage_NonFiniteInputIsGuarded(t *testing.T) {
	f := NewFilterStage(stageSampleRate, Parameters{SpectralTilt: 0.5, PitchShift: 0.5})

	buf := []float64{0.5, math.NaN(), math.Inf(1), 0.25, math.Inf(-1), -0.5}
	f.ProcessBlock(buf)

	testutil.RequireFinite(t, buf)

	// The stage must keep producing sound after the fault.
	tail := make([]float64, 4800)
	sineInto(tail, 300)
	f.ProcessBlock(tail)
	testutil.RequireFinite(t, tail)
	if steadyRMS(tail, 480) == 0 {
		t.Fatal("stage silent after non-finite input")
	}
}

func TestFilterStage_ProcessBlockZeroAlloc(t *testing.T) {
	f := NewFilterStage(stageSampleRate, Parameters{SpectralTilt: 0.5, PitchShift: 0.5})
	buf := make([]float64, 512)
	sineInto(buf, 300)

	p := Parameters{SpectralTilt: 0.6, PitchShift: 0.7}
	allocs := testing.AllocsPerRun(100, func() {
		f.Update(p)
		f.ProcessBlock(buf)
	})
	if allocs != 0 {
		t.Fatalf("audio path allocates: %v allocs/run", allocs)
	}
}
