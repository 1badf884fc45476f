package testutil

import "testing"

func TestMeanAbs(t *testing.T) {
	if got := MeanAbs(nil); got != 0 {
		t.Fatalf("empty: got %v", got)
	}
	if got := MeanAbs([]float64{1, -1, 2, -2}); got != 1.5 {
		t.Fatalf("got %v, want 1.5", got)
	}
}
