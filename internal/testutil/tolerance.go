// Package testutil provides shared helpers for package tests.
package testutil

import (
	"math"
	"testing"
)

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireWithinBound fails t if any element's magnitude exceeds bound.
func RequireWithinBound(t *testing.T, data []float64, bound float64) {
	t.Helper()
	for i, v := range data {
		if math.Abs(v) > bound {
			t.Fatalf("index %d: |%v| exceeds bound %v", i, v, bound)
		}
	}
}

// RequireNearlyEqual fails t if got and want differ by more than eps.
func RequireNearlyEqual(t *testing.T, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("got %v, want %v (eps %v)", got, want, eps)
	}
}

// MeanAbs returns the mean absolute value of data.
func MeanAbs(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += math.Abs(v)
	}
	return sum / float64(len(data))
}
