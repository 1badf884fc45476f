package core

import "testing"

func TestEnsureLen(t *testing.T) {
	buf := make([]float64, 0, 16)

	got := EnsureLen(buf, 8)
	if len(got) != 8 {
		t.Fatalf("length: got %d, want 8", len(got))
	}
	if cap(got) != 16 {
		t.Fatalf("capacity not reused: got %d, want 16", cap(got))
	}

	grown := EnsureLen(got, 32)
	if len(grown) != 32 {
		t.Fatalf("grown length: got %d, want 32", len(grown))
	}

	empty := EnsureLen(got, 0)
	if len(empty) != 0 {
		t.Fatalf("zero request: got len %d", len(empty))
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, -2, 3}
	Zero(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("index %d not zeroed: %v", i, v)
		}
	}
}

func TestCopyInto(t *testing.T) {
	dst := make([]float64, 3)
	n := CopyInto(dst, []float64{1, 2, 3, 4})
	if n != 3 {
		t.Fatalf("copied %d, want 3", n)
	}
	if dst[0] != 1 || dst[2] != 3 {
		t.Fatalf("unexpected contents: %v", dst)
	}

	short := make([]float64, 4)
	n = CopyInto(short, []float64{5})
	if n != 1 || short[0] != 5 {
		t.Fatalf("short copy: n=%d contents=%v", n, short)
	}
}
