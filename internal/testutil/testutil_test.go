package testutil

import (
	"math"
	"testing"
)

func TestBinSineIsPeriodicPerFrame(t *testing.T) {
	s := BinSine(3, 64, 1, 128)
	for i := range 64 {
		if math.Abs(s[i]-s[i+64]) > 1e-12 {
			t.Fatalf("sample %d differs across frames: %g vs %g", i, s[i], s[i+64])
		}
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %g, want 0", s[0])
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 64)
	b := DeterministicNoise(42, 0.5, 64)
	c := DeterministicNoise(43, 0.5, 64)

	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		if a[i] < -0.5 || a[i] > 0.5 {
			t.Fatalf("a[%d] = %g out of range", i, a[i])
		}
		same = same && a[i] == c[i]
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestSimpleSignals(t *testing.T) {
	if imp := Impulse(4, 2); imp[2] != 1 || imp[0] != 0 {
		t.Fatalf("Impulse = %v", imp)
	}
	if imp := Impulse(4, 9); imp[0] != 0 || imp[3] != 0 {
		t.Fatalf("out of range Impulse = %v", imp)
	}
	if r := Ramp(3); r[0] != 0 || r[2] != 2 {
		t.Fatalf("Ramp = %v", r)
	}
	if o := Ones(2); o[0] != 1 || o[1] != 1 {
		t.Fatalf("Ones = %v", o)
	}
}

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.1, 3})
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}
	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}

	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}
