package window

import (
	"math"
	"testing"
)

func TestGenerateFinite(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeCosine} {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}
		})
	}
}

func TestGenerateEmpty(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
	if _, err := Hann(-1); err == nil {
		t.Fatal("Hann(-1) expected error")
	}
}

func TestHannSymmetricEndpoints(t *testing.T) {
	w := Generate(TypeHann, 33)
	if math.Abs(w[0]) > 1e-15 || math.Abs(w[32]) > 1e-15 {
		t.Fatalf("endpoints = %g, %g, want 0", w[0], w[32])
	}
	if math.Abs(w[16]-1) > 1e-15 {
		t.Fatalf("center = %g, want 1", w[16])
	}
}

func TestPeriodicHannOverlapSumsToOne(t *testing.T) {
	for _, n := range []int{16, 256, 1024} {
		w := Generate(TypeHann, n, WithPeriodic())
		lo, hi, err := OverlapSum(w, n/2)
		if err != nil {
			t.Fatalf("OverlapSum() error = %v", err)
		}
		if math.Abs(lo-1) > 1e-12 || math.Abs(hi-1) > 1e-12 {
			t.Fatalf("n=%d overlap sum range [%g, %g], want 1", n, lo, hi)
		}
	}
}

func TestSymmetricHannIsNotExactAtHalfOverlap(t *testing.T) {
	w := Generate(TypeHann, 64)
	lo, hi, err := OverlapSum(w, 32)
	if err != nil {
		t.Fatalf("OverlapSum() error = %v", err)
	}
	if hi-lo < 1e-6 {
		t.Fatalf("symmetric Hann unexpectedly flat: [%g, %g]", lo, hi)
	}
}

func TestApplyInPlace(t *testing.T) {
	samples := []float64{1, 2, 3, 4}
	if err := ApplyInPlace(samples, []float64{0, 0.5, 1, 2}); err != nil {
		t.Fatalf("ApplyInPlace() error = %v", err)
	}
	want := []float64{0, 1, 3, 8}
	for i := range want {
		if samples[i] != want[i] {
			t.Fatalf("samples[%d] = %g, want %g", i, samples[i], want[i])
		}
	}

	if err := ApplyInPlace(samples, []float64{1}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestOverlapSumRejectsBadInput(t *testing.T) {
	if _, _, err := OverlapSum(nil, 1); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
	if _, _, err := OverlapSum([]float64{1, 1}, 3); err == nil {
		t.Fatal("expected error for hop > len")
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(" " + typ.String() + " ")
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if got, err := ParseType("HANN"); err != nil || got != TypeHann {
		t.Fatalf("ParseType(HANN) = %v, %v", got, err)
	}
	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("expected error for unknown window")
	}
}
