package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampUnit(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{-0.5, 0}, {0.25, 0.25}, {3, 1}, {math.NaN(), 0}, {math.Inf(1), 1},
	} {
		if got := ClampUnit(tc.in); got != tc.want {
			t.Fatalf("ClampUnit(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestIsPowerOf2(t *testing.T) {
	for n, want := range map[int]bool{0: false, 1: true, 2: true, 3: false, 1024: true, 1000: false, -4: false} {
		if got := IsPowerOf2(n); got != want {
			t.Fatalf("IsPowerOf2(%d) = %t, want %t", n, got, want)
		}
	}
}

func TestToFloat32Limits(t *testing.T) {
	dst := make([]float32, 3)
	n := ToFloat32(dst, []float64{-2, 0.5, 2, 9})
	if n != 3 {
		t.Fatalf("converted %d samples, want 3", n)
	}
	want := []float32{-1, 0.5, 1}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}
