package transform

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-exciter/internal/testutil"
)

func backends(t *testing.T, n int) map[string]Transform {
	t.Helper()

	fft, err := NewFFT(n)
	if err != nil {
		t.Fatalf("NewFFT(%d) error = %v", n, err)
	}

	gn, err := NewGonum(n)
	if err != nil {
		t.Fatalf("NewGonum(%d) error = %v", n, err)
	}

	dft, err := NewDFT(n)
	if err != nil {
		t.Fatalf("NewDFT(%d) error = %v", n, err)
	}

	return map[string]Transform{"algofft": fft, "gonum": gn, "dft": dft}
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int{16, 64, 256} {
		x := testutil.DeterministicNoise(int64(n), 1, n)

		for name, tr := range backends(t, n) {
			t.Run(name, func(t *testing.T) {
				spec := make([]complex128, Bins(n))
				if err := tr.Forward(spec, x); err != nil {
					t.Fatalf("Forward() error = %v", err)
				}

				got := make([]float64, n)
				if err := tr.Inverse(got, spec); err != nil {
					t.Fatalf("Inverse() error = %v", err)
				}

				testutil.RequireSliceNearlyEqual(t, got, x, 1e-9)
			})
		}
	}
}

func TestBackendsAgreeWithDFT(t *testing.T) {
	const n = 64

	x := testutil.DeterministicSine(5000, 44100, 0.8, n)
	for i := range x {
		x[i] += 0.1 * float64(i%3)
	}

	all := backends(t, n)

	ref := make([]complex128, Bins(n))
	if err := all["dft"].Forward(ref, x); err != nil {
		t.Fatalf("DFT Forward() error = %v", err)
	}

	for _, name := range []string{"algofft", "gonum"} {
		got := make([]complex128, Bins(n))
		if err := all[name].Forward(got, x); err != nil {
			t.Fatalf("%s Forward() error = %v", name, err)
		}

		for k := range got {
			if cmplx.Abs(got[k]-ref[k]) > 1e-9 {
				t.Fatalf("%s bin %d = %v, want %v", name, k, got[k], ref[k])
			}
		}
	}
}

func TestForwardImpulseIsFlat(t *testing.T) {
	const n = 32

	for name, tr := range backends(t, n) {
		spec := make([]complex128, Bins(n))
		if err := tr.Forward(spec, testutil.Impulse(n, 0)); err != nil {
			t.Fatalf("%s Forward() error = %v", name, err)
		}
		for k, v := range spec {
			if math.Abs(real(v)-1) > 1e-12 || math.Abs(imag(v)) > 1e-12 {
				t.Fatalf("%s bin %d = %v, want 1", name, k, v)
			}
		}
	}
}

func TestSizeMismatch(t *testing.T) {
	for name, tr := range backends(t, 16) {
		err := tr.Forward(make([]complex128, 8), make([]float64, 16))
		if !errors.Is(err, ErrSize) {
			t.Fatalf("%s Forward() error = %v, want ErrSize", name, err)
		}
		err = tr.Inverse(make([]float64, 15), make([]complex128, 9))
		if !errors.Is(err, ErrSize) {
			t.Fatalf("%s Inverse() error = %v, want ErrSize", name, err)
		}
	}
}

func TestNewRejectsInvalidSize(t *testing.T) {
	for _, n := range []int{0, 1, 12, 100} {
		if _, err := NewFFT(n); err == nil {
			t.Fatalf("NewFFT(%d) expected error", n)
		}
		if _, err := NewGonum(n); err == nil {
			t.Fatalf("NewGonum(%d) expected error", n)
		}
	}
	if _, err := New("fftw", 16); err == nil {
		t.Fatal("New(unknown) expected error")
	}
	if tr, err := New(BackendGonum, 16); err != nil || tr.Size() != 16 {
		t.Fatalf("New(gonum) = %v, %v", tr, err)
	}
}
