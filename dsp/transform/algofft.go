package transform

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// FFT is the algo-fft backed Transform. It runs a complex plan and
// completes the Hermitian half on the inverse path.
//
// An FFT is not safe for concurrent use.
type FFT struct {
	n    int
	plan *algofft.Plan[complex128]
	buf  []complex128
}

// NewFFT returns an algo-fft Transform of size n.
func NewFFT(n int) (*FFT, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("transform: failed to create FFT plan: %w", err)
	}

	return &FFT{
		n:    n,
		plan: plan,
		buf:  make([]complex128, n),
	}, nil
}

// Size returns the transform length.
func (f *FFT) Size() int { return f.n }

// Forward computes the non-negative frequency bins of src.
func (f *FFT) Forward(dst []complex128, src []float64) error {
	if err := checkLengths(f.n, len(src), len(dst)); err != nil {
		return err
	}

	for i, v := range src {
		f.buf[i] = complex(v, 0)
	}

	if err := f.plan.Forward(f.buf, f.buf); err != nil {
		return fmt.Errorf("transform: forward: %w", err)
	}

	copy(dst, f.buf[:len(dst)])

	return nil
}

// Inverse reconstructs real samples from the non-negative frequency bins.
// The imaginary parts of the DC and Nyquist bins are ignored.
func (f *FFT) Inverse(dst []float64, src []complex128) error {
	if err := checkLengths(f.n, len(dst), len(src)); err != nil {
		return err
	}

	half := f.n / 2

	f.buf[0] = complex(real(src[0]), 0)
	f.buf[half] = complex(real(src[half]), 0)

	for k := 1; k < half; k++ {
		f.buf[k] = src[k]
		f.buf[f.n-k] = complex(real(src[k]), -imag(src[k]))
	}

	if err := f.plan.Inverse(f.buf, f.buf); err != nil {
		return fmt.Errorf("transform: inverse: %w", err)
	}

	for i := range dst {
		dst[i] = real(f.buf[i])
	}

	return nil
}
