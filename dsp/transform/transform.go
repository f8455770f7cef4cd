// Package transform wraps FFT libraries behind the small real-signal
// interface the exciter needs.
//
// Forward takes N real samples and produces the N/2+1 non-negative
// frequency bins. Inverse takes those bins and produces N real samples.
// Both backends normalize so that Inverse(Forward(x)) reproduces x.
package transform

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-exciter/dsp/core"
)

// ErrSize is returned for lengths that do not match the transform size.
var ErrSize = errors.New("transform: size mismatch")

// Transform is a real-input FFT of fixed size.
type Transform interface {
	Size() int
	Forward(dst []complex128, src []float64) error
	Inverse(dst []float64, src []complex128) error
}

// Backend names a Transform implementation.
type Backend string

const (
	BackendAlgoFFT Backend = "algofft"
	BackendGonum   Backend = "gonum"
)

// New returns a Transform of size n using the named backend.
func New(backend Backend, n int) (Transform, error) {
	switch backend {
	case BackendAlgoFFT, "":
		return NewFFT(n)
	case BackendGonum:
		return NewGonum(n)
	default:
		return nil, fmt.Errorf("transform: unknown backend %q", backend)
	}
}

// Bins returns the half-spectrum length for a transform of size n.
func Bins(n int) int { return n/2 + 1 }

func validateSize(n int) error {
	if n < 2 || !core.IsPowerOf2(n) {
		return fmt.Errorf("transform: size must be a power of two >= 2: %d", n)
	}
	return nil
}

func checkLengths(n, samples, bins int) error {
	if samples != n || bins != Bins(n) {
		return fmt.Errorf("%w: got %d samples and %d bins for size %d", ErrSize, samples, bins, n)
	}
	return nil
}
