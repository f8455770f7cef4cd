package transform

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// Gonum is the gonum.org/v1/gonum/dsp/fourier backed Transform.
// Gonum's inverse is unnormalized, so Inverse scales by 1/N.
//
// A Gonum is not safe for concurrent use.
type Gonum struct {
	n     int
	fft   *fourier.FFT
	scale float64
}

// NewGonum returns a gonum Transform of size n.
func NewGonum(n int) (*Gonum, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}

	return &Gonum{
		n:     n,
		fft:   fourier.NewFFT(n),
		scale: 1 / float64(n),
	}, nil
}

// Size returns the transform length.
func (g *Gonum) Size() int { return g.n }

// Forward computes the non-negative frequency bins of src.
func (g *Gonum) Forward(dst []complex128, src []float64) error {
	if err := checkLengths(g.n, len(src), len(dst)); err != nil {
		return err
	}

	g.fft.Coefficients(dst, src)

	return nil
}

// Inverse reconstructs real samples from the non-negative frequency bins.
func (g *Gonum) Inverse(dst []float64, src []complex128) error {
	if err := checkLengths(g.n, len(dst), len(src)); err != nil {
		return err
	}

	g.fft.Sequence(dst, src)

	for i := range dst {
		dst[i] *= g.scale
	}

	return nil
}
