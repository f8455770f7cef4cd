package transform

import (
	"math"
)

// DFT is a direct O(N^2) reference Transform. It has no dependencies
// beyond math and is used to cross-check the FFT backends.
type DFT struct {
	n   int
	cos []float64
	sin []float64
}

// NewDFT returns a reference Transform of size n. Any n >= 2 is accepted.
func NewDFT(n int) (*DFT, error) {
	if n < 2 {
		return nil, ErrSize
	}

	d := &DFT{
		n:   n,
		cos: make([]float64, n),
		sin: make([]float64, n),
	}

	for i := range n {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		d.cos[i] = c
		d.sin[i] = s
	}

	return d, nil
}

// Size returns the transform length.
func (d *DFT) Size() int { return d.n }

// Forward computes the non-negative frequency bins of src.
func (d *DFT) Forward(dst []complex128, src []float64) error {
	if err := checkLengths(d.n, len(src), len(dst)); err != nil {
		return err
	}

	for k := range dst {
		var re, im float64
		for t, x := range src {
			idx := (k * t) % d.n
			re += x * d.cos[idx]
			im -= x * d.sin[idx]
		}
		dst[k] = complex(re, im)
	}

	return nil
}

// Inverse reconstructs real samples from the non-negative frequency bins.
func (d *DFT) Inverse(dst []float64, src []complex128) error {
	if err := checkLengths(d.n, len(dst), len(src)); err != nil {
		return err
	}

	half := d.n / 2
	even := d.n%2 == 0

	for t := range dst {
		sum := real(src[0])
		for k := 1; k < len(src); k++ {
			idx := (k * t) % d.n
			term := real(src[k])*d.cos[idx] - imag(src[k])*d.sin[idx]
			if even && k == half {
				sum += real(src[k]) * d.cos[idx]
				continue
			}
			sum += 2 * term
		}
		dst[t] = sum / float64(d.n)
	}

	return nil
}
