package spectrum

import (
	"errors"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// ErrLength is returned when slice lengths do not agree.
var ErrLength = errors.New("spectrum: mismatched slice lengths")

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)
	return out
}

// Polar splits and joins complex bins using preallocated scratch, so the
// steady-state cost of a round trip is allocation free.
//
// A Polar is not safe for concurrent use.
type Polar struct {
	re []float64
	im []float64
}

// NewPolar returns a Polar sized for n bins.
func NewPolar(n int) *Polar {
	return &Polar{
		re: make([]float64, n),
		im: make([]float64, n),
	}
}

// Len returns the bin capacity.
func (p *Polar) Len() int { return len(p.re) }

// Split writes magnitude and phase of the first len(mag) bins of spec.
// mag and phase must have equal length, no longer than spec or the Polar.
func (p *Polar) Split(mag, phase []float64, spec []complex128) error {
	n := len(mag)
	if len(phase) != n || n > len(spec) || n > len(p.re) {
		return ErrLength
	}

	re := p.re[:n]
	im := p.im[:n]

	for i := range n {
		re[i] = real(spec[i])
		im[i] = imag(spec[i])
	}

	vecmath.Magnitude(mag, re, im)

	for i := range n {
		phase[i] = math.Atan2(im[i], re[i])
	}

	return nil
}

// Join writes mag*e^(i*phase) into the first len(mag) bins of spec.
// Bins beyond len(mag) are left untouched.
func (p *Polar) Join(spec []complex128, mag, phase []float64) error {
	n := len(mag)
	if len(phase) != n || n > len(spec) {
		return ErrLength
	}

	for i := range n {
		s, c := math.Sincos(phase[i])
		spec[i] = complex(mag[i]*c, mag[i]*s)
	}

	return nil
}
