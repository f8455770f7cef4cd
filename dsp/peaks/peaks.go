package peaks

import (
	"errors"
	"fmt"
)

// ErrLength is returned when the mask is longer than the magnitude slice
// allows for neighbour comparisons.
var ErrLength = errors.New("peaks: mask longer than magnitude")

// Detector marks spectral peaks.
//
// Detect writes mask[j] for j in [0, len(mask)); mask[0] is always false.
// threshold is the live sensitivity in [0,1]. Its meaning depends on the
// strategy: a relative level for Fixed, a curve bias for Adaptive.
type Detector interface {
	Detect(mask []bool, mag []float64, threshold float64) error
}

// CurveDetector is a Detector with a persistent floor curve.
type CurveDetector interface {
	Detector
	Curve() []float64
	Reset()
}

// Factory builds an independent Detector for a search range of bins.
type Factory func(bins int) Detector

// Kind names a detection strategy.
type Kind string

const (
	KindFixed    Kind = "fixed"
	KindAdaptive Kind = "adaptive"
)

// FactoryFor returns the Factory for a strategy.
func FactoryFor(kind Kind) (Factory, error) {
	switch kind {
	case KindFixed:
		return func(int) Detector { return NewFixed() }, nil
	case KindAdaptive:
		return func(bins int) Detector { return NewAdaptive(bins) }, nil
	default:
		return nil, fmt.Errorf("peaks: unknown strategy %q", kind)
	}
}

func validate(mask []bool, mag []float64) error {
	if len(mask) > len(mag)-1 {
		return fmt.Errorf("%w: mask %d, magnitude %d", ErrLength, len(mask), len(mag))
	}
	return nil
}

// searchMax returns the largest magnitude in [1, bins).
func searchMax(mag []float64, bins int) float64 {
	peak := 0.0
	for j := 1; j < bins; j++ {
		if mag[j] > peak {
			peak = mag[j]
		}
	}
	return peak
}

func isLocalMax(mag []float64, j int) bool {
	return mag[j] > mag[j-1] && mag[j] >= mag[j+1]
}

func clearMask(mask []bool) {
	for i := range mask {
		mask[i] = false
	}
}
