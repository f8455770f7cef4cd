package peaks

import "github.com/cwbudde/algo-exciter/dsp/core"

const (
	// CurveDecay is the weight of the previous curve value per frame.
	CurveDecay = 0.9
	// CurveRadius is the half width of the local mean, in bins.
	CurveRadius = 8
)

// Adaptive tracks a floor curve per bin and reports local maxima whose
// normalized magnitude exceeds it.
//
// The curve is an exponential moving average of the local mean magnitude,
// normalized by the frame maximum. The threshold passed to Detect is added
// as a bias and the result is clamped to [0,1].
type Adaptive struct {
	avg   []float64
	curve []float64
	norm  []float64
	fresh bool
}

// NewAdaptive returns an adaptive detector for bins search bins.
func NewAdaptive(bins int) *Adaptive {
	if bins < 0 {
		bins = 0
	}
	return &Adaptive{
		avg:   make([]float64, bins),
		curve: make([]float64, bins),
		norm:  make([]float64, bins),
		fresh: true,
	}
}

// Curve returns the current floor curve. The slice aliases detector state.
func (a *Adaptive) Curve() []float64 { return a.curve }

// Reset clears the curve. The next frame seeds it directly.
func (a *Adaptive) Reset() {
	core.Zero(a.avg)
	core.Zero(a.curve)
	a.fresh = true
}

// Detect implements Detector.
func (a *Adaptive) Detect(mask []bool, mag []float64, threshold float64) error {
	if err := validate(mask, mag); err != nil {
		return err
	}

	clearMask(mask)

	bins := min(len(mask), len(a.curve))

	peak := searchMax(mag, bins)
	if peak <= 0 {
		a.decayToBias(bins, threshold)
		return nil
	}

	inv := 1 / peak
	for j := range bins {
		a.norm[j] = mag[j] * inv
	}

	a.updateCurve(bins, threshold)

	for j := 1; j < bins; j++ {
		if a.norm[j] > a.curve[j] && isLocalMax(mag, j) {
			mask[j] = true
		}
	}

	return nil
}

func (a *Adaptive) updateCurve(bins int, bias float64) {
	// Sliding window sum of norm over [j-r, j+r].
	sum := 0.0
	for i := 0; i <= min(CurveRadius, bins-1); i++ {
		sum += a.norm[i]
	}

	for j := range bins {
		lo := max(0, j-CurveRadius)
		hi := min(bins-1, j+CurveRadius)
		mean := sum / float64(hi-lo+1)

		if a.fresh {
			a.avg[j] = mean
		} else {
			a.avg[j] = CurveDecay*a.avg[j] + (1-CurveDecay)*mean
		}

		a.curve[j] = core.ClampUnit(a.avg[j] + bias)

		if out := j - CurveRadius; out >= 0 {
			sum -= a.norm[out]
		}
		if in := j + CurveRadius + 1; in < bins {
			sum += a.norm[in]
		}
	}

	a.fresh = false
}

func (a *Adaptive) decayToBias(bins int, bias float64) {
	for j := range bins {
		if !a.fresh {
			a.avg[j] *= CurveDecay
		}
		a.curve[j] = core.ClampUnit(a.avg[j] + bias)
	}
}
