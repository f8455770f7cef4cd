package exciter

// FalloffBins is the bin index at which the injection weight reaches zero.
// It does not scale with the frame size.
const FalloffBins = 4096

// Orders lists the harmonic orders in the order they are applied.
var Orders = [...]int{2, 3, 5}

// Weight returns the magnitude added at bin k for the given gain.
func Weight(k int, gain float64) float64 {
	return (1 - float64(k)/FalloffBins) * gain / 2
}

// Inject adds harmonic magnitude for every marked peak.
//
// mag holds the N/2 bins below Nyquist and mask the N/4 search bins. For
// each peak j the walk visits k = order*j, 2*order*j, ... below len(mask)
// and adds Weight(k, gain) both at k and at the mirror bin len(mag)-k.
// Injection only ever adds; a walk stops once the weight is no longer
// positive.
func Inject(mag []float64, mask []bool, order int, gain float64) {
	if order < 1 || gain <= 0 {
		return
	}

	half := len(mag)
	search := min(len(mask), half/2)

	for j := 1; j < search; j++ {
		if !mask[j] {
			continue
		}

		step := order * j
		for k := step; k < search; k += step {
			w := Weight(k, gain)
			if w <= 0 {
				break
			}

			mag[k] += w
			mag[half-k] += w
		}
	}
}

// InjectAll applies Inject for each of Orders with the gains from v.
func InjectAll(mag []float64, mask []bool, v Values) {
	for _, order := range Orders {
		Inject(mag, mask, order, v.Gain(order))
	}
}
