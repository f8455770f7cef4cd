package peaks

// Fixed reports local maxima above threshold times the frame maximum.
// It holds no state.
type Fixed struct{}

// NewFixed returns a fixed-threshold detector.
func NewFixed() *Fixed { return &Fixed{} }

// Detect implements Detector.
func (*Fixed) Detect(mask []bool, mag []float64, threshold float64) error {
	if err := validate(mask, mag); err != nil {
		return err
	}

	clearMask(mask)

	bins := len(mask)

	peak := searchMax(mag, bins)
	if peak <= 0 {
		return nil
	}

	level := threshold * peak
	for j := 1; j < bins; j++ {
		if mag[j] > level && isLocalMax(mag, j) {
			mask[j] = true
		}
	}

	return nil
}
