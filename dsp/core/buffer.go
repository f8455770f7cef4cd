package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// ToFloat32 converts src into dst, hard-limiting each sample to [-1, 1].
// It returns the number of converted samples.
func ToFloat32(dst []float32, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(Clamp(src[i], -1, 1))
	}

	return n
}
