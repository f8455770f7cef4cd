package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-exciter/dsp/spectrum"
)

func ExamplePolar_Split() {
	p := spectrum.NewPolar(2)
	mag := make([]float64, 2)
	phase := make([]float64, 2)

	_ = p.Split(mag, phase, []complex128{3 + 4i, -2})
	fmt.Printf("%.1f %.1f %.4f\n", mag[0], mag[1], phase[1])
	// Output:
	// 5.0 2.0 3.1416
}
