package transform_test

import (
	"fmt"

	"github.com/cwbudde/algo-exciter/dsp/transform"
)

func ExampleNew() {
	tr, err := transform.New(transform.BackendAlgoFFT, 8)
	if err != nil {
		fmt.Println(err)
		return
	}

	spec := make([]complex128, transform.Bins(tr.Size()))
	_ = tr.Forward(spec, []float64{1, 1, 1, 1, 1, 1, 1, 1})
	fmt.Printf("bins=%d dc=%.1f\n", len(spec), real(spec[0]))
	// Output:
	// bins=5 dc=8.0
}
