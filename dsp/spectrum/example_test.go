package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-analyzer/dsp/spectrum"
	"github.com/cwbudde/algo-analyzer/internal/testutil"
)

func ExampleTransform() {
	// 1024 samples at 8192 Hz: 8 Hz per bin, 512 bins.
	raw := testutil.ToneBuffer(8192, 0.5, 1024, 200)
	mag, err := spectrum.Transform(raw)
	if err != nil {
		panic(err)
	}
	fmt.Println(len(mag), testutil.ArgMax(mag))
	// Output:
	// 512 25
}
