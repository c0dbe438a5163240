package peak_test

import (
	"fmt"

	"github.com/cwbudde/algo-analyzer/dsp/peak"
)

func ExampleExtract() {
	spectrum := make([]float64, 64)
	spectrum[20] = 40
	spectrum[30] = 32
	spectrum[45] = 10

	res := peak.Extract(spectrum, peak.DefaultOptions())
	fmt.Println(res.Peaks, res.Dominant)
	// Output: [{20 40} {30 32}] 23
}
