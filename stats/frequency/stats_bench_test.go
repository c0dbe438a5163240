package frequency

import (
	"fmt"
	"math"
	"testing"
)

func BenchmarkSummarize(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		data := make([]float64, n)
		for i := range data {
			data[i] = math.Abs(math.Sin(float64(i) * 0.1))
		}
		b.Run(fmt.Sprintf("bins=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Summarize(data, 0.04)
			}
		})
	}
}
