package shape

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Errors returned by kernel validation.
var (
	ErrEmptyKernel = errors.New("shape: empty kernel")
	ErrZeroKernel  = errors.New("shape: kernel has zero magnitude")
)

// Band describes the fractional bin range [Low, High) of a spectrum and the
// gain applied to it. Low and High are fractions of the spectrum length.
type Band struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
	Gain float64 `yaml:"gain"`
}

// Bounds returns the bin range [lo, hi) covered by b in a spectrum of n bins.
func (b Band) Bounds(n int) (lo, hi int) {
	return int(b.Low * float64(n)), int(b.High * float64(n))
}

// NormalizeKernel returns a copy of kernel scaled so its absolute values sum to 1.
func NormalizeKernel(kernel []float64) ([]float64, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	mag := floats.Norm(kernel, 1)
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return nil, ErrZeroKernel
	}
	out := make([]float64, len(kernel))
	floats.ScaleTo(out, 1/mag, kernel)
	return out, nil
}

// Smooth convolves data with kernel after normalizing the kernel.
//
// Tap j of the kernel reads data[i+j-len(kernel)/2]; reads outside the slice
// replicate the nearest edge sample. The output is the absolute value of the
// convolution sum.
func Smooth(data, kernel []float64) ([]float64, error) {
	k, err := NormalizeKernel(kernel)
	if err != nil {
		return nil, err
	}
	return smooth(data, k), nil
}

// smooth expects an already normalized kernel.
func smooth(data, kernel []float64) []float64 {
	n := len(data)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	half := len(kernel) / 2
	for i := range out {
		var sum float64
		for j := -half; j <= (len(kernel)-1)/2; j++ {
			idx := min(max(i+j, 0), n-1)
			sum += data[idx] * kernel[j+half]
		}
		out[i] = math.Abs(sum)
	}
	return out
}

// EmphasisWeights returns the log-emphasis factor max(0, ln(2i)) for each of n bins.
func EmphasisWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = math.Max(0, math.Log(float64(2*i)))
	}
	return w
}

// LogEmphasis scales bin i by max(0, ln(2i)). Bins 0 and 1 map to zero weight
// and higher bins are emphasized logarithmically.
func LogEmphasis(data []float64) []float64 {
	return emphasize(data, EmphasisWeights(len(data)))
}

func emphasize(data, weights []float64) []float64 {
	out := make([]float64, len(data))
	if len(data) > 0 {
		vecmath.MulBlock(out, data, weights)
	}
	return out
}

// BandGain multiplies the bins inside band by band.Gain.
func BandGain(data []float64, band Band) []float64 {
	out := make([]float64, len(data))
	copy(out, data)

	lo, hi := band.Bounds(len(data))
	lo = max(lo, 0)
	hi = min(hi, len(data))
	for i := lo; i < hi; i++ {
		out[i] *= band.Gain
	}
	return out
}

// Reinforce multiplies bin i by max(1, mult-|center-i|/slope). Bins within
// (mult-1)*slope of center are boosted; no bin is ever reduced.
func Reinforce(data []float64, center int, mult, slope float64) []float64 {
	factors := make([]float64, len(data))
	for i := range factors {
		d := math.Abs(float64(center - i))
		factors[i] = math.Max(1, mult-d/slope)
	}
	return emphasize(data, factors)
}

// HistoryMultiplier returns the reinforcement strength for prior frame k of
// total, oldest first: 1 + 0.5^(total-k). The newest prior frame gets 1.5.
func HistoryMultiplier(k, total int) float64 {
	return 1 + math.Pow(0.5, float64(total-k))
}
