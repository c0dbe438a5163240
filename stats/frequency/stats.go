// Package frequency computes per-frame intensity statistics over a processed
// spectrum and their change from one frame to the next.
package frequency

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Summary holds the intensity statistics of one processed spectrum.
type Summary struct {
	Average     float64 // mean intensity over all bins
	AverageBass float64 // bass intensity sum divided by M*bassUpperBound
	Max         float64
	MaxBin      int // first bin holding Max
	MaxBass     float64
}

// BassBins returns the number of bins i with i < m*bassUpperBound.
func BassBins(m int, bassUpperBound float64) int {
	if m <= 0 || !(bassUpperBound > 0) {
		return 0
	}
	return min(int(math.Ceil(float64(m)*bassUpperBound)), m)
}

// Summarize computes the statistics of processed. The bass band covers bins
// below len(processed)*bassUpperBound. An empty spectrum yields a zero Summary.
func Summarize(processed []float64, bassUpperBound float64) Summary {
	m := len(processed)
	if m == 0 {
		return Summary{}
	}

	maxBin := floats.MaxIdx(processed)
	s := Summary{
		Average: floats.Sum(processed) / float64(m),
		Max:     processed[maxBin],
		MaxBin:  maxBin,
	}

	nb := BassBins(m, bassUpperBound)
	if nb == 0 {
		return s
	}
	bass := processed[:nb]
	if denom := float64(m) * bassUpperBound; denom != 0 {
		s.AverageBass = floats.Sum(bass) / denom
	}
	s.MaxBass = floats.Max(bass)
	return s
}

// Change is the difference and relative gain of a statistic versus the
// preceding frame.
type Change struct {
	Difference float64
	Gain       float64
}

// Compare returns current-previous and its ratio to previous. A zero
// difference gives a zero gain. Otherwise the gain follows IEEE division, so a
// zero previous value gives ±Inf. Callers must treat a non-finite gain as "no
// reliable gain signal", not as an error.
func Compare(current, previous float64) Change {
	d := current - previous
	if d == 0 {
		return Change{}
	}
	return Change{Difference: d, Gain: d / previous}
}

// Deltas holds the change of each intensity statistic between two frames.
type Deltas struct {
	Average     Change
	AverageBass Change
	Max         Change
	MaxBass     Change
}

// Diff compares the four intensity statistics of current against previous.
func Diff(current, previous Summary) Deltas {
	return Deltas{
		Average:     Compare(current.Average, previous.Average),
		AverageBass: Compare(current.AverageBass, previous.AverageBass),
		Max:         Compare(current.Max, previous.Max),
		MaxBass:     Compare(current.MaxBass, previous.MaxBass),
	}
}

// Finite reports whether every gain in d is finite.
func (d Deltas) Finite() bool {
	for _, g := range []float64{d.Average.Gain, d.AverageBass.Gain, d.Max.Gain, d.MaxBass.Gain} {
		if math.IsInf(g, 0) || math.IsNaN(g) {
			return false
		}
	}
	return true
}
