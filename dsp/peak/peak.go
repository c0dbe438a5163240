package peak

import (
	"cmp"
	"math"
	"slices"
)

// Defaults for Options.
const (
	DefaultWidth      = 2
	DefaultAcceptance = 0.7
	DefaultMinEnergy  = 10.0
)

// Peak is one qualifying local maximum of a spectrum.
type Peak struct {
	Bin       int
	Intensity float64
}

// Candidates returns every bin of data that no neighbor within ±width strictly
// exceeds, in bin order. Neighbors outside the slice are ignored. Bins with a
// value <= 0 are discarded.
func Candidates(data []float64, width int) []Peak {
	var out []Peak
	for i, v := range data {
		if !(v > 0) {
			continue
		}
		lo := max(i-width, 0)
		hi := min(i+width, len(data)-1)
		local := true
		for j := lo; j <= hi; j++ {
			if data[j] > v {
				local = false
				break
			}
		}
		if local {
			out = append(out, Peak{Bin: i, Intensity: v})
		}
	}
	return out
}

// Rank returns a copy of peaks sorted by descending intensity. Equal
// intensities keep their input order.
func Rank(peaks []Peak) []Peak {
	out := slices.Clone(peaks)
	slices.SortStableFunc(out, func(a, b Peak) int {
		return cmp.Compare(b.Intensity, a.Intensity)
	})
	return out
}

// ByBin returns a copy of peaks sorted by ascending bin.
func ByBin(peaks []Peak) []Peak {
	out := slices.Clone(peaks)
	slices.SortStableFunc(out, func(a, b Peak) int {
		return cmp.Compare(a.Bin, b.Bin)
	})
	return out
}

// Reference returns the intensity of the strongest ranked peak whose bin lies
// above floor. ok is false when no such peak exists.
func Reference(ranked []Peak, floor float64) (intensity float64, ok bool) {
	for _, p := range ranked {
		if float64(p.Bin) > floor {
			return p.Intensity, true
		}
	}
	return 0, false
}

// Select keeps the ranked peaks whose bin lies above floor and whose intensity
// exceeds acceptance times the reference intensity. Rank order is preserved.
func Select(ranked []Peak, floor, acceptance float64) []Peak {
	ref, ok := Reference(ranked, floor)
	if !ok {
		return nil
	}
	threshold := acceptance * ref

	var out []Peak
	for _, p := range ranked {
		if float64(p.Bin) > floor && p.Intensity > threshold {
			out = append(out, p)
		}
	}
	return out
}

// Dominant returns the rank-weighted average bin of ranked. Peak p of P gets
// weight (P-p)/P. The result is 0 when the weighted intensity total is below
// minEnergy, which includes the empty set.
func Dominant(ranked []Peak, minEnergy float64) int {
	n := float64(len(ranked))
	var total, weighted float64
	for p, pk := range ranked {
		w := (n - float64(p)) / n
		total += pk.Intensity * w
		weighted += pk.Intensity * w * float64(pk.Bin)
	}
	if !(total >= minEnergy) || total == 0 {
		return 0
	}
	return int(math.Round(weighted / total))
}

// Options configures Extract.
type Options struct {
	// Width is the half-width of the local-maximum neighborhood in bins.
	Width int
	// Acceptance is the fraction of the reference intensity a peak must exceed.
	Acceptance float64
	// BassUpperBound is the bass band as a fraction of the spectrum length.
	// Peaks at or below it are excluded.
	BassUpperBound float64
	// MinEnergy is the weighted intensity total below which Dominant is 0.
	MinEnergy float64
}

// DefaultOptions returns Options with the package defaults and no bass band.
func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		Acceptance: DefaultAcceptance,
		MinEnergy:  DefaultMinEnergy,
	}
}

// Result is the outcome of Extract.
type Result struct {
	// Peaks holds the selected peaks, strongest first.
	Peaks []Peak
	// Dominant is the dominant-frequency bin, 0 when not confident.
	Dominant int
}

// Extract runs candidate detection, ranking, selection and the dominant
// estimate over data.
func Extract(data []float64, opts Options) Result {
	floor := float64(len(data)) * opts.BassUpperBound
	ranked := Rank(Candidates(data, opts.Width))
	peaks := Select(ranked, floor, opts.Acceptance)
	return Result{
		Peaks:    peaks,
		Dominant: Dominant(peaks, opts.MinEnergy),
	}
}
