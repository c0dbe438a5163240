package analyzer

import (
	"slices"

	"github.com/cwbudde/algo-analyzer/dsp/peak"
	"github.com/cwbudde/algo-analyzer/stats/frequency"
)

// Stat names one of the intensity statistics that is compared between frames.
type Stat int

const (
	StatAverage Stat = iota
	StatAverageBass
	StatMax
	StatMaxBass
)

func (s Stat) String() string {
	switch s {
	case StatAverage:
		return "average"
	case StatAverageBass:
		return "average_bass"
	case StatMax:
		return "max"
	case StatMaxBass:
		return "max_bass"
	default:
		return "unknown"
	}
}

// Frame is the immutable analysis result of one sample buffer. All fields are
// computed once while the frame is built; slice accessors return copies.
//
// A Frame holds no reference to the history window. Of the frames that
// preceded it, it keeps only their dominant bins (see Prior), which is all
// the reinforcement stage reads.
type Frame struct {
	seq        uint64
	sampleRate int
	raw        []byte
	spectrum   []float64
	processed  []float64
	peaks      []peak.Peak
	dominant   int
	summary    frequency.Summary
	deltas     frequency.Deltas
	prior      []int
	beat       Beat
}

// Sequence returns the 0-based position of the frame in its session.
func (f *Frame) Sequence() uint64 { return f.seq }

// Raw returns a copy of the sample buffer the frame was built from.
func (f *Frame) Raw() []byte { return slices.Clone(f.raw) }

// Spectrum returns a copy of the raw magnitude spectrum.
func (f *Frame) Spectrum() []float64 { return slices.Clone(f.spectrum) }

// Processed returns a copy of the shaped spectrum.
func (f *Frame) Processed() []float64 { return slices.Clone(f.processed) }

// Bins returns the number of spectrum bins.
func (f *Frame) Bins() int { return len(f.spectrum) }

// Peaks returns the qualifying peaks, strongest first.
func (f *Frame) Peaks() []peak.Peak { return slices.Clone(f.peaks) }

// PeaksByBin returns the qualifying peaks in ascending bin order.
func (f *Frame) PeaksByBin() []peak.Peak { return peak.ByBin(f.peaks) }

// Dominant returns the dominant-frequency bin, 0 when no confident estimate
// exists.
func (f *Frame) Dominant() int { return f.dominant }

// BinHz returns the width of one bin in Hz.
func (f *Frame) BinHz() float64 {
	if len(f.spectrum) == 0 {
		return 0
	}
	return float64(f.sampleRate) / float64(2*len(f.spectrum))
}

// DominantHz returns the dominant frequency in Hz.
func (f *Frame) DominantHz() float64 {
	return float64(f.dominant) * f.BinHz()
}

// Summary returns the intensity statistics of the processed spectrum.
func (f *Frame) Summary() frequency.Summary { return f.summary }

// Deltas returns the change of every intensity statistic versus the
// preceding frame. All zero for the first frame of a session.
func (f *Frame) Deltas() frequency.Deltas { return f.deltas }

// Difference returns current minus previous value of s.
func (f *Frame) Difference(s Stat) float64 { return f.change(s).Difference }

// Gain returns the relative change of s. It may be ±Inf when the previous
// value was 0, meaning no reliable gain signal.
func (f *Frame) Gain(s Stat) float64 { return f.change(s).Gain }

func (f *Frame) change(s Stat) frequency.Change {
	switch s {
	case StatAverage:
		return f.deltas.Average
	case StatAverageBass:
		return f.deltas.AverageBass
	case StatMax:
		return f.deltas.Max
	case StatMaxBass:
		return f.deltas.MaxBass
	default:
		return frequency.Change{}
	}
}

// Prior returns the dominant bins of the frames that were in the history
// window before this frame was appended, oldest first. These are the centers
// the reinforcement stage used.
func (f *Frame) Prior() []int { return slices.Clone(f.prior) }

// Beat returns the beat classification of the frame.
func (f *Frame) Beat() Beat { return f.beat }
