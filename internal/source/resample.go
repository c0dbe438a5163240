package source

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRate indicates an invalid input or output sample rate.
var ErrInvalidRate = errors.New("source: invalid sample rate")

// Anti-aliasing filter parameters of the resampler.
const (
	tapsPerPhase = 16
	cutoffScale  = 0.9
	kaiserBeta   = 6.0
)

// Resampler performs rational sample-rate conversion using a polyphase FIR
// low-pass. State is kept across Process calls, so a stream may be converted
// in arbitrary blocks.
type Resampler struct {
	up   int
	down int

	phases     [][]float64
	maxPhaseLn int

	phase      int
	inputIndex int
	totalIn    int
	history    []float64
}

// NewResampler creates a resampler from inRate to outRate Hz.
func NewResampler(inRate, outRate int) (*Resampler, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, inRate, outRate)
	}
	g := gcd(inRate, outRate)
	up, down := outRate/g, inRate/g

	phases, maxPhaseLn := designPolyphase(up, down)
	return &Resampler{
		up:         up,
		down:       down,
		phases:     phases,
		maxPhaseLn: maxPhaseLn,
		history:    make([]float64, 0, max(0, maxPhaseLn-1)),
	}, nil
}

// Ratio returns the reduced up/down conversion factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// Reset clears internal filter state.
func (r *Resampler) Reset() {
	r.phase = 0
	r.inputIndex = 0
	r.totalIn = 0
	r.history = r.history[:0]
}

// Process converts an input block and preserves internal state for streaming.
func (r *Resampler) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}

	work := make([]float64, len(r.history)+len(input))
	copy(work, r.history)
	copy(work[len(r.history):], input)

	baseIndex := r.totalIn - len(r.history)
	lastAvail := r.totalIn + len(input) - 1

	var out []float64
	for r.inputIndex <= lastAvail {
		var y float64
		for k, c := range r.phases[r.phase] {
			idx := r.inputIndex - k
			if idx < baseIndex || idx > lastAvail {
				continue
			}
			y += c * work[idx-baseIndex]
		}
		out = append(out, y)

		r.phase += r.down
		r.inputIndex += r.phase / r.up
		r.phase %= r.up
	}

	r.totalIn += len(input)

	keep := min(max(0, r.maxPhaseLn-1), len(work))
	r.history = append(r.history[:0], work[len(work)-keep:]...)
	return out
}

// designPolyphase returns a Kaiser-windowed sinc low-pass split into up
// polyphase branches. The prototype has unity gain per branch.
func designPolyphase(up, down int) ([][]float64, int) {
	nTaps := tapsPerPhase * up
	fc := (0.5 / float64(max(up, down))) * cutoffScale

	taps := make([]float64, nTaps)
	center := 0.5 * float64(nTaps-1)
	var sum float64
	for n := range taps {
		t := float64(n) - center
		taps[n] = 2 * fc * sinc(2*fc*t) * kaiser(n, nTaps, kaiserBeta)
		sum += taps[n]
	}
	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	phases := make([][]float64, up)
	maxPhaseLn := 0
	for p := range up {
		phase := make([]float64, 0, (nTaps-p+up-1)/up)
		for i := p; i < nTaps; i += up {
			phase = append(phase, taps[i])
		}
		maxPhaseLn = max(maxPhaseLn, len(phase))
		phases[p] = phase
	}
	return phases, maxPhaseLn
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}
	pix := math.Pi * x
	return math.Sin(pix) / pix
}

func kaiser(i, n int, beta float64) float64 {
	if n <= 1 {
		return 1
	}
	t := 2*float64(i)/float64(n-1) - 1
	return i0(beta*math.Sqrt(math.Max(0, 1-t*t))) / i0(beta)
}

// i0 is the zeroth-order modified Bessel function of the first kind.
func i0(x float64) float64 {
	sum, term := 1.0, 1.0
	x2 := x * x / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)
		sum += term
		if term < 1e-16*sum {
			break
		}
	}
	return sum
}
