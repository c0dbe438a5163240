package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-analyzer/dsp/pcm"
)

// ErrInvalidInputLength is returned when a sample buffer cannot be transformed:
// its byte count is odd, or its sample count is not a power of two >= 2.
var ErrInvalidInputLength = errors.New("spectrum: invalid input length")

// Transformer turns raw 16-bit sample buffers into magnitude spectra.
//
// It caches the FFT plan of the most recent size. A Transformer is not safe
// for concurrent use.
type Transformer struct {
	size int
	plan *algofft.Plan[complex128]
	work []complex128
}

// NewTransformer creates a Transformer with a plan for bufferBytes-sized input.
// A zero bufferBytes defers plan creation to the first Transform call.
func NewTransformer(bufferBytes int) (*Transformer, error) {
	t := &Transformer{}
	if bufferBytes == 0 {
		return t, nil
	}
	n, err := TransformSize(bufferBytes)
	if err != nil {
		return nil, err
	}
	if err := t.ensurePlan(n); err != nil {
		return nil, err
	}
	return t, nil
}

// TransformSize returns the FFT length for a raw buffer of bufferBytes bytes.
func TransformSize(bufferBytes int) (int, error) {
	if bufferBytes%pcm.BytesPerSample != 0 {
		return 0, fmt.Errorf("%w: odd byte count %d", ErrInvalidInputLength, bufferBytes)
	}
	n := bufferBytes / pcm.BytesPerSample
	if n < 2 || !IsPowerOfTwo(n) {
		return 0, fmt.Errorf("%w: %d samples is not a power of two", ErrInvalidInputLength, n)
	}
	return n, nil
}

// Size returns the current FFT length, or 0 before the first plan exists.
func (t *Transformer) Size() int {
	return t.size
}

// Transform returns the magnitude spectrum of raw. The result has len(raw)/4
// bins; bin k covers k*sampleRate/(len(raw)/2) Hz. The mirrored upper half of
// the FFT output is discarded.
func (t *Transformer) Transform(raw []byte) ([]float64, error) {
	n, err := TransformSize(len(raw))
	if err != nil {
		return nil, err
	}
	if err := t.ensurePlan(n); err != nil {
		return nil, err
	}

	for i := range t.work {
		t.work[i] = complex(pcm.Sample(raw, i), 0)
	}

	if err := t.plan.Forward(t.work, t.work); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	return Magnitude(t.work[:n/2]), nil
}

func (t *Transformer) ensurePlan(n int) error {
	if t.plan != nil && t.size == n {
		return nil
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}
	t.plan = plan
	t.size = n
	t.work = make([]complex128, n)
	return nil
}

// Transform is a one-shot helper that builds a plan for raw's size.
func Transform(raw []byte) ([]float64, error) {
	var t Transformer
	return t.Transform(raw)
}
