// Package signal generates deterministic test and demo signals: sines,
// chords, white noise, and endless PCM streams of tones or noise.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Generator creates deterministic signals at a fixed sample rate.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the seed of every noise signal the generator produces.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a signal generator for sampleRate Hz. The noise seed
// defaults to 1.
func NewGenerator(sampleRate float64, opts ...Option) *Generator {
	g := &Generator{
		sampleRate: sampleRate,
		seed:       1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Sine generates a sine wave starting at phase zero.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	return g.Chord([]float64{freqHz}, amplitude, samples)
}

// Chord generates the sum of equal-amplitude sines. The peak of the sum never
// exceeds amplitude.
func (g *Generator) Chord(freqsHz []float64, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("chord samples must be > 0: %d", samples)
	}
	if g.sampleRate <= 0 {
		return nil, fmt.Errorf("chord sample rate must be > 0: %f", g.sampleRate)
	}
	if len(freqsHz) == 0 {
		return nil, errors.New("chord needs at least one frequency")
	}
	out := make([]float64, samples)
	each := amplitude / float64(len(freqsHz))
	for _, f := range freqsHz {
		step := 2 * math.Pi * f / g.sampleRate
		for i := range out {
			out[i] += each * math.Sin(step*float64(i))
		}
	}
	return out, nil
}

// WhiteNoise generates uniform white noise in [-amplitude, amplitude]. It
// yields the same values as the first samples of NoiseReader.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	next := g.noise(amplitude)
	out := make([]float64, samples)
	for i := range out {
		out[i] = next()
	}
	return out, nil
}

func (g *Generator) noise(amplitude float64) func() float64 {
	rng := rand.New(rand.NewSource(g.seed))
	return func() float64 {
		return (rng.Float64()*2 - 1) * amplitude
	}
}
