package shape

import (
	"errors"
	"fmt"
)

// DefaultSlope is the default reinforcement fall-off in bins per unit of gain.
const DefaultSlope = 10.0

// Config holds the tunable parameters of a Pipeline.
type Config struct {
	Kernel []float64
	Band   Band
	Slope  float64
}

// Pipeline applies the shaping stages in fixed order.
//
// A Pipeline caches emphasis weights per spectrum length and is not safe for
// concurrent use.
type Pipeline struct {
	kernel  []float64
	band    Band
	slope   float64
	weights []float64
}

// New validates cfg and returns a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	kernel, err := NormalizeKernel(cfg.Kernel)
	if err != nil {
		return nil, err
	}
	if !(cfg.Slope > 0) {
		return nil, fmt.Errorf("shape: slope must be > 0: %v", cfg.Slope)
	}
	if err := validateBand(cfg.Band); err != nil {
		return nil, err
	}
	return &Pipeline{
		kernel: kernel,
		band:   cfg.Band,
		slope:  cfg.Slope,
	}, nil
}

func validateBand(b Band) error {
	if b.Low < 0 || b.High > 1 || b.Low > b.High {
		return fmt.Errorf("shape: band [%v, %v) must satisfy 0 <= low <= high <= 1", b.Low, b.High)
	}
	if b.Gain < 0 {
		return errors.New("shape: band gain must be >= 0")
	}
	return nil
}

// Apply shapes spectrum. prior holds the dominant bins of earlier frames,
// oldest first; each one reinforces the bins around it.
func (p *Pipeline) Apply(spectrum []float64, prior []int) []float64 {
	out := smooth(spectrum, p.kernel)
	out = emphasize(out, p.emphasisWeights(len(out)))
	out = BandGain(out, p.band)
	for k, center := range prior {
		out = Reinforce(out, center, HistoryMultiplier(k, len(prior)), p.slope)
	}
	return out
}

func (p *Pipeline) emphasisWeights(n int) []float64 {
	if len(p.weights) != n {
		p.weights = EmphasisWeights(n)
	}
	return p.weights
}
