package analyzer

import (
	"errors"

	"github.com/cwbudde/algo-analyzer/stats/frequency"
)

// Beat classifies the bass transient of a frame.
type Beat int

const (
	BeatNone Beat = iota
	BeatSoft
	BeatStrong
)

func (b Beat) String() string {
	switch b {
	case BeatNone:
		return "none"
	case BeatSoft:
		return "soft"
	case BeatStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// BeatThresholds classify a frame from the change of its maximum bass
// intensity. Both the gain and the difference must exceed a level's
// thresholds.
type BeatThresholds struct {
	SoftGain         float64 `yaml:"soft_gain"`
	SoftDifference   float64 `yaml:"soft_difference"`
	StrongGain       float64 `yaml:"strong_gain"`
	StrongDifference float64 `yaml:"strong_difference"`
}

// DefaultBeatThresholds returns the default beat thresholds.
func DefaultBeatThresholds() BeatThresholds {
	return BeatThresholds{
		SoftGain:         0.2,
		SoftDifference:   10,
		StrongGain:       5,
		StrongDifference: 20,
	}
}

// Classify returns the beat level of a max-bass change. An infinite gain
// counts as large; a NaN gain never matches.
func (t BeatThresholds) Classify(c frequency.Change) Beat {
	switch {
	case c.Gain > t.StrongGain && c.Difference > t.StrongDifference:
		return BeatStrong
	case c.Gain > t.SoftGain && c.Difference > t.SoftDifference:
		return BeatSoft
	default:
		return BeatNone
	}
}

func (t BeatThresholds) validate() error {
	if !(t.SoftGain >= 0 && t.SoftDifference >= 0 && t.StrongGain >= 0 && t.StrongDifference >= 0) {
		return errors.New("thresholds must be >= 0")
	}
	return nil
}
