package analyzer

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-analyzer/dsp/pcm"
	"github.com/cwbudde/algo-analyzer/dsp/peak"
	"github.com/cwbudde/algo-analyzer/dsp/shape"
	"github.com/cwbudde/algo-analyzer/dsp/spectrum"
)

// Defaults for Config.
const (
	DefaultSampleRate       = 8192
	DefaultUpdatesPerSecond = 8
	DefaultHistoryCapacity  = 10
	DefaultBandGain         = 0.5

	// referenceRate and referenceBass tune the derived bass bound: at
	// referenceRate Hz the bass band covers referenceBass of the spectrum.
	referenceRate = 8192.0
	referenceBass = 0.04
)

// ErrInvalidConfig is wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("analyzer: invalid config")

// ConfigError reports one invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("analyzer: invalid config: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Config holds the tunable parameters of an Analyzer.
type Config struct {
	// SampleRate of the incoming PCM in Hz.
	SampleRate int `yaml:"sample_rate"`
	// UpdatesPerSecond is the number of frames per second of audio.
	UpdatesPerSecond int `yaml:"updates_per_second"`
	// HistoryCapacity is the number of recent frames that reinforce the
	// processed spectrum.
	HistoryCapacity int `yaml:"history_capacity"`
	// BassUpperBound is the bass band as a fraction of the spectrum length.
	// Zero derives it from SampleRate.
	BassUpperBound float64 `yaml:"bass_upper_bound"`
	// SmoothingKernel is convolved with the raw spectrum. {1} disables smoothing.
	SmoothingKernel []float64 `yaml:"smoothing_kernel"`
	// BandGain scales a fractional band of the spectrum. Nil scales the bass
	// band by DefaultBandGain.
	BandGain *shape.Band `yaml:"band_gain"`
	// PeakWidth is the half-width of the local-maximum neighborhood in bins.
	PeakWidth int `yaml:"peak_width"`
	// PeakAcceptance is the fraction of the strongest non-bass peak a peak
	// must exceed.
	PeakAcceptance float64 `yaml:"peak_acceptance"`
	// ReinforcementSlope is the fall-off of history reinforcement in bins.
	ReinforcementSlope float64 `yaml:"reinforcement_slope"`
	// MinPeakEnergy is the weighted peak total below which the dominant
	// frequency is reported as bin 0.
	MinPeakEnergy float64 `yaml:"min_peak_energy"`
	// Beat holds the thresholds of beat classification.
	Beat BeatThresholds `yaml:"beat"`
}

// ConfigOption mutates a Config.
type ConfigOption func(*Config)

// DefaultConfig returns the default analyzer configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate:         DefaultSampleRate,
		UpdatesPerSecond:   DefaultUpdatesPerSecond,
		HistoryCapacity:    DefaultHistoryCapacity,
		SmoothingKernel:    []float64{1},
		PeakWidth:          peak.DefaultWidth,
		PeakAcceptance:     peak.DefaultAcceptance,
		ReinforcementSlope: shape.DefaultSlope,
		MinPeakEnergy:      peak.DefaultMinEnergy,
		Beat:               DefaultBeatThresholds(),
	}
}

// WithSampleRate sets the input sample rate.
func WithSampleRate(hz int) ConfigOption {
	return func(c *Config) { c.SampleRate = hz }
}

// WithUpdatesPerSecond sets the frame rate.
func WithUpdatesPerSecond(n int) ConfigOption {
	return func(c *Config) { c.UpdatesPerSecond = n }
}

// WithHistoryCapacity sets the history window capacity.
func WithHistoryCapacity(n int) ConfigOption {
	return func(c *Config) { c.HistoryCapacity = n }
}

// WithBassUpperBound sets the bass band fraction.
func WithBassUpperBound(fraction float64) ConfigOption {
	return func(c *Config) { c.BassUpperBound = fraction }
}

// WithSmoothingKernel sets the smoothing kernel. The slice is copied.
func WithSmoothingKernel(kernel ...float64) ConfigOption {
	return func(c *Config) { c.SmoothingKernel = slices.Clone(kernel) }
}

// WithBandGain sets the band-gain stage.
func WithBandGain(band shape.Band) ConfigOption {
	return func(c *Config) { c.BandGain = &band }
}

// WithPeakWidth sets the local-maximum half-width.
func WithPeakWidth(bins int) ConfigOption {
	return func(c *Config) { c.PeakWidth = bins }
}

// WithPeakAcceptance sets the peak acceptance ratio.
func WithPeakAcceptance(ratio float64) ConfigOption {
	return func(c *Config) { c.PeakAcceptance = ratio }
}

// WithReinforcementSlope sets the history reinforcement slope.
func WithReinforcementSlope(bins float64) ConfigOption {
	return func(c *Config) { c.ReinforcementSlope = bins }
}

// WithMinPeakEnergy sets the confidence threshold of the dominant frequency.
func WithMinPeakEnergy(total float64) ConfigOption {
	return func(c *Config) { c.MinPeakEnergy = total }
}

// WithBeatThresholds sets the beat classification thresholds.
func WithBeatThresholds(b BeatThresholds) ConfigOption {
	return func(c *Config) { c.Beat = b }
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...ConfigOption) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// BufferSize returns the number of bytes in one sample buffer.
func (c Config) BufferSize() int {
	return pcm.BufferSize(c.SampleRate, c.UpdatesPerSecond)
}

// DerivedBassUpperBound returns the bass bound used for sampleRate when none
// is configured.
func DerivedBassUpperBound(sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return referenceBass * referenceRate / float64(sampleRate)
}

// Resolved returns a copy of c with derived fields filled in. The copy shares
// no slices or pointers with c.
func (c Config) Resolved() Config {
	out := c
	out.SmoothingKernel = slices.Clone(c.SmoothingKernel)
	if out.BassUpperBound == 0 {
		out.BassUpperBound = DerivedBassUpperBound(c.SampleRate)
	}
	if c.BandGain == nil {
		out.BandGain = &shape.Band{Low: 0, High: out.BassUpperBound, Gain: DefaultBandGain}
	} else {
		band := *c.BandGain
		out.BandGain = &band
	}
	return out
}

// Validate checks the resolved configuration and returns every problem found,
// joined. Each joined error is a *ConfigError.
func (c Config) Validate() error {
	r := c.Resolved()
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if r.SampleRate <= 0 {
		add("sample_rate", "must be > 0, got %d", r.SampleRate)
	}
	if r.UpdatesPerSecond <= 0 {
		add("updates_per_second", "must be > 0, got %d", r.UpdatesPerSecond)
	}
	if r.SampleRate > 0 && r.UpdatesPerSecond > 0 {
		if _, err := spectrum.TransformSize(r.BufferSize()); err != nil {
			add("updates_per_second", "buffer of %d bytes: %v", r.BufferSize(), err)
		}
	}
	if r.HistoryCapacity < 1 {
		add("history_capacity", "must be >= 1, got %d", r.HistoryCapacity)
	}
	if !(r.BassUpperBound >= 0 && r.BassUpperBound < 1) {
		add("bass_upper_bound", "must be in [0, 1), got %v", r.BassUpperBound)
	}
	if _, err := shape.NormalizeKernel(r.SmoothingKernel); err != nil {
		add("smoothing_kernel", "%v", err)
	}
	if b := r.BandGain; !(b.Low >= 0 && b.Low <= b.High && b.High <= 1) {
		add("band_gain", "range [%v, %v) must satisfy 0 <= low <= high <= 1", b.Low, b.High)
	} else if !(b.Gain >= 0) || math.IsInf(b.Gain, 0) {
		add("band_gain", "gain must be finite and >= 0, got %v", b.Gain)
	}
	if r.PeakWidth < 1 {
		add("peak_width", "must be >= 1, got %d", r.PeakWidth)
	}
	if !(r.PeakAcceptance >= 0 && r.PeakAcceptance < 1) {
		add("peak_acceptance", "must be in [0, 1), got %v", r.PeakAcceptance)
	}
	if !(r.ReinforcementSlope > 0) {
		add("reinforcement_slope", "must be > 0, got %v", r.ReinforcementSlope)
	}
	if !(r.MinPeakEnergy >= 0) {
		add("min_peak_energy", "must be >= 0, got %v", r.MinPeakEnergy)
	}
	if err := r.Beat.validate(); err != nil {
		add("beat", "%v", err)
	}

	return errors.Join(errs...)
}
