package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-analyzer/dsp/peak"
	"github.com/cwbudde/algo-analyzer/dsp/shape"
	"github.com/cwbudde/algo-analyzer/dsp/spectrum"
	"github.com/cwbudde/algo-analyzer/internal/observe"
	"github.com/cwbudde/algo-analyzer/stats/frequency"
)

// Analyzer builds frames from sample buffers. It is not safe for concurrent
// use, except for the handle returned by Latest.
type Analyzer struct {
	cfg     Config
	logger  *slog.Logger
	metrics *observe.Metrics

	transform *spectrum.Transformer
	shaper    *shape.Pipeline
	peakOpts  peak.Options
	history   *History
	latest    Latest
	seq       uint64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics sets the metric instruments. The default is
// observe.DefaultMetrics().
func WithMetrics(m *observe.Metrics) Option {
	return func(a *Analyzer) {
		if m != nil {
			a.metrics = m
		}
	}
}

// New validates cfg and returns an Analyzer. Invalid configurations fail with
// an error wrapping ErrInvalidConfig before any frame is processed.
func New(cfg Config, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Resolved()

	transform, err := spectrum.NewTransformer(cfg.BufferSize())
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}
	shaper, err := shape.New(shape.Config{
		Kernel: cfg.SmoothingKernel,
		Band:   *cfg.BandGain,
		Slope:  cfg.ReinforcementSlope,
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	a := &Analyzer{
		cfg:       cfg,
		transform: transform,
		shaper:    shaper,
		peakOpts: peak.Options{
			Width:          cfg.PeakWidth,
			Acceptance:     cfg.PeakAcceptance,
			BassUpperBound: cfg.BassUpperBound,
			MinEnergy:      cfg.MinPeakEnergy,
		},
		history: NewHistory(cfg.HistoryCapacity),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.metrics == nil {
		a.metrics = observe.DefaultMetrics()
	}
	return a, nil
}

// Config returns the resolved configuration.
func (a *Analyzer) Config() Config { return a.cfg.Resolved() }

// BufferSize returns the number of bytes Process expects per frame.
func (a *Analyzer) BufferSize() int { return a.cfg.BufferSize() }

// History returns the history window. It must only be used from the
// goroutine that calls Process.
func (a *Analyzer) History() *History { return a.history }

// Latest returns the handle holding the most recent frame. It is safe to read
// from any goroutine.
func (a *Analyzer) Latest() *Latest { return &a.latest }

// Reset starts a new session: the history is cleared and sequence numbers
// restart at 0. The next frame reports zero differences and gains.
func (a *Analyzer) Reset() {
	a.history.Reset()
	a.seq = 0
}

// Process builds the frame for raw, appends it to the history and publishes it
// to Latest. raw is copied. A buffer whose length cannot be transformed fails
// with an error wrapping spectrum.ErrInvalidInputLength and builds no frame.
func (a *Analyzer) Process(ctx context.Context, raw []byte) (*Frame, error) {
	start := time.Now()

	spec, err := a.transform.Transform(raw)
	if err != nil {
		a.metrics.RecordSkipped(ctx, "invalid_length")
		return nil, fmt.Errorf("analyzer: frame %d: %w", a.seq, err)
	}

	prior := a.history.Dominants()
	processed := a.shaper.Apply(spec, prior)
	peaks := peak.Extract(processed, a.peakOpts)
	summary := frequency.Summarize(processed, a.cfg.BassUpperBound)

	var deltas frequency.Deltas
	if prev := a.history.Last(); prev != nil {
		deltas = frequency.Diff(summary, prev.summary)
	}

	f := &Frame{
		seq:        a.seq,
		sampleRate: a.cfg.SampleRate,
		raw:        append([]byte(nil), raw...),
		spectrum:   spec,
		processed:  processed,
		peaks:      peaks.Peaks,
		dominant:   peaks.Dominant,
		summary:    summary,
		deltas:     deltas,
		prior:      prior,
		beat:       a.cfg.Beat.Classify(deltas.MaxBass),
	}

	a.history.Push(f)
	a.seq++
	a.latest.Publish(f)

	a.metrics.RecordFrame(ctx, time.Since(start).Seconds(), f.DominantHz())
	if f.beat != BeatNone {
		a.metrics.RecordBeat(ctx, f.beat.String())
	}
	a.logger.Debug("frame processed",
		"seq", f.seq,
		"dominant_hz", f.DominantHz(),
		"peaks", len(f.peaks),
		"average", summary.Average,
		"average_gain", deltas.Average.Gain,
		"beat", f.beat,
	)
	return f, nil
}
