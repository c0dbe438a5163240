// Package observe provides the analyzer's observability primitives:
// OpenTelemetry metrics and tracing, with a Prometheus exporter bridge.
//
// A package-level default [Metrics] instance ([DefaultMetrics]) is bound to the
// global meter provider. Tests should use [NewMetrics] with a custom
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all analyzer metrics.
const meterName = "github.com/cwbudde/algo-analyzer"

// Metrics holds the OpenTelemetry instruments of the analysis pipeline.
// All fields are safe for concurrent use.
type Metrics struct {
	// FramesProcessed counts completed frames.
	FramesProcessed metric.Int64Counter

	// FramesSkipped counts sample buffers rejected before a frame was built.
	// Use with attribute.String("reason", ...).
	FramesSkipped metric.Int64Counter

	// ProcessDuration tracks the time to build one frame.
	ProcessDuration metric.Float64Histogram

	// Beats counts classified beats. Use with attribute.String("strength", ...).
	Beats metric.Int64Counter

	// DominantFrequency is the dominant frequency of the latest frame.
	DominantFrequency metric.Float64Gauge
}

// frameBuckets defines histogram bucket boundaries (in seconds) for per-frame
// processing time. A frame must finish well inside its time slice.
var frameBuckets = []float64{
	0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider].
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.FramesProcessed, err = m.Int64Counter("analyzer.frames.processed",
		metric.WithDescription("Total frames built by the analysis pipeline."),
	); err != nil {
		return nil, err
	}
	if met.FramesSkipped, err = m.Int64Counter("analyzer.frames.skipped",
		metric.WithDescription("Total sample buffers skipped by reason."),
	); err != nil {
		return nil, err
	}
	if met.ProcessDuration, err = m.Float64Histogram("analyzer.frame.duration",
		metric.WithDescription("Time to build one frame."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(frameBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Beats, err = m.Int64Counter("analyzer.beats",
		metric.WithDescription("Total beats by strength."),
	); err != nil {
		return nil, err
	}
	if met.DominantFrequency, err = m.Float64Gauge("analyzer.dominant_frequency",
		metric.WithDescription("Dominant frequency of the latest frame."),
		metric.WithUnit("Hz"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Panics if instrument creation
// fails.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordFrame records one completed frame: its build time in seconds and its
// dominant frequency in Hz.
func (m *Metrics) RecordFrame(ctx context.Context, seconds, dominantHz float64) {
	m.FramesProcessed.Add(ctx, 1)
	m.ProcessDuration.Record(ctx, seconds)
	m.DominantFrequency.Record(ctx, dominantHz)
}

// RecordSkipped records a sample buffer that produced no frame.
func (m *Metrics) RecordSkipped(ctx context.Context, reason string) {
	m.FramesSkipped.Add(ctx, 1,
		metric.WithAttributes(attribute.String("reason", reason)),
	)
}

// RecordBeat records a classified beat.
func (m *Metrics) RecordBeat(ctx context.Context, strength string) {
	m.Beats.Add(ctx, 1,
		metric.WithAttributes(attribute.String("strength", strength)),
	)
}
