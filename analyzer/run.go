package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"

	"github.com/cwbudde/algo-analyzer/dsp/spectrum"
	"github.com/cwbudde/algo-analyzer/internal/observe"
)

// Run reads BufferSize bytes at a time from r, processes each buffer and hands
// the frame to every consumer in order.
//
// Run returns nil when r is exhausted; a trailing partial buffer is dropped.
// The context is checked between frames only, and its error is returned on
// cancellation. Buffers rejected with spectrum.ErrInvalidInputLength are
// logged and skipped. Any other read error is returned wrapped.
func (a *Analyzer) Run(ctx context.Context, r io.Reader, consumers ...Consumer) error {
	ctx, span := observe.StartSpan(ctx, "analyzer.Run")
	defer span.End()

	buf := make([]byte, a.BufferSize())
	var frames, skipped int64
	defer func() {
		span.SetAttributes(
			attribute.Int64("analyzer.frames", frames),
			attribute.Int64("analyzer.skipped", skipped),
		)
	}()

	a.logger.Info("analysis started",
		"sample_rate", a.cfg.SampleRate,
		"updates_per_second", a.cfg.UpdatesPerSecond,
		"buffer_bytes", len(buf),
		"history", a.cfg.HistoryCapacity,
	)

	for {
		if err := ctx.Err(); err != nil {
			a.logger.Info("analysis cancelled", "frames", frames, "skipped", skipped)
			return err
		}

		n, err := io.ReadFull(r, buf)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			if n > 0 {
				a.logger.Debug("dropped partial buffer", "bytes", n)
			}
			a.logger.Info("analysis finished", "frames", frames, "skipped", skipped)
			return nil
		}
		if err != nil {
			return fmt.Errorf("analyzer: read samples: %w", err)
		}

		f, err := a.Process(ctx, buf)
		if errors.Is(err, spectrum.ErrInvalidInputLength) {
			skipped++
			a.logger.Warn("skipped frame", "error", err)
			continue
		}
		if err != nil {
			return err
		}
		frames++

		for _, c := range consumers {
			c.Consume(f)
		}
	}
}
