package analyzer_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-analyzer/analyzer"
	"github.com/cwbudde/algo-analyzer/dsp/signal"
)

func ExampleAnalyzer_Run() {
	a, err := analyzer.New(analyzer.DefaultConfig(),
		analyzer.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		panic(err)
	}

	src, err := signal.NewToneReader(8192, 0.5, 200)
	if err != nil {
		panic(err)
	}
	var pcm bytes.Buffer
	if _, err := io.CopyN(&pcm, src, int64(3*a.BufferSize())); err != nil {
		panic(err)
	}

	err = a.Run(context.Background(), &pcm, analyzer.ConsumerFunc(func(f *analyzer.Frame) {
		fmt.Printf("frame %d: %.0f Hz\n", f.Sequence(), f.DominantHz())
	}))
	if err != nil {
		panic(err)
	}

	// Output:
	// frame 0: 200 Hz
	// frame 1: 200 Hz
	// frame 2: 200 Hz
}

func ExampleConfig_Validate() {
	cfg := analyzer.ApplyOptions(analyzer.WithHistoryCapacity(0))
	fmt.Println(cfg.Validate())

	// Output:
	// analyzer: invalid config: history_capacity: must be >= 1, got 0
}
