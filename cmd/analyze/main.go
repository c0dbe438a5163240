// Command analyze runs the spectrum analyzer over a sample source and prints
// one row per frame.
//
// Usage:
//
//	analyze [flags]
//
// Exactly one of -input, -tone or -noise selects the source. With -input -
// the command reads raw signed 16-bit little-endian mono PCM at the configured
// sample rate from stdin.
//
// Examples:
//
//	analyze -input song.wav
//	analyze -input song.wav -realtime -fps 20
//	analyze -tone 55,440 -frames 16
//	analyze -tone 40 -beats-only -realtime -metrics-addr :9090
//	analyze -noise 0.3 -seed 42 -frames 8
//	arecord -f S16_LE -r 8192 -c 1 -t raw | analyze -input - -realtime
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-analyzer/analyzer"
	"github.com/cwbudde/algo-analyzer/internal/config"
	"github.com/cwbudde/algo-analyzer/internal/observe"
	"github.com/cwbudde/algo-analyzer/internal/source"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

// run is the real entry point. It returns an exit code so that deferred
// calls complete before the process exits.
func run() int {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	input := flag.String("input", "", "WAV file to analyze, or - for raw PCM on stdin")
	tones := flag.String("tone", "", "comma-separated frequencies in Hz for a synthetic source")
	noise := flag.Float64("noise", 0, "peak amplitude in (0, 1] of a white-noise source")
	seed := flag.Int64("seed", 1, "random seed of the -noise source")
	frames := flag.Int("frames", 0, "stop after this many frames (0 = until the source ends)")
	realtime := flag.Bool("realtime", false, "pace the source at the sample rate and show a status line")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address")
	fps := flag.Float64("fps", 0, "status line refresh rate with -realtime")
	beatsOnly := flag.Bool("beats-only", false, "print only frames with a beat")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.LogLevel = config.LogLevel(*logLevel)
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *fps > 0 {
		cfg.DisplayFPS = *fps
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: invalid configuration:\n%v\n", err)
		return 1
	}

	level, _ := cfg.LogLevel.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "algo-analyzer"})
		if err != nil {
			logger.Error("failed to initialise telemetry", "err", err)
			return 1
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				logger.Warn("telemetry shutdown", "err", err)
			}
		}()
	}

	metrics, err := observe.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		logger.Error("failed to create metrics", "err", err)
		return 1
	}

	a, err := analyzer.New(cfg.Analyzer, analyzer.WithLogger(logger), analyzer.WithMetrics(metrics))
	if err != nil {
		logger.Error("failed to create analyzer", "err", err)
		return 1
	}
	resolved := a.Config()

	src, closeSrc, err := openSource(sourceFlags{
		input: *input,
		tones: *tones,
		noise: *noise,
		seed:  *seed,
	}, resolved.SampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		flag.Usage()
		return 2
	}
	defer func() {
		if err := closeSrc(); err != nil {
			logger.Warn("closing source", "err", err)
		}
	}()

	if *realtime {
		src = source.Paced(ctx, src, resolved.SampleRate*2)
	}
	if *frames > 0 {
		src = io.LimitReader(src, int64(*frames)*int64(a.BufferSize()))
	}

	if err := serve(ctx, logger, a, src, serveOptions{
		beatsOnly:   *beatsOnly,
		realtime:    *realtime,
		fps:         cfg.DisplayFPS,
		metricsAddr: cfg.MetricsAddr,
	}); err != nil {
		logger.Error("analysis failed", "err", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.File, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file %q not found; create one or omit -config", path)
	}
	return cfg, err
}

type serveOptions struct {
	beatsOnly   bool
	realtime    bool
	fps         float64
	metricsAddr string
}

// serve runs the analysis loop, the status renderer and the metrics server
// until the source is exhausted or ctx is cancelled. Cancellation is not an
// error.
func serve(ctx context.Context, logger *slog.Logger, a *analyzer.Analyzer, src io.Reader, opts serveOptions) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, egCtx := errgroup.WithContext(runCtx)

	if opts.metricsAddr != "" {
		ln, err := net.Listen("tcp", opts.metricsAddr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", opts.metricsAddr, err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		logger.Info("serving metrics", "addr", ln.Addr().String())

		eg.Go(func() error {
			errc := make(chan error, 1)
			go func() { errc <- srv.Serve(ln) }()
			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("metrics server: %w", err)
			case <-egCtx.Done():
			}
			sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer scancel()
			return srv.Shutdown(sctx)
		})
	}

	rep := newReporter(os.Stdout, opts.beatsOnly)
	eg.Go(func() error {
		defer cancel()
		if err := a.Run(egCtx, src, rep); err != nil {
			return err
		}
		return rep.Err()
	})

	if opts.realtime {
		eg.Go(func() error {
			renderStatus(egCtx, os.Stderr, a.Latest(), opts.fps)
			return nil
		})
	}

	err := eg.Wait()
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		return nil
	}
	return err
}
