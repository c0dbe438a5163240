package analyzer

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-analyzer/dsp/shape"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got := cfg.BufferSize(); got != 2048 {
		t.Fatalf("BufferSize() = %d, want 2048", got)
	}
}

func TestResolvedDerivesBassBand(t *testing.T) {
	tests := []struct {
		rate int
		want float64
	}{
		{8192, 0.04},
		{16384, 0.02},
		{4096, 0.08},
	}
	for _, tc := range tests {
		r := ApplyOptions(WithSampleRate(tc.rate)).Resolved()
		if math.Abs(r.BassUpperBound-tc.want) > 1e-15 {
			t.Fatalf("rate %d: bass = %v, want %v", tc.rate, r.BassUpperBound, tc.want)
		}
		want := shape.Band{Low: 0, High: r.BassUpperBound, Gain: DefaultBandGain}
		if *r.BandGain != want {
			t.Fatalf("rate %d: band = %+v, want %+v", tc.rate, *r.BandGain, want)
		}
	}
}

func TestResolvedKeepsExplicitValues(t *testing.T) {
	band := shape.Band{Low: 0.1, High: 0.2, Gain: 2}
	cfg := ApplyOptions(WithBassUpperBound(0.1), WithBandGain(band))
	r := cfg.Resolved()
	if r.BassUpperBound != 0.1 {
		t.Fatalf("bass = %v, want 0.1", r.BassUpperBound)
	}
	if *r.BandGain != band {
		t.Fatalf("band = %+v, want %+v", *r.BandGain, band)
	}
	r.BandGain.Gain = 99
	r.SmoothingKernel[0] = 99
	if cfg.BandGain.Gain != 2 || cfg.SmoothingKernel[0] != 1 {
		t.Fatal("Resolved shares memory with the original config")
	}
}

func TestWithSmoothingKernelCopies(t *testing.T) {
	k := []float64{1, 2, 1}
	cfg := ApplyOptions(WithSmoothingKernel(k...))
	k[0] = 5
	if cfg.SmoothingKernel[0] != 1 {
		t.Fatal("option aliases the caller's kernel")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		opts  []ConfigOption
		field string
	}{
		{"zero sample rate", []ConfigOption{WithSampleRate(0)}, "sample_rate"},
		{"zero updates", []ConfigOption{WithUpdatesPerSecond(0)}, "updates_per_second"},
		{"odd buffer", []ConfigOption{WithSampleRate(44100)}, "updates_per_second"},
		{"non power of two buffer", []ConfigOption{WithUpdatesPerSecond(6)}, "updates_per_second"},
		{"zero history", []ConfigOption{WithHistoryCapacity(0)}, "history_capacity"},
		{"bass too large", []ConfigOption{WithBassUpperBound(1)}, "bass_upper_bound"},
		{"negative bass", []ConfigOption{WithBassUpperBound(-0.1)}, "bass_upper_bound"},
		{"empty kernel", []ConfigOption{WithSmoothingKernel()}, "smoothing_kernel"},
		{"zero kernel", []ConfigOption{WithSmoothingKernel(0, 0, 0)}, "smoothing_kernel"},
		{"inverted band", []ConfigOption{WithBandGain(shape.Band{Low: 0.5, High: 0.2, Gain: 1})}, "band_gain"},
		{"negative band gain", []ConfigOption{WithBandGain(shape.Band{Low: 0, High: 0.2, Gain: -1})}, "band_gain"},
		{"zero width", []ConfigOption{WithPeakWidth(0)}, "peak_width"},
		{"acceptance one", []ConfigOption{WithPeakAcceptance(1)}, "peak_acceptance"},
		{"zero slope", []ConfigOption{WithReinforcementSlope(0)}, "reinforcement_slope"},
		{"negative energy", []ConfigOption{WithMinPeakEnergy(-1)}, "min_peak_energy"},
		{"negative beat", []ConfigOption{WithBeatThresholds(BeatThresholds{SoftGain: -1})}, "beat"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ApplyOptions(tc.opts...).Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Field != tc.field {
				t.Fatalf("field = %q, want %q", ce.Field, tc.field)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	err := ApplyOptions(WithHistoryCapacity(0), WithPeakWidth(0), WithReinforcementSlope(-1)).Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, field := range []string{"history_capacity", "peak_width", "reinforcement_slope"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := New(ApplyOptions(WithHistoryCapacity(0))); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New() = %v, want ErrInvalidConfig", err)
	}
}
