// Package config loads the YAML configuration file of the analyze command.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-analyzer/analyzer"
)

// LogLevel is a log level name: debug, info, warn or error.
type LogLevel string

// IsValid reports whether l names a known level.
func (l LogLevel) IsValid() bool {
	_, err := l.Level()
	return err == nil
}

// Level converts l to a slog.Level. The empty string is info.
func (l LogLevel) Level() (slog.Level, error) {
	switch strings.ToLower(string(l)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", string(l))
	}
}

// File is the on-disk configuration of the analyze command.
type File struct {
	Analyzer    analyzer.Config `yaml:"analyzer"`
	LogLevel    LogLevel        `yaml:"log_level"`
	MetricsAddr string          `yaml:"metrics_addr"`
	DisplayFPS  float64         `yaml:"display_fps"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{
		Analyzer:   analyzer.DefaultConfig(),
		LogLevel:   "info",
		DisplayFPS: 10,
	}
}

// Load reads the YAML configuration file at path and returns a validated [File].
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over the defaults and validates
// the result. Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*File, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *File) error {
	var errs []error

	if !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if !(cfg.DisplayFPS > 0) {
		errs = append(errs, fmt.Errorf("display_fps %v must be > 0", cfg.DisplayFPS))
	}
	if err := cfg.Analyzer.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
