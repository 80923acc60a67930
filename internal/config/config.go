// Package config manages hatchet CLI configuration using koanf/v2.
//
// Supports YAML files, environment variables, and CLI flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete hatchet CLI configuration.
type Config struct {
	Capture CaptureConfig `koanf:"capture"`
	Metrics MetricsConfig `koanf:"metrics"`
	Log     LogConfig     `koanf:"log"`
}

// CaptureConfig holds the packet capture source configuration.
type CaptureConfig struct {
	// Interface is the network interface to capture from (e.g., "eth0").
	// Ignored when File is set.
	Interface string `koanf:"interface"`

	// File is a pcap file to read instead of a live interface.
	File string `koanf:"file"`

	// Filter is a BPF filter expression (e.g., "tcp and port 80").
	// Live captures only.
	Filter string `koanf:"filter"`

	// Snaplen is the capture snapshot length in bytes.
	Snaplen int32 `koanf:"snaplen"`

	// Promiscuous puts the interface into promiscuous mode.
	Promiscuous bool `koanf:"promiscuous"`
}

// MetricsConfig holds the Prometheus metrics endpoint configuration.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint
	// (e.g., ":9100"). Empty disables the endpoint.
	Addr string `koanf:"addr"`
	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"path"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with sensible defaults:
// a 64KiB snaplen, text logs at info level, and no metrics endpoint.
func DefaultConfig() *Config {
	return &Config{
		Capture: CaptureConfig{
			Snaplen: 65536,
		},
		Metrics: MetricsConfig{
			Path: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for hatchet configuration.
// Variables are named HATCHET_<section>_<key>, e.g., HATCHET_LOG_LEVEL.
const envPrefix = "HATCHET_"

// Load reads configuration from a YAML file at path, overlays
// environment variable overrides (HATCHET_ prefix), and merges on top
// of DefaultConfig(). Missing fields inherit defaults. An empty path
// skips the file layer.
//
// Environment variable mapping:
//
//	HATCHET_CAPTURE_INTERFACE -> capture.interface
//	HATCHET_CAPTURE_FILTER    -> capture.filter
//	HATCHET_METRICS_ADDR      -> metrics.addr
//	HATCHET_LOG_LEVEL         -> log.level
//	HATCHET_LOG_FORMAT        -> log.format
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Load defaults first.
	if err := loadDefaults(k, DefaultConfig()); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	// Load YAML file on top of defaults.
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
	}

	// Load environment variable overrides on top of YAML.
	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// envKeyMapper transforms HATCHET_LOG_LEVEL -> log.level.
// Strips the HATCHET_ prefix, lowercases, and replaces _ with .
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "_", ".")
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"capture.interface":   defaults.Capture.Interface,
		"capture.file":        defaults.Capture.File,
		"capture.filter":      defaults.Capture.Filter,
		"capture.snaplen":     defaults.Capture.Snaplen,
		"capture.promiscuous": defaults.Capture.Promiscuous,
		"metrics.addr":        defaults.Metrics.Addr,
		"metrics.path":        defaults.Metrics.Path,
		"log.level":           defaults.Log.Level,
		"log.format":          defaults.Log.Format,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

// Validation errors.
var (
	// ErrInvalidSnaplen indicates the snapshot length is not positive.
	ErrInvalidSnaplen = errors.New("capture.snaplen must be > 0")

	// ErrInvalidLogLevel indicates an unrecognized log level.
	ErrInvalidLogLevel = errors.New("log.level must be debug, info, warn or error")

	// ErrInvalidLogFormat indicates an unrecognized log format.
	ErrInvalidLogFormat = errors.New("log.format must be json or text")

	// ErrEmptyMetricsPath indicates a metrics endpoint without a path.
	ErrEmptyMetricsPath = errors.New("metrics.path must not be empty when metrics.addr is set")
)

// Validate checks a configuration for inconsistencies.
func Validate(cfg *Config) error {
	if cfg.Capture.Snaplen <= 0 {
		return fmt.Errorf("snaplen %d: %w", cfg.Capture.Snaplen, ErrInvalidSnaplen)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level %q: %w", cfg.Log.Level, ErrInvalidLogLevel)
	}

	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("format %q: %w", cfg.Log.Format, ErrInvalidLogFormat)
	}

	if cfg.Metrics.Addr != "" && cfg.Metrics.Path == "" {
		return ErrEmptyMetricsPath
	}

	return nil
}

// -------------------------------------------------------------------------
// Logging helpers
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration level string to a slog.Level.
// Unrecognized values fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
