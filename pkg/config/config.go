// Package config loads and validates the search server configuration from a
// YAML file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Config is the top-level application configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// EngineConfig controls indexing and ranking. Epsilon, MaxResults and
// BucketCount replace what would otherwise be compile-time constants.
type EngineConfig struct {
	StopWords      []string `yaml:"stopWords"`
	Epsilon        float64  `yaml:"epsilon"`
	MaxResults     int      `yaml:"maxResults"`
	BucketCount    int      `yaml:"bucketCount"`
	Workers        int      `yaml:"workers"`
	ParseCacheSize int      `yaml:"parseCacheSize"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig toggles prometheus collectors.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if provided), applies environment-variable
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config with the engine's standard thresholds.
func Default() *Config {
	return &Config{
		Engine: DefaultEngine(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func DefaultEngine() EngineConfig {
	return EngineConfig{
		Epsilon:        1e-6,
		MaxResults:     5,
		BucketCount:    101,
		Workers:        runtime.GOMAXPROCS(0),
		ParseCacheSize: 256,
	}
}

func (e EngineConfig) Validate() error {
	switch {
	case e.Epsilon < 0:
		return apperrors.Newf(apperrors.ErrInvalidConfig, "epsilon must be non-negative, got %g", e.Epsilon)
	case e.MaxResults < 1:
		return apperrors.Newf(apperrors.ErrInvalidConfig, "maxResults must be positive, got %d", e.MaxResults)
	case e.BucketCount < 1:
		return apperrors.Newf(apperrors.ErrInvalidConfig, "bucketCount must be positive, got %d", e.BucketCount)
	case e.Workers < 0:
		return apperrors.Newf(apperrors.ErrInvalidConfig, "workers must be non-negative, got %d", e.Workers)
	case e.ParseCacheSize < 0:
		return apperrors.Newf(apperrors.ErrInvalidConfig, "parseCacheSize must be non-negative, got %d", e.ParseCacheSize)
	}
	return nil
}

// applyEnvOverrides reads SP_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SP_ENGINE_STOP_WORDS"); v != "" {
		cfg.Engine.StopWords = strings.Fields(v)
	}
	if v := os.Getenv("SP_ENGINE_EPSILON"); v != "" {
		if eps, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Engine.Epsilon = eps
		}
	}
	if v := os.Getenv("SP_ENGINE_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.MaxResults = n
		}
	}
	if v := os.Getenv("SP_ENGINE_BUCKET_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.BucketCount = n
		}
	}
	if v := os.Getenv("SP_ENGINE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.Workers = n
		}
	}
	if v := os.Getenv("SP_ENGINE_PARSE_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.ParseCacheSize = n
		}
	}
	if v := os.Getenv("SP_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SP_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SP_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
}
