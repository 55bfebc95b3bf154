// Package config loads layoutopt settings from an optional YAML file and
// LAYOUTOPT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/katalvlaran/layoutopt/internal/logging"
	"github.com/katalvlaran/layoutopt/qap"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LAYOUTOPT_WORKERS=4.
const EnvPrefix = "LAYOUTOPT"

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variable.
type Config struct {
	LogLevel       string        `mapstructure:"log_level"`
	LogFile        string        `mapstructure:"log_file"`
	HTTPAddress    string        `mapstructure:"http_address"`
	SolveTimeout   time.Duration `mapstructure:"solve_timeout"`
	Workers        int           `mapstructure:"workers"`
	MaxExhaustiveN int           `mapstructure:"max_exhaustive_n"`
	MaxRounds      int           `mapstructure:"max_rounds"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateBurst      int           `mapstructure:"rate_burst"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// defaults is applied before the file and the environment.
var defaults = map[string]any{
	"log_level":        "info",
	"log_file":         "",
	"http_address":     "127.0.0.1:8080",
	"solve_timeout":    30 * time.Second,
	"workers":          1,
	"max_exhaustive_n": qap.DefaultMaxExhaustiveN,
	"max_rounds":       0,
	"rate_limit":       10.0,
	"rate_burst":       20,
	"max_body_bytes":   int64(1 << 20),
}

// Load reads configuration. With an explicit path the file must exist;
// otherwise ./layoutopt.yaml is used when present. Environment variables
// override both.
func Load(path string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("layoutopt")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns the built-in defaults without reading files or the environment.
func Default() Config {
	return Config{
		LogLevel:       defaults["log_level"].(string),
		HTTPAddress:    defaults["http_address"].(string),
		SolveTimeout:   defaults["solve_timeout"].(time.Duration),
		Workers:        defaults["workers"].(int),
		MaxExhaustiveN: defaults["max_exhaustive_n"].(int),
		RateLimit:      defaults["rate_limit"].(float64),
		RateBurst:      defaults["rate_burst"].(int),
		MaxBodyBytes:   defaults["max_body_bytes"].(int64),
	}
}

// Validate rejects settings the solvers or the server cannot use.
func (c Config) Validate() error {
	switch {
	case c.SolveTimeout < 0:
		return fmt.Errorf("%w: solve_timeout=%s", ErrInvalidConfig, c.SolveTimeout)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers=%d", ErrInvalidConfig, c.Workers)
	case c.MaxExhaustiveN < 0 || c.MaxExhaustiveN > qap.MaxExhaustiveLimit:
		return fmt.Errorf("%w: max_exhaustive_n=%d (allowed 0..%d)", ErrInvalidConfig, c.MaxExhaustiveN, qap.MaxExhaustiveLimit)
	case c.MaxRounds < 0:
		return fmt.Errorf("%w: max_rounds=%d", ErrInvalidConfig, c.MaxRounds)
	case c.RateLimit <= 0 || c.RateBurst <= 0:
		return fmt.Errorf("%w: rate_limit=%g rate_burst=%d", ErrInvalidConfig, c.RateLimit, c.RateBurst)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes=%d", ErrInvalidConfig, c.MaxBodyBytes)
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	return logging.ParseLevel(c.LogLevel)
}

// SolverOptions returns the qap options implied by the configuration.
// SolveTimeout becomes the per-run TimeLimit.
func (c Config) SolverOptions() qap.Options {
	opts := qap.DefaultOptions()
	opts.Workers = c.Workers
	opts.TimeLimit = c.SolveTimeout
	opts.MaxExhaustiveN = c.MaxExhaustiveN
	opts.MaxRounds = c.MaxRounds
	return opts
}
