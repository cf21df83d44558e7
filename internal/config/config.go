// Package config builds the engine's configuration from functional
// options, mirroring the teacher's GraphOptions/CacheOptions idiom.
package config

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel/trace"

	"github.com/JimFuller-RedHat/trustify/internal/logging"
)

// Config is the engine's top-level configuration.
type Config struct {
	MaxCacheSize uint64
	Logger       *logging.Logger
	Tracer       trace.Tracer
}

// Option configures a Config value.
type Option func(*Config) error

// Default returns the engine's zero-configuration defaults.
func Default() Config {
	return Config{
		MaxCacheSize: 256 * 1024 * 1024,
		Logger:       logging.Default(),
	}
}

// New builds a Config from Default plus the given options, in order.
func New(opts ...Option) (Config, error) {
	cfg := Default()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// WithMaxCacheSize sets the cache's byte budget directly.
func WithMaxCacheSize(bytes uint64) Option {
	return func(c *Config) error {
		c.MaxCacheSize = bytes
		return nil
	}
}

// WithMaxCacheSizeString parses a human byte size ("64MiB", "2GB") with
// github.com/dustin/go-humanize — the Go-ecosystem analogue of the
// original AnalysisConfig.max_cache_size's bytesize-crate parsing.
func WithMaxCacheSizeString(s string) Option {
	return func(c *Config) error {
		n, err := humanize.ParseBytes(s)
		if err != nil {
			return fmt.Errorf("config: max cache size %q: %w", s, err)
		}
		c.MaxCacheSize = n
		return nil
	}
}

// WithLogger overrides the engine's logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}

// WithTracer overrides the engine's tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *Config) error {
		c.Tracer = t
		return nil
	}
}
