package cache

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/JimFuller-RedHat/trustify/internal/logging"
)

// Options configures a GraphCache's capacity and observability hooks —
// the Go shape of the teacher's CacheOptions functional-option struct,
// adapted from an entry-count-plus-soft-memory-limit model to a single
// hard byte budget (spec §4.3: the cache evicts by total estimated byte
// size, not entry count).
type Options struct {
	MaxCacheSize uint64
	Logger       *logging.Logger
	Tracer       trace.Tracer
}

// Option configures an Options value.
type Option func(*Options)

// defaultMaxCacheSize is used when WithMaxCacheSize is never passed.
const defaultMaxCacheSize = 256 * 1024 * 1024 // 256MiB

// DefaultOptions returns the cache's zero-configuration defaults.
func DefaultOptions() Options {
	return Options{
		MaxCacheSize: defaultMaxCacheSize,
		Logger:       logging.Default(),
		Tracer:       graphCacheTracer,
	}
}

// WithMaxCacheSize sets the cache's total byte budget. Once exceeded, the
// least-recently-used graph is evicted until the new entry fits.
func WithMaxCacheSize(bytes uint64) Option {
	return func(o *Options) { o.MaxCacheSize = bytes }
}

// WithLogger sets the logger the cache reports cycle-gate warnings and
// eviction activity through. A nil logger is ignored, leaving the
// default in place.
func WithLogger(l *logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTracer overrides the tracer spans are recorded against — mainly
// useful in tests that want to inspect recorded spans. A nil tracer is
// ignored, leaving the default in place.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		if t != nil {
			o.Tracer = t
		}
	}
}
