package clientstore

import (
	"errors"
	"time"

	"github.com/medrex/clientstore/backend"
	internalaudit "github.com/medrex/clientstore/internal/audit"
	internalmetrics "github.com/medrex/clientstore/internal/metrics"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Store]. Construction is allocation-only until Build;
// no I/O happens before the backend probe runs there.
type Builder struct {
	config   Config
	redis    redis.UniversalClient
	fast     func() (backend.Backend, error)
	fallback backend.Backend
	sink     Sink
	built    bool
}

// New returns a Builder carrying the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithFastStore sets the snapshot directory for the fast synchronous store.
func (b *Builder) WithFastStore(dir string) *Builder {
	b.config.FastStorePath = dir
	return b
}

// WithFastBackend overrides the fast-path probe with a custom constructor.
// The probe still runs exactly once at Build.
func (b *Builder) WithFastBackend(open func() (backend.Backend, error)) *Builder {
	b.fast = open
	return b
}

// WithRedis binds the universal fallback to the given Redis client. The
// client is owned by the caller and is not closed by the store.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithFallback overrides the fallback store directly. Tests substitute an
// in-memory backend here.
func (b *Builder) WithFallback(be backend.Backend) *Builder {
	b.fallback = be
	return b
}

// WithAuditSink sets the consumer for storage events.
func (b *Builder) WithAuditSink(sink Sink) *Builder {
	b.sink = sink
	return b
}

// WithMetricsEnabled toggles the in-process counter block.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, runs the one-shot backend probe, and
// returns the long-lived store. A Builder can build at most once.
func (b *Builder) Build() (*Store, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fast := b.fast
	if fast == nil && cfg.FastStorePath != "" {
		dir := cfg.FastStorePath
		fast = func() (backend.Backend, error) {
			return backend.NewFileBackend(dir)
		}
	}

	fallback := b.fallback
	if fallback == nil && b.redis != nil {
		fallback = backend.NewRedisBackend(b.redis, cfg.RedisPrefix)
	}

	if fast == nil && fallback == nil {
		return nil, ErrStorageRequired
	}

	selection, probeErr := backend.Select(fast, fallback)
	if selection.Bound == nil {
		// The fast probe failed and no fallback was configured.
		if probeErr != nil {
			return nil, probeErr
		}
		return nil, ErrStorageRequired
	}

	store := &Store{
		config:    cfg,
		bound:     selection.Bound,
		alternate: selection.Alternate,
		binding:   selection.Binding,
		audit: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.sink),
		metrics: internalmetrics.New(internalmetrics.Config{
			Enabled: cfg.Metrics.Enabled,
		}),
		now: time.Now,
	}

	if probeErr != nil {
		// Record why the fast path was skipped; the fallback binding is a
		// normal outcome, not a failure.
		store.report(nil, "select", "", probeErr)
	}

	b.built = true

	return store, nil
}
