package clientstore

import (
	"errors"
	"strings"
)

// Config defines the store's startup configuration.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	// FastStorePath is the directory holding the synchronous snapshot
	// file. Empty disables the fast-path probe entirely.
	FastStorePath string
	// RedisPrefix namespaces every key written through the Redis fallback.
	RedisPrefix string
	Audit       AuditConfig
	Metrics     MetricsConfig
}

// AuditConfig controls the async storage-event dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process counter block.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		RedisPrefix: "mcs",
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for values that would corrupt the
// keyspace or stall the dispatcher.
func (c Config) Validate() error {
	if strings.ContainsAny(c.RedisPrefix, " \t\n") {
		return errors.New("redis prefix must not contain whitespace")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must not be negative")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	// All fields are value types today; the clone keeps Builder reuse from
	// aliasing the built store's config.
	return cfg
}
