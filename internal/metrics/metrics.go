package metrics

import "sync/atomic"

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID uint16

const (
	MetricReadError MetricID = iota
	MetricWriteError
	MetricDeleteError
	MetricFallbackRead
	MetricFallbackWrite
	MetricFallbackDelete
	MetricDeserializationFailure
	MetricCacheHit
	MetricCacheMiss
	MetricCacheEviction
	MetricQueueAppend
	MetricQueueRemove
	MetricQueueClear
	MetricQueueCorrupt
	MetricSessionBegin
	MetricSessionCleared
	MetricAuthCleared
	MetricStoreWiped
	MetricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value atomic.Uint64
	_     [cacheLineSize - 8]byte
}

// Config controls metrics collection.
type Config struct {
	Enabled bool
}

// Metrics holds atomic counters. A nil *Metrics is valid and inert.
type Metrics struct {
	counters [MetricIDCount]paddedCounter
}

// Snapshot is a point-in-time deep copy of all counters.
type Snapshot struct {
	Counters map[MetricID]uint64
}

// New creates a Metrics instance, or nil when disabled.
func New(cfg Config) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	return &Metrics{}
}

// Inc increments the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= MetricIDCount {
		return
	}
	m.counters[id].value.Add(1)
}

// Get returns the current value of the counter for id.
func (m *Metrics) Get(id MetricID) uint64 {
	if m == nil || id >= MetricIDCount {
		return 0
	}
	return m.counters[id].value.Load()
}

// TakeSnapshot copies every counter into a fresh Snapshot.
func (m *Metrics) TakeSnapshot() Snapshot {
	snap := Snapshot{Counters: make(map[MetricID]uint64, MetricIDCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < MetricIDCount; id++ {
		snap.Counters[id] = m.counters[id].value.Load()
	}
	return snap
}
