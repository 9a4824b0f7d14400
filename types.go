package clientstore

import (
	"encoding/json"
	"io"
	"time"

	internalaudit "github.com/medrex/clientstore/internal/audit"
	internalmetrics "github.com/medrex/clientstore/internal/metrics"
)

// Platform roles recognized across MedRex clients. The persistence layer
// never branches on them; they exist so callers share one vocabulary.
const (
	RolePatient       = "patient"
	RoleDoctor        = "doctor"
	RoleAdmin         = "admin"
	RolePharmacist    = "pharmacist"
	RoleLabTechnician = "lab_technician"
)

// SessionRecord groups the three fields that define an authenticated
// session. All three are written together at login and removed together at
// logout; no partial combination is ever observable.
type SessionRecord struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// UserProfile is the signed-in user's identity as issued by the API layer.
// The persistence layer serializes it as a whole and never inspects
// individual fields; SetUser fully replaces any prior profile.
type UserProfile struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// QueuedMutation is one pending write captured while the backend was
// unreachable. The queue is append-only from the producer side and FIFO:
// mutations may be order-dependent (create-then-update), so insertion order
// is preserved until the external replay routine removes entries.
type QueuedMutation struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt int64           `json:"enqueued_at"`
}

// cacheEntry is the stored envelope for one TTL cache slot. A nil expiry
// means the entry is valid until explicitly removed.
type cacheEntry struct {
	Data      json.RawMessage `json:"data"`
	ExpiresAt *int64          `json:"expires_at"`
}

// StorageEvent is a structured record emitted by the store's audit
// dispatcher whenever an operation degrades or a lifecycle composite runs.
type StorageEvent = internalaudit.Event

// Sink receives [StorageEvent] values from the store's audit dispatcher.
type Sink = internalaudit.Sink

// NoOpSink is a [Sink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [Sink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is a [Sink] that writes JSON-encoded events to an
// [io.Writer], one object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	// MetricReadError counts reads that failed on the bound backend.
	MetricReadError = internalmetrics.MetricReadError
	// MetricWriteError counts writes that failed on the bound backend.
	MetricWriteError = internalmetrics.MetricWriteError
	// MetricDeleteError counts deletes that failed on the bound backend.
	MetricDeleteError = internalmetrics.MetricDeleteError
	// MetricFallbackRead counts reads served by the alternate store.
	MetricFallbackRead = internalmetrics.MetricFallbackRead
	// MetricFallbackWrite counts writes served by the alternate store.
	MetricFallbackWrite = internalmetrics.MetricFallbackWrite
	// MetricFallbackDelete counts deletes served by the alternate store.
	MetricFallbackDelete = internalmetrics.MetricFallbackDelete
	// MetricDeserializationFailure counts stored values that failed to
	// decode as their expected shape.
	MetricDeserializationFailure = internalmetrics.MetricDeserializationFailure
	// MetricCacheHit counts cache reads that returned fresh data.
	MetricCacheHit = internalmetrics.MetricCacheHit
	// MetricCacheMiss counts cache reads that found nothing usable.
	MetricCacheMiss = internalmetrics.MetricCacheMiss
	// MetricCacheEviction counts lazy evictions of expired or corrupt
	// entries.
	MetricCacheEviction = internalmetrics.MetricCacheEviction
	// MetricQueueAppend counts offline mutations enqueued.
	MetricQueueAppend = internalmetrics.MetricQueueAppend
	// MetricQueueRemove counts offline mutations removed by id.
	MetricQueueRemove = internalmetrics.MetricQueueRemove
	// MetricQueueClear counts full queue clears.
	MetricQueueClear = internalmetrics.MetricQueueClear
	// MetricQueueCorrupt counts reads of an unparseable queue blob.
	MetricQueueCorrupt = internalmetrics.MetricQueueCorrupt
	// MetricSessionBegin counts sessions written via BeginSession.
	MetricSessionBegin = internalmetrics.MetricSessionBegin
	// MetricSessionCleared counts ClearSession composites.
	MetricSessionCleared = internalmetrics.MetricSessionCleared
	// MetricAuthCleared counts ClearAuth composites.
	MetricAuthCleared = internalmetrics.MetricAuthCleared
	// MetricStoreWiped counts ClearAll composites.
	MetricStoreWiped = internalmetrics.MetricStoreWiped
)

// Metrics holds the store's atomic counters.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all counters.
type MetricsSnapshot = internalmetrics.Snapshot
