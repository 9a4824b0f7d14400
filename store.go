package clientstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/medrex/clientstore/backend"
	internalaudit "github.com/medrex/clientstore/internal/audit"
	internalmetrics "github.com/medrex/clientstore/internal/metrics"
)

// Store is the process-wide persistence and session layer. It is built once
// at startup through [Builder.Build], injected wherever identity or cached
// data is needed, and closed on shutdown.
//
// All methods are safe for concurrent use.
type Store struct {
	config    Config
	bound     backend.Backend
	alternate backend.Backend
	binding   backend.Binding
	audit     *internalaudit.Dispatcher
	metrics   *internalmetrics.Metrics
	queueMu   sync.Mutex
	now       func() time.Time
}

// Binding reports which physical store won the startup probe.
func (s *Store) Binding() backend.Binding {
	return s.binding
}

// MetricsSnapshot returns a point-in-time copy of the store's counters.
func (s *Store) MetricsSnapshot() MetricsSnapshot {
	if s == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return s.metrics.TakeSnapshot()
}

// AuditDropped reports how many storage events the dispatcher discarded
// because its buffer was full.
func (s *Store) AuditDropped() uint64 {
	if s == nil {
		return 0
	}
	return s.audit.Dropped()
}

// Close drains the audit dispatcher and releases both physical stores.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.audit.Close()
	_ = s.bound.Close()
	if s.alternate != nil {
		_ = s.alternate.Close()
	}
}

func (s *Store) metricInc(id MetricID) {
	s.metrics.Inc(id)
}

func (s *Store) report(ctx context.Context, op, key string, err error) {
	event := StorageEvent{
		Timestamp: s.now(),
		Op:        op,
		Key:       key,
		Backend:   s.binding.String(),
	}
	if err != nil {
		event.Error = err.Error()
	} else {
		event.Success = true
	}
	s.audit.Emit(ctx, event)
}

func (s *Store) reportFallback(ctx context.Context, op, key string) {
	s.audit.Emit(ctx, StorageEvent{
		Timestamp: s.now(),
		Op:        op,
		Key:       key,
		Backend:   s.binding.String(),
		Fallback:  true,
		Success:   true,
	})
}

// getRaw reads key from the bound store, retrying once against the
// alternate when the bound store fails with an I/O error. Some installs
// predate the one-shot backend selection and still hold keys written
// through the other physical store; the retry is a compatibility shim, not
// a general retry policy.
func (s *Store) getRaw(ctx context.Context, key string) (string, bool, error) {
	value, err := s.bound.Get(ctx, key)
	if err == nil {
		return value, true, nil
	}
	if errors.Is(err, backend.ErrNotFound) {
		return "", false, nil
	}

	s.metricInc(MetricReadError)
	s.report(ctx, "get", key, err)

	if s.alternate != nil {
		value, altErr := s.alternate.Get(ctx, key)
		if altErr == nil {
			s.metricInc(MetricFallbackRead)
			s.reportFallback(ctx, "get", key)
			return value, true, nil
		}
		if errors.Is(altErr, backend.ErrNotFound) {
			return "", false, nil
		}
		s.report(ctx, "get", key, altErr)
	}

	return "", false, err
}

func (s *Store) setRaw(ctx context.Context, key, value string) error {
	err := s.bound.Set(ctx, key, value)
	if err == nil {
		return nil
	}

	s.metricInc(MetricWriteError)
	s.report(ctx, "set", key, err)

	if s.alternate != nil {
		if altErr := s.alternate.Set(ctx, key, value); altErr == nil {
			s.metricInc(MetricFallbackWrite)
			s.reportFallback(ctx, "set", key)
			return nil
		} else {
			s.report(ctx, "set", key, altErr)
		}
	}

	return err
}

func (s *Store) deleteRaw(ctx context.Context, key string) error {
	err := s.bound.Delete(ctx, key)
	if err == nil {
		// The alternate may still hold a stale copy written before the
		// current binding; a leftover token there is as bad as one here.
		if s.alternate != nil {
			if altErr := s.alternate.Delete(ctx, key); altErr != nil {
				s.report(ctx, "delete", key, altErr)
			}
		}
		return nil
	}

	s.metricInc(MetricDeleteError)
	s.report(ctx, "delete", key, err)

	if s.alternate != nil {
		if altErr := s.alternate.Delete(ctx, key); altErr == nil {
			s.metricInc(MetricFallbackDelete)
			s.reportFallback(ctx, "delete", key)
		} else {
			s.report(ctx, "delete", key, altErr)
		}
	}

	return err
}

// GetString returns the raw stored value for key. Absent keys and degraded
// reads both report !ok; the difference is visible only through the audit
// sink and metrics.
func (s *Store) GetString(ctx context.Context, key StorageKey) (string, bool) {
	value, ok, _ := s.getRaw(ctx, key.raw())
	return value, ok
}

// SetString stores value verbatim under key.
func (s *Store) SetString(ctx context.Context, key StorageKey, value string) error {
	return s.setRaw(ctx, key.raw(), value)
}

// GetJSON decodes the stored value for key into dest. A value that does not
// parse as the expected shape reports false and stays readable through
// GetString; it is never destroyed by a failed decode.
func (s *Store) GetJSON(ctx context.Context, key StorageKey, dest any) bool {
	raw, ok, _ := s.getRaw(ctx, key.raw())
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.metricInc(MetricDeserializationFailure)
		s.report(ctx, "decode", key.raw(), fmt.Errorf("%w: %v", ErrNotJSON, err))
		return false
	}
	return true
}

// SetJSON serializes value and stores it under key. Unserializable input is
// a programmer error and is rejected before any I/O.
func (s *Store) SetJSON(ctx context.Context, key StorageKey, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}
	return s.setRaw(ctx, key.raw(), string(encoded))
}

// GetBool returns the stored flag for key; false when the key was never set
// or holds a non-truthy form.
func (s *Store) GetBool(ctx context.Context, key StorageKey) bool {
	value, ok := s.GetString(ctx, key)
	return ok && value == "true"
}

// SetBool stores the canonical string form of enabled under key.
func (s *Store) SetBool(ctx context.Context, key StorageKey, enabled bool) error {
	return s.setRaw(ctx, key.raw(), strconv.FormatBool(enabled))
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key StorageKey) error {
	return s.deleteRaw(ctx, key.raw())
}
