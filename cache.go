package clientstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CachePut stores value under key with a relative time-to-live. A ttl of
// zero (or less) stores the entry without an expiry; it stays until
// explicitly removed or the whole store is wiped.
func (s *Store) CachePut(ctx context.Context, key CacheKey, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}

	entry := cacheEntry{Data: data}
	if ttl > 0 {
		deadline := s.now().Add(ttl).UnixMilli()
		entry.ExpiresAt = &deadline
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}
	return s.setRaw(ctx, key.raw(), string(encoded))
}

// CacheGet reads key into dest. Expiry is judged lazily at read time: an
// entry whose deadline has arrived is physically removed and reported as a
// miss. An entry that no longer parses is treated the same way, so a
// corrupt slot heals itself on the next read.
func (s *Store) CacheGet(ctx context.Context, key CacheKey, dest any) bool {
	raw, ok, _ := s.getRaw(ctx, key.raw())
	if !ok {
		s.metricInc(MetricCacheMiss)
		return false
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		s.evictCache(ctx, key, fmt.Errorf("%w: %v", ErrNotJSON, err))
		return false
	}

	if entry.ExpiresAt != nil && s.now().UnixMilli() >= *entry.ExpiresAt {
		s.evictCache(ctx, key, nil)
		return false
	}

	if err := json.Unmarshal(entry.Data, dest); err != nil {
		s.metricInc(MetricDeserializationFailure)
		s.metricInc(MetricCacheMiss)
		s.report(ctx, "cache_decode", key.raw(), fmt.Errorf("%w: %v", ErrNotJSON, err))
		return false
	}

	s.metricInc(MetricCacheHit)
	return true
}

// CacheRemove deletes key from the cache. Removing an absent entry is not
// an error.
func (s *Store) CacheRemove(ctx context.Context, key CacheKey) error {
	return s.deleteRaw(ctx, key.raw())
}

func (s *Store) evictCache(ctx context.Context, key CacheKey, cause error) {
	s.metricInc(MetricCacheEviction)
	s.metricInc(MetricCacheMiss)
	if cause != nil {
		s.report(ctx, "cache_evict", key.raw(), cause)
	}
	_ = s.deleteRaw(ctx, key.raw())
}
