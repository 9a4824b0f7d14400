package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "mcs"

// RedisBackend is the universal fallback store: a key-prefixed Redis
// keyspace reachable from any build of the client. It is slower than the
// snapshot file but has no platform requirements.
type RedisBackend struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisBackend creates a Redis-backed store. prefix sets the key
// namespace; empty selects the default.
func NewRedisBackend(client redis.UniversalClient, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisBackend{
		redis:  client,
		prefix: prefix,
	}
}

func (b *RedisBackend) key(k string) string {
	return b.prefix + ":" + k
}

// Get returns the stored value for key. redis.Nil maps to ErrNotFound; any
// other failure wraps ErrUnavailable.
func (b *RedisBackend) Get(ctx context.Context, key string) (string, error) {
	value, err := b.redis.Get(ctx, b.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, nil
}

// Set stores value under key with no expiration; entry lifetimes are the
// façade's concern.
func (b *RedisBackend) Set(ctx context.Context, key, value string) error {
	if err := b.redis.Set(ctx, b.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := b.redis.Del(ctx, b.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Keys scans the prefixed keyspace and returns the bare key names.
func (b *RedisBackend) Keys(ctx context.Context) ([]string, error) {
	pattern := b.prefix + ":*"
	var (
		cursor uint64
		keys   []string
	)

	for {
		batch, next, err := b.redis.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		for _, full := range batch {
			keys = append(keys, strings.TrimPrefix(full, b.prefix+":"))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

// Clear deletes every key under this backend's prefix. Other prefixes in the
// same Redis instance are untouched.
func (b *RedisBackend) Clear(ctx context.Context) error {
	keys, err := b.Keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, b.key(k))
	}
	if err := b.redis.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close is a no-op; the Redis client is owned by the caller.
func (b *RedisBackend) Close() error {
	return nil
}
