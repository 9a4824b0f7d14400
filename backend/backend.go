package backend

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key was never written or was
// deleted. Callers above this layer translate it to an absent value; it is
// never treated as a failure.
var ErrNotFound = errors.New("key not found")

// ErrUnavailable wraps backend-level I/O failures (unreachable Redis,
// unwritable snapshot file). The façade may retry the operation once against
// the alternate store when one is bound.
var ErrUnavailable = errors.New("storage backend unavailable")

// Backend is the uniform asynchronous key-value contract satisfied by every
// physical store. Values are raw strings; booleans travel in their canonical
// "true"/"false" forms and structured values as JSON, both encoded by the
// façade.
//
// Implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the last written value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set durably persists value under key, overwriting any prior value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns every key currently managed by this backend.
	Keys(ctx context.Context) ([]string, error)

	// Clear wipes every key this backend manages. Reserved for top-level
	// lifecycle operations; feature code never calls it directly.
	Clear(ctx context.Context) error

	// Close releases resources held by the backend.
	Close() error
}
