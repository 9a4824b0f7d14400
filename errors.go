package clientstore

import "errors"

var (
	// ErrExpiryNotFuture is returned when a session expiry is written with
	// a timestamp that is not in the future.
	ErrExpiryNotFuture = errors.New("session expiry must be in the future")
	// ErrNotSerializable is returned when a value cannot be JSON-encoded.
	// This is a programmer error and is raised before any I/O is attempted.
	ErrNotSerializable = errors.New("value is not JSON-serializable")
	// ErrNotJSON marks a stored value that does not parse as JSON. The raw
	// string remains readable through GetString.
	ErrNotJSON = errors.New("stored value is not valid JSON")
	// ErrTokenMalformed is returned when a session cannot be derived from
	// an access token because the token does not parse as a JWT.
	ErrTokenMalformed = errors.New("access token malformed")
	// ErrTokenNoExpiry is returned when an access token carries no exp
	// claim to derive the local session horizon from.
	ErrTokenNoExpiry = errors.New("access token has no expiry claim")
	// ErrQueueCorrupt marks an offline queue blob that no longer parses.
	// Mutations are never appended over a corrupt queue; the blob stays on
	// disk for inspection.
	ErrQueueCorrupt = errors.New("offline queue corrupt")
	// ErrStorageRequired is returned by Build when neither a fast store nor
	// a fallback was configured.
	ErrStorageRequired = errors.New("at least one storage backend required")
)
