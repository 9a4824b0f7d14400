// Package backend implements the physical key-value stores behind the
// clientstore façade and the one-shot selection between them.
//
// # Components
//
//   - [Backend] is the uniform asynchronous contract every physical store
//     satisfies (get, set, delete, keys, clear).
//   - [FileBackend] is the fast path: a synchronous, process-local snapshot
//     file with the full keyspace held in memory.
//   - [RedisBackend] is the universal fallback: a key-prefixed Redis store.
//   - [MemoryBackend] is a goroutine-safe in-memory store used as the test
//     substitute.
//   - [Select] probes the fast constructor exactly once per process and
//     binds permanently; there is no per-call re-probing and no mid-session
//     retry of the fast store.
//
// # Architecture boundaries
//
// This package owns raw string persistence only. It does NOT serialize
// structured values, enforce TTLs, or know which keys exist; those
// responsibilities belong to the clientstore root package.
//
// # What this package must NOT do
//
//   - Import clientstore (no import cycles).
//   - Retry failed operations; the façade owns the compatibility fallback.
//   - Treat a missing key as anything other than [ErrNotFound].
package backend
