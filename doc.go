// Package clientstore provides the local persistence and session layer for
// MedRex clients: durable storage for authentication tokens, session
// lifetime, the signed-in user's profile, UI preferences, push tokens, a
// TTL-based response cache, and a FIFO queue of mutations captured while the
// backend was unreachable.
//
// The package runs on top of two incompatible physical stores: a fast
// synchronous snapshot file on platforms that have a writable data
// directory, and a slower universal Redis keyspace everywhere else. The
// binding is decided exactly once at [Builder.Build] and never changes for
// the life of the process.
//
// # Architecture boundaries
//
// clientstore is the public surface. It exposes [Store], [Builder],
// [Config], and value types (SessionRecord, UserProfile, QueuedMutation).
// Physical stores live in the backend sub-package; event buffering and
// counters live under internal/ and are re-exported as aliases only.
//
// # What this package must NOT do
//
//   - Construct or parse HTTP requests; tokens and profiles arrive from the
//     API layer already issued.
//   - Inspect the fields of a stored profile or mutation payload.
//   - Surface a storage failure to a screen: reads degrade to absent values
//     and the failure is reported through the audit sink.
//
// # Failure contract
//
// Not-found is never an error. Read methods return a value with an ok flag
// and swallow backend I/O failures after one retry against the alternate
// store. Write and delete methods return the wrapped backend error after the
// same single retry, so callers that can re-queue work get a real signal.
package clientstore
