// Package metrics implements the in-process counter block for the storage
// layer: cache hit/miss/eviction rates, fallback usage, degraded reads and
// writes, and queue activity.
//
// Counters are lock-free atomics padded to cache-line width. A disabled
// Metrics is nil and every operation on it is a no-op, so call sites never
// branch on configuration.
//
// # What this package must NOT do
//
//   - Import clientstore or any sibling internal package.
//   - Export anything beyond counters and snapshots (no exporters here).
package metrics
