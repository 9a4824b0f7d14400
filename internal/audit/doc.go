// Package audit implements async event dispatching for storage-layer
// degradations and lifecycle operations.
//
// # Components
//
//   - [Sink] — interface for event consumers (channel, JSON writer, no-op).
//   - [Dispatcher] — buffered async relay with drop-if-full / block-if-full
//     semantics.
//   - [Event] — structured record with timestamp, operation, key, backend
//     binding, and error text.
//
// # Architecture boundaries
//
// This package owns event buffering and sink delivery. It does NOT decide
// which events to emit — that responsibility belongs to the Store façade.
//
// # What this package must NOT do
//
//   - Filter or suppress events based on business logic.
//   - Import clientstore or any sibling internal package.
//   - Perform I/O beyond what a caller-supplied Sink does.
package audit
