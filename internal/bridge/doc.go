// Package bridge defines the persistence contract the event store writes
// through, and its implementations.
//
// The contract is a flat key-value store of strings, mirroring the host
// storage the calendar was designed against: Get returns a value or reports
// absence, Set overwrites. The store keeps the whole encoded collection
// under a single key, so bridges never see partial updates.
//
// Implementations:
//   - Memory: map-backed, for tests and ephemeral runs
//   - File: a single JSON document on disk, written via temp-file-then-rename
//   - SQLite: a kv table in WAL mode, for embeddings that want real storage
//
// All implementations are safe for use from the store's single-writer
// operations; Memory and File additionally guard themselves with a mutex so
// concurrent readers (the HTTP surface) never observe torn values.
package bridge
