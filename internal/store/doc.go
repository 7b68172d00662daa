// Package store owns the authoritative in-memory event collection and its
// synchronization with the persistence bridge.
//
// The collection is an ordered sequence: insertion order is preserved and
// never re-sorted by date. Lifecycle:
//
//  1. Load() populates the collection once from the bridge (empty if the
//     bridge holds nothing). Load never writes back.
//  2. EnableAutosave() arms persistence. The load-then-arm split makes the
//     "don't re-save what we just loaded" rule an explicit state transition
//     instead of a hidden first-render flag.
//  3. Add/Update/Delete mutate the collection and, once armed, re-encode and
//     persist the full collection before returning. A save triggered by a
//     mutation always observes that mutation.
//
// Event ids are assigned from the injected clock's current time in
// milliseconds since epoch. Two events created within the same millisecond
// collide; accepted for a single-user tool.
//
// A bridge write failure is returned to the caller but leaves the in-memory
// collection correct and usable.
package store
