// Package harness runs YAML-defined calendar scenarios against a fresh
// store and evaluates assertions on the resulting collection, day buckets,
// and persisted payload.
//
// Scenarios use a deterministic clock, so event ids and persisted bytes are
// reproducible across runs. That makes trace output suitable for golden
// file comparison.
package harness
