package testutil

import (
	"sync"
)

// ScriptedBridge is a Bridge double that records every call and can be
// programmed to fail. It wraps a plain map so tests can seed and inspect
// stored values directly.
type ScriptedBridge struct {
	mu     sync.Mutex
	values map[string]string

	// GetErr / SetErr, when non-nil, are returned by the corresponding
	// operation instead of touching the map.
	GetErr error
	SetErr error

	// SetCalls counts Set invocations, including failed ones.
	SetCalls int
}

// NewScriptedBridge creates an empty scripted bridge.
func NewScriptedBridge() *ScriptedBridge {
	return &ScriptedBridge{values: make(map[string]string)}
}

// Seed stores a value without counting as a Set call.
func (b *ScriptedBridge) Seed(key, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
}

// Stored returns the value currently held under key.
func (b *ScriptedBridge) Stored(key string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	return v, ok
}

// Get implements bridge.Bridge.
func (b *ScriptedBridge) Get(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.GetErr != nil {
		return "", false, b.GetErr
	}
	v, ok := b.values[key]
	return v, ok, nil
}

// Set implements bridge.Bridge.
func (b *ScriptedBridge) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.SetCalls++
	if b.SetErr != nil {
		return b.SetErr
	}
	b.values[key] = value
	return nil
}
