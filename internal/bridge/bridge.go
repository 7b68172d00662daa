package bridge

import "sync"

// EventsKey is the single key under which the encoded event collection is
// persisted.
const EventsKey = "events"

// Bridge is the persistence contract: an opaque get/set string store.
//
// Get reports absence through the second return value rather than an error;
// a missing key is an expected state (first run), not a failure.
type Bridge interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Memory is a map-backed Bridge. The zero value is not usable; construct
// with NewMemory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory bridge.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set overwrites the value stored under key.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Keys returns the stored keys in no particular order. Test helper surface;
// production code addresses keys explicitly.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}
