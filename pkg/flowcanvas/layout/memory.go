package layout

import "sync"

// MemoryStore keeps preferences in memory.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]Prefs
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Prefs)}
}

// Load implements Store.
func (m *MemoryStore) Load(key string) (Prefs, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Prefs{}, ErrStoreClosed
	}
	p, ok := m.data[key]
	if !ok {
		return Prefs{}, ErrNotFound
	}
	return p, nil
}

// Save implements Store.
func (m *MemoryStore) Save(key string, p Prefs) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	p.Sizes = p.Sizes.Clamp()
	m.data[key] = p
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.data, key)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}
