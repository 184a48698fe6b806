package storage

import "sync"

// MemoryStore keeps values in a map. Nothing survives the process.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Available() bool {
	return probe(m)
}

// UnavailableStore rejects every operation. It stands in when no backend could be opened.
type UnavailableStore struct{}

func (UnavailableStore) Get(string) ([]byte, error) { return nil, ErrUnavailable }
func (UnavailableStore) Set(string, []byte) error   { return ErrUnavailable }
func (UnavailableStore) Remove(string) error        { return ErrUnavailable }
func (UnavailableStore) Available() bool            { return false }
