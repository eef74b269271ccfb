package repository

import (
	"context"
	"sync"
)

type memoryDocs struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore returns a process-local Store. Documents go through the same
// codec as the durable drivers, so behaviour matches them except for durability.
func NewMemoryStore() Store {
	return codecStore{docs: &memoryDocs{docs: make(map[string][]byte)}}
}

func (m *memoryDocs) get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (m *memoryDocs) put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), data...)
	return nil
}

func (m *memoryDocs) ping(context.Context) error { return nil }
