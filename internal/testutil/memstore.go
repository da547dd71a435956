package testutil

import (
	"context"
	"sync"

	"github.com/clangoi/judotimer/internal/errors"
)

// MemoryStore is an in-memory record store for tests. Setting FailPut makes
// every Put fail with that error.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]byte
	puts    int

	FailPut error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

// Get returns a copy of the record or errors.ErrRecordNotFound.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.records[key]
	if !ok {
		return nil, errors.Wrapf(errors.ErrRecordNotFound, "record %s", key)
	}
	return append([]byte(nil), data...), nil
}

// Put stores a copy of data under key.
func (m *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.FailPut != nil {
		return m.FailPut
	}
	m.records[key] = append([]byte(nil), data...)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// Puts returns the number of Put calls, failed ones included.
func (m *MemoryStore) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

// Has reports whether key holds a record.
func (m *MemoryStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.records[key]
	return ok
}
