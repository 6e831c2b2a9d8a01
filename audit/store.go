// Package audit captures rendered provenance documents into pluggable
// storage and optionally ships them to a remote ingestion endpoint. It is
// the only I/O surface of the library; the node core stays pure and knows
// nothing about it.
package audit

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Store persists audit records keyed by record ID. Implementations are
// stateless between calls and must be safe for concurrent use.
type Store interface {
	// List returns all stored record IDs.
	List(ctx context.Context) ([]string, error)
	// Load retrieves records for the specified IDs.
	Load(ctx context.Context, ids ...string) ([]Record, error)
	// Save persists records, creating or overwriting as needed.
	Save(ctx context.Context, records ...Record) error
	// Delete removes records. Missing IDs are ignored.
	Delete(ctx context.Context, ids ...string) error
}

// memoryStore implements Store with an in-process map. Records are lost when
// the process exits; suitable for tests and short-lived tooling.
type memoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an in-memory Store. It is registered by default
// under the name "memory".
func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string]Record)}
}

func (m *memoryStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memoryStore) Load(_ context.Context, ids ...string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		rec, exists := m.records[id]
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (m *memoryStore) Save(_ context.Context, records ...Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range records {
		m.records[rec.ID] = rec
	}
	return nil
}

func (m *memoryStore) Delete(_ context.Context, ids ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		delete(m.records, id)
	}
	return nil
}

// stores is the global registry of named Store implementations. The
// "memory" store is registered by default.
var (
	stores = map[string]Store{
		"memory": NewMemoryStore(),
	}
	storesMu sync.RWMutex
)

// GetStore retrieves a Store by name from the registry.
func GetStore(name string) (Store, error) {
	storesMu.RLock()
	defer storesMu.RUnlock()

	store, exists := stores[name]
	if !exists {
		return nil, fmt.Errorf("unknown audit store: %s", name)
	}
	return store, nil
}

// RegisterStore adds a named Store to the global registry. Call before
// resolving configuration that references the name.
func RegisterStore(name string, store Store) {
	storesMu.Lock()
	defer storesMu.Unlock()

	stores[name] = store
}
