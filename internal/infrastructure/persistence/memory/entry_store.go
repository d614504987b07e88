package memory

import (
	"context"
	"sync"

	"github.com/carbonview/energy-review/internal/application/port"
	"github.com/carbonview/energy-review/internal/domain/entity"
)

// EntryStore implements port.EntryStore in memory. Entries are indexed
// both by id and by their (owner, page key, year) upsert key.
type EntryStore struct {
	mu    sync.RWMutex
	byID  map[string]entity.EnergyEntry
	byKey map[entity.EntryKey]string
}

// NewEntryStore creates an empty entry store
func NewEntryStore() *EntryStore {
	return &EntryStore{
		byID:  make(map[string]entity.EnergyEntry),
		byKey: make(map[entity.EntryKey]string),
	}
}

// GetByKey returns the entry stored under an upsert key, or nil
func (s *EntryStore) GetByKey(ctx context.Context, key entity.EntryKey) (*entity.EnergyEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byKey[key]
	if !ok {
		return nil, nil
	}
	entry := s.byID[id]
	return &entry, nil
}

// Put stores the entry, replacing any previous value under the same key
func (s *EntryStore) Put(ctx context.Context, entry *entity.EnergyEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[entry.ID] = *entry
	s.byKey[entry.Key()] = entry.ID
	return nil
}

// Delete removes the entry with the given id, if present
func (s *EntryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.byID[id]
	if !ok {
		return nil
	}
	delete(s.byID, id)
	delete(s.byKey, entry.Key())
	return nil
}

// Verify interface compliance
var _ port.EntryStore = (*EntryStore)(nil)
