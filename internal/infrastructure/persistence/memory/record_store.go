// Package memory provides the in-memory store implementations backing the
// review engine. All types are safe for concurrent use; write ordering
// across stores is the review service's responsibility.
package memory

import (
	"sort"
	"sync"

	"github.com/carbonview/energy-review/internal/application/port"
	"github.com/carbonview/energy-review/internal/domain/entity"
	"github.com/carbonview/energy-review/internal/domain/review"
)

// RecordStore implements port.RecordStore over a plain map
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]entity.SubmissionRecord
}

// NewRecordStore creates an empty record store
func NewRecordStore() *RecordStore {
	return &RecordStore{records: make(map[string]entity.SubmissionRecord)}
}

// Get returns the current record for an id
func (s *RecordStore) Get(id string) (entity.SubmissionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	return record, ok
}

// Put replaces the stored record wholesale
func (s *RecordStore) Put(record entity.SubmissionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
}

// All returns every record, ordered by id for stable output
func (s *RecordStore) All() []entity.SubmissionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.SubmissionRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByStatus returns the records currently carrying the given status
func (s *RecordStore) ByStatus(status review.Status) []entity.SubmissionRecord {
	out := []entity.SubmissionRecord{}
	for _, record := range s.All() {
		if record.Status == status {
			out = append(out, record)
		}
	}
	return out
}

// Len returns the number of stored records
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// ReplaceAll discards the current contents and installs the given records
func (s *RecordStore) ReplaceAll(records []entity.SubmissionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]entity.SubmissionRecord, len(records))
	for _, record := range records {
		s.records[record.ID] = record
	}
}

// Verify interface compliance
var _ port.RecordStore = (*RecordStore)(nil)
