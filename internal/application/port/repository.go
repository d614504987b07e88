package port

import (
	"context"

	"github.com/carbonview/energy-review/internal/domain/entity"
	"github.com/carbonview/energy-review/internal/domain/review"
)

// RecordStore is the authoritative in-memory map of current submission
// state. It stores values, not pointers: a Put replaces the record wholesale.
type RecordStore interface {
	Get(id string) (entity.SubmissionRecord, bool)
	Put(record entity.SubmissionRecord)
	All() []entity.SubmissionRecord
	ByStatus(status review.Status) []entity.SubmissionRecord
	Len() int
	ReplaceAll(records []entity.SubmissionRecord)
}

// HistoryLedger is the append-only per-record transition log
type HistoryLedger interface {
	Append(event entity.TransitionEvent)
	ByRecordID(id string) []entity.TransitionEvent
	Clear()
}

// EntryStore persists energy entries for the upsert coordinator,
// keyed by (owner, page key, period year).
type EntryStore interface {
	GetByKey(ctx context.Context, key entity.EntryKey) (*entity.EnergyEntry, error)
	Put(ctx context.Context, entry *entity.EnergyEntry) error
	Delete(ctx context.Context, id string) error
}
