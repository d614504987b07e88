package memory

import (
	"sync"

	"github.com/carbonview/energy-review/internal/application/port"
	"github.com/carbonview/energy-review/internal/domain/entity"
)

// HistoryLedger implements port.HistoryLedger with per-record event slices.
// Events are append-only; Clear is only reachable through the reset operation.
type HistoryLedger struct {
	mu     sync.RWMutex
	events map[string][]entity.TransitionEvent
}

// NewHistoryLedger creates an empty ledger
func NewHistoryLedger() *HistoryLedger {
	return &HistoryLedger{events: make(map[string][]entity.TransitionEvent)}
}

// Append records one transition event for its record
func (l *HistoryLedger) Append(event entity.TransitionEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events[event.RecordID] = append(l.events[event.RecordID], event)
}

// ByRecordID returns the transition history of a record in append order.
// Records with no history yield an empty, non-nil slice.
func (l *HistoryLedger) ByRecordID(id string) []entity.TransitionEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	events := l.events[id]
	out := make([]entity.TransitionEvent, len(events))
	copy(out, events)
	return out
}

// Clear discards all history
func (l *HistoryLedger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = make(map[string][]entity.TransitionEvent)
}

// Verify interface compliance
var _ port.HistoryLedger = (*HistoryLedger)(nil)
