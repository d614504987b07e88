package entity

import (
	"fmt"
	"time"
)

// EntryStatus is the status vocabulary of the entries collaborator.
// It includes the pre-review draft state "saved", which never enters
// the review engine; keep it a distinct type from review.Status so the
// two vocabularies cannot be mixed up at compile time.
type EntryStatus string

const (
	EntrySaved     EntryStatus = "saved"
	EntrySubmitted EntryStatus = "submitted"
	EntryApproved  EntryStatus = "approved"
	EntryRejected  EntryStatus = "rejected"
)

var validEntryStatuses = map[EntryStatus]bool{
	EntrySaved:     true,
	EntrySubmitted: true,
	EntryApproved:  true,
	EntryRejected:  true,
}

// IsValid returns true if the status is a known entry status
func (s EntryStatus) IsValid() bool {
	return validEntryStatuses[s]
}

// String returns the string representation of the entry status
func (s EntryStatus) String() string {
	return string(s)
}

// EnergyEntry is one stored energy report on the entries side of the
// system, keyed by (owner, page key, period year).
type EnergyEntry struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner_id"`
	PageKey     string       `json:"page_key"`
	Category    string       `json:"category"`
	PeriodYear  int          `json:"period_year"`
	PeriodStart string       `json:"period_start"`
	PeriodEnd   string       `json:"period_end"`
	Unit        string       `json:"unit"`
	Amount      float64      `json:"amount"`
	Notes       string       `json:"notes,omitempty"`
	Payload     EntryPayload `json:"payload"`
	Status      EntryStatus  `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// EntryPayload carries the raw monthly figures alongside free-form notes
// and any extra page-specific fields the caller supplied (unit capacity,
// carbon rate and the like). Extra fields pass through unchanged.
type EntryPayload struct {
	Monthly map[string]float64     `json:"monthly"`
	Notes   string                 `json:"notes,omitempty"`
	Extra   map[string]interface{} `json:"extra,omitempty"`
}

// EntryKey identifies an entry for upsert lookups
type EntryKey struct {
	OwnerID    string
	PageKey    string
	PeriodYear int
}

// String renders the key in a stable, loggable form
func (k EntryKey) String() string {
	return fmt.Sprintf("%s/%s/%d", k.OwnerID, k.PageKey, k.PeriodYear)
}

// Key returns the upsert key of the entry
func (e *EnergyEntry) Key() EntryKey {
	return EntryKey{OwnerID: e.OwnerID, PageKey: e.PageKey, PeriodYear: e.PeriodYear}
}

// PeriodBounds returns the ISO dates spanning a reporting year
func PeriodBounds(year int) (start, end string) {
	return fmt.Sprintf("%d-01-01", year), fmt.Sprintf("%d-12-31", year)
}
