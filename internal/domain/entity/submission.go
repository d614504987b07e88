package entity

import (
	"fmt"
	"time"

	"github.com/carbonview/energy-review/internal/domain/review"
)

// SubmissionRecord is the reviewable unit: one energy-usage report for
// one user, category and year. Review fields stay empty until the first
// transition; everything else is payload carried through unchanged.
type SubmissionRecord struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId"`
	UserName       string        `json:"userName"`
	UserDepartment string        `json:"userDepartment"`
	CategoryID     string        `json:"categoryId"`
	CategoryName   string        `json:"categoryName"`
	Scope          int           `json:"scope"`
	Status         review.Status `json:"status"`
	SubmissionDate string        `json:"submissionDate"`
	ReviewDate     string        `json:"reviewDate,omitempty"`
	Amount         float64       `json:"amount"`
	Unit           string        `json:"unit"`
	CO2Emission    float64       `json:"co2Emission"`
	Reviewer       string        `json:"reviewer,omitempty"`
	Comments       string        `json:"comments,omitempty"`
	Priority       string        `json:"priority"`
	ReviewNotes    string        `json:"reviewNotes,omitempty"`
	ReviewedAt     string        `json:"reviewedAt,omitempty"`
	ReviewerID     string        `json:"reviewerId,omitempty"`
}

// TransitionEvent is the immutable record of one status change. Events
// are append-only; the ledger never mutates or deletes them.
type TransitionEvent struct {
	RecordID   string        `json:"id"`
	OldStatus  review.Status `json:"oldStatus"`
	NewStatus  review.Status `json:"newStatus"`
	Reason     string        `json:"reason,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
	ReviewerID string        `json:"reviewerId,omitempty"`
}

// ValidateRecords checks every record carries a legal review status.
// Snapshots containing any other status string must be rejected at the
// deserialization boundary, not silently accepted.
func ValidateRecords(records []SubmissionRecord) error {
	for _, record := range records {
		if _, err := review.Parse(record.Status.String()); err != nil {
			return fmt.Errorf("record %s: %w", record.ID, err)
		}
	}
	return nil
}

// Stats holds the current status counts across all records
type Stats struct {
	Submitted int `json:"submitted"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
}
