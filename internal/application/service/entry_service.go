package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/application/port"
	"github.com/carbonview/energy-review/internal/domain/entity"
	"github.com/carbonview/energy-review/internal/domain/review"
)

// UpsertEntryInput is one energy report being created or re-saved.
// Payload holds page-specific extras (unit capacity, carbon rate, raw
// monthly quantities) that are stored verbatim, never interpreted here.
type UpsertEntryInput struct {
	OwnerID    string                 `json:"owner_id"`
	PageKey    string                 `json:"page_key"`
	PeriodYear int                    `json:"period_year"`
	Unit       string                 `json:"unit"`
	Monthly    map[string]float64     `json:"monthly"`
	Notes      string                 `json:"notes,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// UpsertResult carries the id of the created or updated entry
type UpsertResult struct {
	EntryID string `json:"entry_id"`
}

// EntryService decides the status and amount of entries being saved.
// Unlike status transitions, upsert is a single-record all-or-nothing
// operation, so its failures are returned as errors rather than as
// structured results.
type EntryService interface {
	UpsertEnergyEntry(ctx context.Context, input UpsertEntryInput, preserveStatus bool, initialStatus entity.EntryStatus) (*UpsertResult, error)
}

type entryServiceImpl struct {
	entries port.EntryStore
	logger  *zap.Logger
}

// NewEntryService creates a new EntryService
func NewEntryService(entries port.EntryStore, logger *zap.Logger) EntryService {
	return &entryServiceImpl{entries: entries, logger: logger}
}

// UpsertEnergyEntry creates or updates the entry stored under the
// (owner, page key, year) key. With preserveStatus set and a prior
// record present, the existing status wins and initialStatus is ignored;
// otherwise the entry carries initialStatus. All validation happens
// before any write.
func (s *entryServiceImpl) UpsertEnergyEntry(ctx context.Context, input UpsertEntryInput, preserveStatus bool, initialStatus entity.EntryStatus) (*UpsertResult, error) {
	if input.OwnerID == "" || input.PageKey == "" || input.PeriodYear == 0 {
		return nil, fmt.Errorf("%w: owner_id, page_key and period_year are required", review.ErrMissingParameters)
	}
	if initialStatus != entity.EntrySaved && initialStatus != entity.EntrySubmitted {
		return nil, fmt.Errorf("%w: initial status must be saved or submitted, got %q", review.ErrValidation, initialStatus)
	}

	category, ok := entity.CategoryFromPageKey(input.PageKey)
	if !ok {
		return nil, fmt.Errorf("%w: %q", review.ErrCategoryNotFound, input.PageKey)
	}

	// Drafts tolerate partial figures; a submit must carry clean ones.
	if initialStatus == entity.EntrySubmitted {
		if violations := ValidateMonthly(input.Monthly); len(violations) > 0 {
			return nil, fmt.Errorf("%w: %s", review.ErrValidation, strings.Join(violations, "; "))
		}
	}

	total := SumMonthly(input.Monthly)
	if total <= 0 && !entity.IsFileOnlyPage(input.PageKey) {
		return nil, fmt.Errorf("%w: 總使用量必須大於 0", review.ErrValidation)
	}

	key := entity.EntryKey{
		OwnerID:    input.OwnerID,
		PageKey:    input.PageKey,
		PeriodYear: input.PeriodYear,
	}
	existing, err := s.entries.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing entry: %w", err)
	}

	status := initialStatus
	if existing != nil && preserveStatus {
		status = existing.Status
	}

	now := time.Now()
	periodStart, periodEnd := entity.PeriodBounds(input.PeriodYear)
	entry := &entity.EnergyEntry{
		ID:          uuid.NewString(),
		OwnerID:     input.OwnerID,
		PageKey:     input.PageKey,
		Category:    category,
		PeriodYear:  input.PeriodYear,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Unit:        input.Unit,
		Amount:      total,
		Notes:       input.Notes,
		Payload: entity.EntryPayload{
			Monthly: input.Monthly,
			Notes:   input.Notes,
			Extra:   input.Payload,
		},
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing != nil {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	}

	if err := s.entries.Put(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to store entry: %w", err)
	}

	s.logger.Info("Energy entry upserted",
		zap.String("entry_id", entry.ID),
		zap.String("key", key.String()),
		zap.String("status", status.String()),
		zap.Float64("amount", total))

	return &UpsertResult{EntryID: entry.ID}, nil
}

// SumMonthly totals the monthly figures, counting only valid non-negative
// entries: NaN, infinite and negative values contribute zero instead of
// failing the whole report. The result is rounded to two decimal places.
func SumMonthly(monthly map[string]float64) float64 {
	sum := decimal.Zero
	for _, value := range monthly {
		if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(value))
	}
	return sum.Round(2).InexactFloat64()
}

// ValidateMonthly checks month keys fall in 1..12 and values are finite
// and non-negative, returning one message per violation.
func ValidateMonthly(monthly map[string]float64) []string {
	var errs []string
	for month, value := range monthly {
		n, err := strconv.Atoi(month)
		if err != nil || n < 1 || n > 12 {
			errs = append(errs, fmt.Sprintf("無效的月份: %s", month))
		}
		if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
			errs = append(errs, fmt.Sprintf("%s月的數值無效: %v", month, value))
		}
	}
	return errs
}
