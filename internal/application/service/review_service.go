package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/application/bus"
	"github.com/carbonview/energy-review/internal/application/port"
	"github.com/carbonview/energy-review/internal/domain/entity"
	"github.com/carbonview/energy-review/internal/domain/review"
)

// Default identity stamped on transitions when the caller supplies none
const (
	DefaultReviewer   = "系統管理員"
	DefaultReviewerID = "admin_system"
)

// Result is the structured outcome of one status change. Domain failures
// are reported here rather than as errors so callers can branch without
// exception handling and bulk runs can collect them without aborting.
type Result struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Data    *entity.SubmissionRecord `json:"data,omitempty"`
	Error   review.ErrorCode         `json:"error,omitempty"`
}

// BulkResult partitions per-id outcomes of a bulk status change
type BulkResult struct {
	Successful []Result `json:"successful"`
	Failed     []Result `json:"failed"`
}

// ReviewService orchestrates submission status transitions
type ReviewService interface {
	ChangeStatus(ctx context.Context, id string, newStatus review.Status, reason, reviewerID string) Result
	BulkChangeStatus(ctx context.Context, ids []string, newStatus review.Status, reason, reviewerID string) BulkResult
	GetSubmissionStatus(id string) (review.Status, bool)
	GetAllSubmissions() []entity.SubmissionRecord
	GetSubmissionsByStatus(status review.Status) []entity.SubmissionRecord
	GetStatusHistory(id string) []entity.TransitionEvent
	GetAvailableTransitions(status review.Status) []review.Status
	CalculateStats() entity.Stats
	IsEditable(status review.Status) bool
	LockMessage(status review.Status) string
	Reset(ctx context.Context) error
	Hydrate(ctx context.Context)
}

// LatencyHook simulates collaborator latency between validation and
// commit. It exists purely as a test seam and is nil in production wiring.
type LatencyHook func(ctx context.Context)

type reviewServiceImpl struct {
	records   port.RecordStore
	history   port.HistoryLedger
	snapshots port.SnapshotStore
	bus       *bus.NotificationBus
	logger    *zap.Logger

	now     func() time.Time
	latency LatencyHook

	// mu serializes all read-modify-write cycles so no two transitions
	// against the same record can ever interleave; queries take the read
	// side so they never observe a half-applied transition.
	mu sync.RWMutex
}

// Option configures the review service
type Option func(*reviewServiceImpl)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *reviewServiceImpl) {
		s.now = now
	}
}

// WithLatencyHook injects a latency simulation between validation and commit
func WithLatencyHook(hook LatencyHook) Option {
	return func(s *reviewServiceImpl) {
		s.latency = hook
	}
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	records port.RecordStore,
	history port.HistoryLedger,
	snapshots port.SnapshotStore,
	notifications *bus.NotificationBus,
	logger *zap.Logger,
	opts ...Option,
) ReviewService {
	s := &reviewServiceImpl{
		records:   records,
		history:   history,
		snapshots: snapshots,
		bus:       notifications,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChangeStatus runs one transition end to end: validate, mutate, append
// history, persist the snapshot, then notify. The first failing check
// aborts with a structured result and no mutation anywhere.
func (s *reviewServiceImpl) ChangeStatus(ctx context.Context, id string, newStatus review.Status, reason, reviewerID string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records.Get(id)
	if !ok {
		return Result{
			Success: false,
			Message: "找不到指定的提交記錄",
			Error:   review.CodeSubmissionNotFound,
		}
	}

	oldStatus := record.Status

	if !review.IsValidTransition(oldStatus, newStatus) {
		return Result{
			Success: false,
			Message: fmt.Sprintf("無法從 %s 轉換為 %s", oldStatus.Label(), newStatus.Label()),
			Error:   review.CodeInvalidTransition,
		}
	}

	if newStatus == review.StatusRejected && isBlank(reason) {
		return Result{
			Success: false,
			Message: "退回狀態必須提供原因",
			Error:   review.CodeReasonRequired,
		}
	}

	if s.latency != nil {
		s.latency(ctx)
	}

	now := s.now()
	reviewer := DefaultReviewer
	resolvedReviewerID := DefaultReviewerID
	if reviewerID != "" {
		reviewer = reviewerID
		resolvedReviewerID = reviewerID
	}

	updated := record
	updated.Status = newStatus
	updated.ReviewDate = now.Format("2006-01-02")
	updated.Reviewer = reviewer
	updated.ReviewerID = resolvedReviewerID
	updated.Comments = reason
	updated.ReviewNotes = reason
	updated.ReviewedAt = now.Format(time.RFC3339)

	s.records.Put(updated)

	event := entity.TransitionEvent{
		RecordID:   id,
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		Reason:     reason,
		Timestamp:  now,
		ReviewerID: reviewerID,
	}
	s.history.Append(event)

	// Persist before publishing so subscribers that re-read storage
	// observe committed state. A failed persist is logged, not surfaced:
	// the in-memory store remains authoritative (original behavior).
	// Delivery runs under the write lock; listeners must consume the
	// event or the stores, never call back into this service.
	if err := s.snapshots.Save(ctx, s.records.All()); err != nil {
		s.logger.Error("Failed to persist snapshot after transition",
			zap.String("record_id", id), zap.Error(err))
	}

	s.bus.Publish(ctx, event)

	s.logger.Info("Status changed",
		zap.String("record_id", id),
		zap.String("from", oldStatus.String()),
		zap.String("to", newStatus.String()),
		zap.String("reviewer_id", resolvedReviewerID))

	return Result{
		Success: true,
		Message: fmt.Sprintf("已成功更新為 %s", newStatus.Label()),
		Data:    &updated,
	}
}

// BulkChangeStatus applies one transition per id, strictly sequentially.
// Each id is processed regardless of earlier failures; committed
// successes are never rolled back.
func (s *reviewServiceImpl) BulkChangeStatus(ctx context.Context, ids []string, newStatus review.Status, reason, reviewerID string) BulkResult {
	out := BulkResult{
		Successful: []Result{},
		Failed:     []Result{},
	}

	for _, id := range ids {
		result := s.ChangeStatus(ctx, id, newStatus, reason, reviewerID)
		if result.Success {
			out.Successful = append(out.Successful, result)
		} else {
			out.Failed = append(out.Failed, result)
		}
	}

	s.logger.Info("Bulk status change completed",
		zap.Int("requested", len(ids)),
		zap.Int("successful", len(out.Successful)),
		zap.Int("failed", len(out.Failed)))

	return out
}

// GetSubmissionStatus returns the current status of a record
func (s *reviewServiceImpl) GetSubmissionStatus(id string) (review.Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records.Get(id)
	if !ok {
		return "", false
	}
	return record.Status, true
}

// GetAllSubmissions returns every current record
func (s *reviewServiceImpl) GetAllSubmissions() []entity.SubmissionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records.All()
}

// GetSubmissionsByStatus filters records by current status
func (s *reviewServiceImpl) GetSubmissionsByStatus(status review.Status) []entity.SubmissionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records.ByStatus(status)
}

// GetStatusHistory returns the transition history of a record
func (s *reviewServiceImpl) GetStatusHistory(id string) []entity.TransitionEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.history.ByRecordID(id)
}

// GetAvailableTransitions returns the statuses reachable from the given one
func (s *reviewServiceImpl) GetAvailableTransitions(status review.Status) []review.Status {
	return review.AvailableTransitions(status)
}

// CalculateStats recounts current statuses across all records on every
// call. Counting is never cached incrementally, so stats cannot drift
// from store contents.
func (s *reviewServiceImpl) CalculateStats() entity.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats entity.Stats
	for _, record := range s.records.All() {
		switch record.Status {
		case review.StatusSubmitted:
			stats.Submitted++
		case review.StatusApproved:
			stats.Approved++
		case review.StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

// IsEditable reports whether the originating form may still be edited
func (s *reviewServiceImpl) IsEditable(status review.Status) bool {
	return status.IsEditable()
}

// LockMessage returns the user-facing explanation of the edit lock
func (s *reviewServiceImpl) LockMessage(status review.Status) string {
	return status.LockMessage()
}

// Reset discards all records and history, reseeds from fixtures and
// persists the fresh snapshot. Test and demo aid, not a production path.
func (s *reviewServiceImpl) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeds := entity.SeedSubmissions()
	s.records.ReplaceAll(seeds)
	s.history.Clear()

	if err := s.snapshots.Save(ctx, s.records.All()); err != nil {
		return fmt.Errorf("failed to persist seed snapshot: %w", err)
	}

	s.logger.Info("Store reset from seed data", zap.Int("records", len(seeds)))
	return nil
}

// Hydrate initializes the record store at startup: from the persisted
// snapshot when one exists, from seed fixtures otherwise. A corrupt
// snapshot is logged and falls back to seeds rather than failing startup.
func (s *reviewServiceImpl) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, found, err := s.snapshots.Load(ctx)
	if err != nil {
		s.logger.Error("Snapshot load failed, seeding fixtures", zap.Error(err))
		s.records.ReplaceAll(entity.SeedSubmissions())
		return
	}
	if !found {
		s.logger.Info("No snapshot found, seeding fixtures")
		s.records.ReplaceAll(entity.SeedSubmissions())
		return
	}

	s.records.ReplaceAll(records)
	s.logger.Info("Store hydrated from snapshot", zap.Int("records", len(records)))
}

func isBlank(str string) bool {
	return strings.TrimSpace(str) == ""
}
