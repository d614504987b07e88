package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/application/service"
	"github.com/carbonview/energy-review/internal/domain/entity"
	"github.com/carbonview/energy-review/internal/domain/review"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	reviewService service.ReviewService
	entryService  service.EntryService
	logger        *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	reviewService service.ReviewService,
	entryService service.EntryService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		reviewService: reviewService,
		entryService:  entryService,
		logger:        logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ChangeStatusRequest represents the body of POST /submissions/:id/status
type ChangeStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	Reason     string `json:"reason"`
	ReviewerID string `json:"reviewer_id"`
}

// BulkChangeStatusRequest represents the body of POST /submissions/bulk-status
type BulkChangeStatusRequest struct {
	IDs        []string `json:"ids" binding:"required"`
	Status     string   `json:"status" binding:"required"`
	Reason     string   `json:"reason"`
	ReviewerID string   `json:"reviewer_id"`
}

// UpsertEntryRequest represents the body of POST /entries
type UpsertEntryRequest struct {
	OwnerID        string                 `json:"owner_id" binding:"required"`
	PageKey        string                 `json:"page_key" binding:"required"`
	PeriodYear     int                    `json:"period_year" binding:"required"`
	Unit           string                 `json:"unit"`
	Monthly        map[string]float64     `json:"monthly"`
	Notes          string                 `json:"notes"`
	Payload        map[string]interface{} `json:"payload"`
	PreserveStatus bool                   `json:"preserve_status"`
	InitialStatus  string                 `json:"initial_status"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// ListSubmissions handles GET /api/v1/submissions.
// An optional ?status= query filters by current status.
func (h *Handlers) ListSubmissions(c *gin.Context) {
	if raw, ok := c.GetQuery("status"); ok {
		status, err := review.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Error:   "invalid status filter",
			})
			return
		}
		c.JSON(http.StatusOK, Response{
			Success: true,
			Data:    h.reviewService.GetSubmissionsByStatus(status),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    h.reviewService.GetAllSubmissions(),
	})
}

// GetHistory handles GET /api/v1/submissions/:id/history
func (h *Handlers) GetHistory(c *gin.Context) {
	id := c.Param("id")

	if _, ok := h.reviewService.GetSubmissionStatus(id); !ok {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "submission not found",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    h.reviewService.GetStatusHistory(id),
	})
}

// GetAvailableTransitions handles GET /api/v1/submissions/:id/transitions
func (h *Handlers) GetAvailableTransitions(c *gin.Context) {
	id := c.Param("id")

	status, ok := h.reviewService.GetSubmissionStatus(id)
	if !ok {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "submission not found",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"current":     status,
			"transitions": h.reviewService.GetAvailableTransitions(status),
			"editable":    h.reviewService.IsEditable(status),
			"lockMessage": h.reviewService.LockMessage(status),
		},
	})
}

// ChangeStatus handles POST /api/v1/submissions/:id/status
func (h *Handlers) ChangeStatus(c *gin.Context) {
	id := c.Param("id")

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid status change request", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	status, err := review.Parse(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid target status: " + req.Status,
		})
		return
	}

	result := h.reviewService.ChangeStatus(c.Request.Context(), id, status, req.Reason, req.ReviewerID)
	if !result.Success {
		c.JSON(statusForCode(result.Error), Response{
			Success: false,
			Data:    result,
			Error:   result.Message,
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// BulkChangeStatus handles POST /api/v1/submissions/bulk-status
func (h *Handlers) BulkChangeStatus(c *gin.Context) {
	var req BulkChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid bulk status change request", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	status, err := review.Parse(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid target status: " + req.Status,
		})
		return
	}

	result := h.reviewService.BulkChangeStatus(c.Request.Context(), req.IDs, status, req.Reason, req.ReviewerID)

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetStats handles GET /api/v1/stats
func (h *Handlers) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    h.reviewService.CalculateStats(),
	})
}

// GetRejectReasons handles GET /api/v1/reject-reasons
func (h *Handlers) GetRejectReasons(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    entity.CommonRejectReasons,
	})
}

// Reset handles POST /api/v1/reset
func (h *Handlers) Reset(c *gin.Context) {
	if err := h.reviewService.Reset(c.Request.Context()); err != nil {
		h.logger.Error("Reset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "reset failed",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    h.reviewService.CalculateStats(),
	})
}

// UpsertEntry handles POST /api/v1/entries
func (h *Handlers) UpsertEntry(c *gin.Context) {
	var req UpsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid entry request", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	initialStatus := entity.EntrySubmitted
	if req.InitialStatus != "" {
		initialStatus = entity.EntryStatus(req.InitialStatus)
	}

	input := service.UpsertEntryInput{
		OwnerID:    req.OwnerID,
		PageKey:    req.PageKey,
		PeriodYear: req.PeriodYear,
		Unit:       req.Unit,
		Monthly:    req.Monthly,
		Notes:      req.Notes,
		Payload:    req.Payload,
	}

	result, err := h.entryService.UpsertEnergyEntry(c.Request.Context(), input, req.PreserveStatus, initialStatus)
	if err != nil {
		h.logger.Error("Entry upsert failed", zap.Error(err))
		c.JSON(statusForEntryError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// statusForCode maps transition error codes to HTTP status codes
func statusForCode(code review.ErrorCode) int {
	switch code {
	case review.CodeSubmissionNotFound, review.CodeUserNotFound, review.CodeCategoryNotFound:
		return http.StatusNotFound
	case review.CodeInvalidTransition:
		return http.StatusConflict
	case review.CodeMissingParameters, review.CodeReasonRequired, review.CodeValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// statusForEntryError maps upsert errors to HTTP status codes
func statusForEntryError(err error) int {
	switch {
	case errors.Is(err, review.ErrMissingParameters):
		return http.StatusBadRequest
	case errors.Is(err, review.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, review.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
