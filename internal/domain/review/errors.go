package review

import "errors"

// ErrorCode identifies a structured failure returned to callers
type ErrorCode string

const (
	CodeMissingParameters  ErrorCode = "MISSING_PARAMETERS"
	CodeSubmissionNotFound ErrorCode = "SUBMISSION_NOT_FOUND"
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeCategoryNotFound   ErrorCode = "CATEGORY_NOT_FOUND"
	CodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"
	CodeReasonRequired     ErrorCode = "REASON_REQUIRED"
	CodeValidationError    ErrorCode = "VALIDATION_ERROR"
	CodeUnknownError       ErrorCode = "UNKNOWN_ERROR"
)

var (
	// ErrInvalidStatus is returned when a raw string is not a review status
	ErrInvalidStatus = errors.New("invalid submission status")

	// ErrMissingParameters is returned when required upsert fields are absent
	ErrMissingParameters = errors.New("missing required parameters")

	// ErrCategoryNotFound is returned when a page key has no category mapping
	ErrCategoryNotFound = errors.New("unknown page key")

	// ErrValidation is returned when upsert input fails domain validation
	ErrValidation = errors.New("validation failed")
)
