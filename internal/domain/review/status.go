package review

import "fmt"

// Status represents the review state of a submission record
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

var validStatuses = map[Status]bool{
	StatusSubmitted: true,
	StatusApproved:  true,
	StatusRejected:  true,
}

var statusLabels = map[Status]string{
	StatusSubmitted: "已提交",
	StatusApproved:  "已通過",
	StatusRejected:  "已退回",
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is one of the three review states
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// Label returns the display label for the status
func (s Status) Label() string {
	return statusLabels[s]
}

// IsEditable returns true if the originating form may still be edited.
// Approved submissions are locked; submitted and rejected ones are not.
func (s Status) IsEditable() bool {
	return s == StatusSubmitted || s == StatusRejected
}

// LockMessage returns the user-facing message explaining the edit lock
func (s Status) LockMessage() string {
	switch s {
	case StatusApproved:
		return "此項目已通過審核，無法編輯"
	case StatusRejected:
		return "此項目已退回，請修正後重新提交"
	case StatusSubmitted:
		return "此項目審核中，請等待審核結果"
	default:
		return ""
	}
}

// Parse converts a raw string into a Status. Any string outside the
// three review states is rejected; this is the deserialization boundary.
func Parse(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}
