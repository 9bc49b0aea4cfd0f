package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrAuthFailed          = errors.New("authentication failed")
	ErrSessionNotFound     = errors.New("session not found")
	ErrTaskInProgress      = errors.New("another task is in progress")
	ErrNoActiveTask        = errors.New("no active task")
	ErrNoPackageSelected   = errors.New("no package selected")
	ErrProofTooLarge       = errors.New("payment proof exceeds size limit")
	ErrProofMissing        = errors.New("payment proof or transaction id required")
	ErrAmountBelowMinimum  = errors.New("amount below minimum withdrawal")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRemarkRequired      = errors.New("remark required")
	ErrInvalidImportFile   = errors.New("import file must be .xlsx or .xls")
	ErrFlowNotActive       = errors.New("no input flow active")
)

// APIError carries the backend's human-readable message for a failed request.
// Screens surface Message verbatim through the notification service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// ErrorMessage unwraps the text a user should see for err: the backend's own
// message when present, otherwise fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
