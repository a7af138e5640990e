package port

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the usecases. Handlers map these onto HTTP
// status codes; everything else is an internal error.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidWebhookURL = errors.New("webhook url does not match the expected format")
	ErrQuotaExceeded     = errors.New("webhook quota exceeded")
	ErrDuplicateURL      = errors.New("webhook url already registered")
	ErrUnreachable       = errors.New("webhook target unreachable")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// HTTPError carries the status and body of a failed outbound call so the
// exact failure reason can be surfaced to the endpoint owner.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}
