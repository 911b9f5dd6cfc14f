package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds returned by the client. Match them with errors.Is.
var (
	ErrNetwork     = errors.New("network unavailable")
	ErrServer      = errors.New("server error")
	ErrMalformed   = errors.New("malformed response")
	ErrNotEligible = errors.New("content is not available for this account")
	ErrUnavailable = errors.New("content is unavailable")
)

// StatusError is a non-2xx response.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Detail)
}

// Is makes every status error an ErrServer. Forbidden also matches
// ErrNotEligible and not found matches ErrUnavailable.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrServer:
		return true
	case ErrNotEligible:
		return e.Code == http.StatusForbidden
	case ErrUnavailable:
		return e.Code == http.StatusNotFound
	default:
		return false
	}
}

func networkError(err error) error {
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
