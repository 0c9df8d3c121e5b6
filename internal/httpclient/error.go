package httpclient

import (
	"fmt"

	ierr "github.com/rentdesk/rentdesk/internal/errors"
)

// Error is returned for non-2xx responses
type Error struct {
	StatusCode int
	Response   []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("http client error: status %d", e.StatusCode)
}

// Unwrap lets ierr.IsHTTPClient match the error
func (e *Error) Unwrap() error {
	return ierr.ErrHTTPClient
}

// Retryable reports whether the request may succeed when sent again
func (e *Error) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 408 || e.StatusCode == 429
}

func NewError(statusCode int, response []byte) *Error {
	return &Error{
		StatusCode: statusCode,
		Response:   response,
	}
}

// IsHTTPError checks if an error is an HTTP client error
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	if ierr.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
