package router

import (
	"net"

	"github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/httpclient"
	"github.com/rentdesk/rentdesk/internal/logger"
)

// ShouldRetry reports whether a handler error is worth another attempt.
// Handlers return nil for errors that are not, so the message is acked.
func ShouldRetry(logger *logger.Logger, err error) bool {
	if httpErr, ok := httpclient.IsHTTPError(err); ok {
		if httpErr.Retryable() {
			logger.Debugw("retrying due to HTTP error",
				"status_code", httpErr.StatusCode,
				"error", httpErr,
			)
			return true
		}
		logger.Debugw("non-retryable HTTP error",
			"status_code", httpErr.StatusCode,
			"error", httpErr,
		)
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		logger.Debugw("retrying due to network timeout", "error", netErr)
		return true
	}

	if errors.IsValidation(err) || errors.IsNotFound(err) {
		return false
	}

	// unknown errors, including connection refused, are retried
	return true
}
