package router

import (
	"net/http"
	"testing"

	"github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/httpclient"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestShouldRetry(t *testing.T) {
	log := logger.NewNopLogger()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"service unavailable", httpclient.NewError(http.StatusServiceUnavailable, nil), true},
		{"internal server error", httpclient.NewError(http.StatusInternalServerError, nil), true},
		{"too many requests", httpclient.NewError(http.StatusTooManyRequests, nil), true},
		{"bad request", httpclient.NewError(http.StatusBadRequest, nil), false},
		{"gone", httpclient.NewError(http.StatusGone, nil), false},
		{"timeout", timeoutErr{}, true},
		{"validation", errors.NewError("bad").Mark(errors.ErrValidation), false},
		{"not found", errors.NewError("missing").Mark(errors.ErrNotFound), false},
		{"unknown", assert.AnError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRetry(log, tt.err))
		})
	}
}
