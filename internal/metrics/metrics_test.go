package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(InstallmentTransitions.WithLabelValues(ResultCorrected))
	RecordTransition(ResultCorrected)
	assert.Equal(t, before+1, testutil.ToFloat64(InstallmentTransitions.WithLabelValues(ResultCorrected)))
}

func TestRecordGenerated(t *testing.T) {
	before := testutil.ToFloat64(InstallmentsGenerated)
	RecordGenerated(12)
	assert.Equal(t, before+12, testutil.ToFloat64(InstallmentsGenerated))
}

func TestHandlerExposesCounters(t *testing.T) {
	RecordValidationFailure("unpaid_predecessor")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `rentdesk_installment_validation_failures_total{reason="unpaid_predecessor"}`)
}
