package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// transition results
const (
	ResultAllowed   = "allowed"
	ResultRejected  = "rejected"
	ResultCorrected = "corrected"
)

// InstallmentTransitions counts status change attempts by outcome.
var InstallmentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "rentdesk",
	Name:      "installment_transitions_total",
	Help:      "Installment status transitions by result.",
}, []string{"result"})

// InstallmentsGenerated counts rows created by schedule generation.
var InstallmentsGenerated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "rentdesk",
	Name:      "installments_generated_total",
	Help:      "Installments created by schedule generation.",
})

// ValidationFailures counts rejected creations and transitions by reason.
var ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "rentdesk",
	Name:      "installment_validation_failures_total",
	Help:      "Installment validation failures by reason.",
}, []string{"reason"})

// OverdueMarked counts installments flagged by the overdue sweep.
var OverdueMarked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "rentdesk",
	Name:      "installments_marked_overdue_total",
	Help:      "Installments flagged overdue by the nightly sweep.",
})

func RecordTransition(result string) {
	InstallmentTransitions.WithLabelValues(result).Inc()
}

func RecordValidationFailure(reason string) {
	ValidationFailures.WithLabelValues(reason).Inc()
}

func RecordGenerated(n int) {
	InstallmentsGenerated.Add(float64(n))
}

func RecordOverdueMarked(n int) {
	OverdueMarked.Add(float64(n))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
