package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_transitions_total",
			Help: "Checkout state machine transitions by outcome",
		},
		[]string{"transition"},
	)

	reconciliationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_reconciliation_failures_total",
			Help: "Completion calls that failed after a confirmed payment",
		},
	)

	upstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_errors_total",
			Help: "Upstream API failures by operation",
		},
		[]string{"operation"},
	)

	paymentOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_outcomes_total",
			Help: "Payment widget outcomes reported by the gateway",
		},
		[]string{"outcome"},
	)
)

// CheckoutTransition counts one orchestrator transition (initiated,
// booking_created, widget_opened, dismissed, failed, completed).
func CheckoutTransition(transition string) {
	checkoutTransitions.WithLabelValues(transition).Inc()
}

// ReconciliationFailure counts a swallowed post-payment completion failure.
func ReconciliationFailure() {
	reconciliationFailures.Inc()
}

// UpstreamError counts an upstream API failure for the given operation.
func UpstreamError(operation string) {
	upstreamErrors.WithLabelValues(operation).Inc()
}

// PaymentOutcome counts a gateway callback (success, dismissed, failed).
func PaymentOutcome(outcome string) {
	paymentOutcomes.WithLabelValues(outcome).Inc()
}
