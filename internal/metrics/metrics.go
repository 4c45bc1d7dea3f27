package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_backend",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotel_backend",
			Name:      "bookings_created_total",
			Help:      "Bookings successfully created.",
		},
	)

	paymentsReconciled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_backend",
			Name:      "payments_reconciled_total",
			Help:      "Payment reconciliations by gateway-reported status.",
		},
		[]string{"status"},
	)

	gatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_backend",
			Name:      "gateway_requests_total",
			Help:      "Outbound payment-gateway calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, paymentsReconciled, gatewayRequests)
	})
}

// IncHTTP increments the request counter for a route.
func IncHTTP(method, path, status string) {
	httpRequests.WithLabelValues(method, path, status).Inc()
}

// IncBookingCreated increments the created-bookings counter.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncPaymentReconciled increments the reconciliation counter for a gateway status.
func IncPaymentReconciled(status string) {
	paymentsReconciled.WithLabelValues(status).Inc()
}

// IncGatewayRequest increments the outbound gateway-call counter.
func IncGatewayRequest(endpoint, outcome string) {
	gatewayRequests.WithLabelValues(endpoint, outcome).Inc()
}
