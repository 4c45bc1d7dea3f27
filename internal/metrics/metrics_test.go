package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	assert.NotPanics(t, func() {
		IncHTTP("POST", "/v1/bookings", "201")
		IncBookingCreated()
		IncPaymentReconciled("COMPLETED")
		IncGatewayRequest("submit_order", "success")
	})
}
