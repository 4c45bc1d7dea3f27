package payment

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safari-hms/hotel-backend/internal/pkg/apperror"
)

var (
	ErrPaymentNotFound = apperror.New(http.StatusNotFound, "payment not found")
	ErrBookingNotFound = apperror.New(http.StatusNotFound, "booking not found")
	ErrAmountMismatch  = apperror.New(http.StatusBadRequest, "amount does not match booking total")
	ErrNotPayable      = apperror.New(http.StatusConflict, "booking is not awaiting payment")
	ErrVerdictMismatch = apperror.New(http.StatusConflict, "gateway verdict does not match payment")
	ErrGatewayAuth     = apperror.New(http.StatusBadGateway, "payment gateway authentication failed")
	ErrGatewayQuery    = apperror.New(http.StatusBadGateway, "payment gateway request failed")
)

// Gateway status vocabulary. Stored verbatim as reported by the provider;
// comparisons are case-insensitive.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusRefunded   = "REFUNDED"
)

func IsCompleted(status string) bool {
	return strings.EqualFold(status, StatusCompleted)
}

type Payment struct {
	ID          string
	BookingID   string
	UserID      string
	MerchantRef string
	TrackingID  *string
	Amount      decimal.Decimal
	Currency    string
	Status      string
	RedirectURL *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Log is an append-only audit entry for one payment.
type Log struct {
	ID        string
	PaymentID string
	Status    string
	Message   string
	Payload   []byte
	CreatedAt time.Time
}
