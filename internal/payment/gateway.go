package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderRequest describes a hosted-checkout order submitted to the provider.
type OrderRequest struct {
	MerchantRef string
	Amount      decimal.Decimal
	Currency    string
	Description string
	Email       string
	Phone       string
}

type OrderResponse struct {
	TrackingID  string
	RedirectURL string
}

// TransactionStatus is the provider's view of one transaction, kept raw
// enough to be stored verbatim in the payment log.
type TransactionStatus struct {
	TrackingID    string
	MerchantRef   string
	Status        string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
	Raw           []byte
}

// Gateway is the outbound port to the payment provider.
type Gateway interface {
	SubmitOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error)
	GetTransactionStatus(ctx context.Context, trackingID string) (*TransactionStatus, error)
}
