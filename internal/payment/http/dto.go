package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/safari-hms/hotel-backend/internal/payment"
)

type InitiatePaymentRequest struct {
	BookingID string          `json:"booking_id" binding:"required,uuid"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Email     string          `json:"email" binding:"required,email"`
	Phone     string          `json:"phone"`
}

// CallbackRequest mirrors the query parameters the gateway appends when it
// redirects the customer back after checkout.
type CallbackRequest struct {
	OrderTrackingID      string `form:"OrderTrackingId" binding:"required"`
	OrderMerchantRef     string `form:"OrderMerchantReference" binding:"required"`
	OrderNotificationTyp string `form:"OrderNotificationType"`
}

// IPNRequest is the server-to-server notification body. The gateway may
// deliver it as either a JSON POST or a GET with query parameters.
type IPNRequest struct {
	OrderTrackingID      string `json:"OrderTrackingId" form:"OrderTrackingId"`
	OrderMerchantRef     string `json:"OrderMerchantReference" form:"OrderMerchantReference"`
	OrderNotificationTyp string `json:"OrderNotificationType" form:"OrderNotificationType"`
}

type PaymentResponse struct {
	ID          string          `json:"id"`
	BookingID   string          `json:"booking_id"`
	MerchantRef string          `json:"merchant_ref"`
	TrackingID  *string         `json:"tracking_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	RedirectURL *string         `json:"redirect_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		BookingID:   p.BookingID,
		MerchantRef: p.MerchantRef,
		TrackingID:  p.TrackingID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      p.Status,
		RedirectURL: p.RedirectURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type LogResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func NewLogResponse(l *payment.Log) LogResponse {
	return LogResponse{
		ID:        l.ID,
		Status:    l.Status,
		Message:   l.Message,
		CreatedAt: l.CreatedAt,
	}
}
