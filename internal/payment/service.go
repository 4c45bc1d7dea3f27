package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/safari-hms/hotel-backend/internal/booking"
	"github.com/safari-hms/hotel-backend/internal/metrics"
)

type InitiateRequest struct {
	BookingID string
	UserID    string
	Amount    decimal.Decimal
	Email     string
	Phone     string
}

type Service interface {
	// Initiate submits a hosted-checkout order for the booking and records
	// the payment as PENDING. The caller's amount must exactly equal the
	// booking total.
	Initiate(ctx context.Context, req InitiateRequest) (*Payment, error)

	// Reconcile fetches the provider's current verdict for the payment
	// identified by merchant reference and applies it. Safe to call any
	// number of times: the booking is confirmed only on the first COMPLETED
	// verdict, and later calls are no-ops beyond appending a log entry.
	Reconcile(ctx context.Context, merchantRef, trackingID string) (*Payment, error)

	GetByID(ctx context.Context, id, requesterUserID string, isStaff bool) (*Payment, error)
	ListLogs(ctx context.Context, paymentID string) ([]*Log, error)
}

type service struct {
	repo           Repository
	bookingService booking.Service
	gateway        Gateway
	currency       string
	logger         zerolog.Logger
}

func NewService(repo Repository, bookingService booking.Service, gateway Gateway, currency string, logger zerolog.Logger) Service {
	return &service{
		repo:           repo,
		bookingService: bookingService,
		gateway:        gateway,
		currency:       currency,
		logger:         logger.With().Str("component", "payment").Logger(),
	}
}

func (s *service) Initiate(ctx context.Context, req InitiateRequest) (*Payment, error) {
	b, err := s.bookingService.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if b.UserID != req.UserID {
		return nil, booking.ErrPermissionDenied
	}
	if b.Status != booking.StatusPending {
		return nil, ErrNotPayable
	}
	if !req.Amount.Equal(b.TotalPrice) {
		return nil, ErrAmountMismatch
	}

	// The payment ID doubles as the merchant reference sent to the
	// provider, so callbacks can be mapped straight back to the row.
	id := uuid.NewString()

	order, err := s.gateway.SubmitOrder(ctx, OrderRequest{
		MerchantRef: id,
		Amount:      req.Amount,
		Currency:    s.currency,
		Description: "Room " + b.RoomNumber + " booking",
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err != nil {
		return nil, err
	}

	p := &Payment{
		ID:          id,
		BookingID:   b.ID,
		UserID:      req.UserID,
		MerchantRef: id,
		TrackingID:  &order.TrackingID,
		Amount:      req.Amount,
		Currency:    s.currency,
		Status:      StatusPending,
		RedirectURL: &order.RedirectURL,
	}

	initialLog := &Log{
		Status:  StatusPending,
		Message: "payment initiated",
	}
	if err := s.repo.Create(ctx, p, initialLog); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("payment_id", p.ID).
		Str("booking_id", p.BookingID).
		Str("amount", p.Amount.String()).
		Msg("payment initiated")

	return p, nil
}

func (s *service) Reconcile(ctx context.Context, merchantRef, trackingID string) (*Payment, error) {
	p, err := s.repo.GetByMerchantRef(ctx, merchantRef)
	if err != nil {
		return nil, err
	}

	if trackingID == "" && p.TrackingID != nil {
		trackingID = *p.TrackingID
	}

	ts, err := s.gateway.GetTransactionStatus(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	// The tracking ID in a callback is caller-supplied, so the verdict must
	// still reference this payment. A verdict for another transaction, or
	// for a different amount, is never applied.
	if ts.MerchantRef != "" && ts.MerchantRef != p.MerchantRef {
		s.logger.Warn().
			Str("payment_id", p.ID).
			Str("verdict_ref", ts.MerchantRef).
			Msg("gateway verdict references another payment")
		return nil, ErrVerdictMismatch
	}
	if !ts.Amount.IsZero() && !ts.Amount.Equal(p.Amount) {
		s.logger.Warn().
			Str("payment_id", p.ID).
			Str("verdict_amount", ts.Amount.String()).
			Str("amount", p.Amount.String()).
			Msg("gateway verdict amount differs from payment")
		return nil, ErrVerdictMismatch
	}

	p, newlyCompleted, err := s.repo.ApplyGatewayStatus(ctx, p.ID, ts)
	if err != nil {
		return nil, err
	}

	metrics.IncPaymentReconciled(ts.Status)
	s.logger.Info().
		Str("payment_id", p.ID).
		Str("status", p.Status).
		Bool("newly_completed", newlyCompleted).
		Msg("payment reconciled")

	return p, nil
}

func (s *service) GetByID(ctx context.Context, id, requesterUserID string, isStaff bool) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isStaff && p.UserID != requesterUserID {
		return nil, booking.ErrPermissionDenied
	}
	return p, nil
}

func (s *service) ListLogs(ctx context.Context, paymentID string) ([]*Log, error) {
	return s.repo.ListLogs(ctx, paymentID)
}
