package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/safari-hms/hotel-backend/internal/metrics"
	"github.com/safari-hms/hotel-backend/internal/room"
)

type CreateRequest struct {
	UserID          string
	RoomID          string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	SpecialRequests string
}

type Service interface {
	// IsRoomAvailable reports whether the room is free for the half-open
	// range [checkIn, checkOut). No side effects.
	IsRoomAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)

	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListForUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error)

	// Cancel releases the booking's date range. Only the owning user (or
	// staff) may cancel, and only before check-in.
	Cancel(ctx context.Context, id, requesterUserID string, isStaff bool) (*Booking, error)

	// CheckIn and CheckOut are front-desk operations.
	CheckIn(ctx context.Context, id string) (*Booking, error)
	CheckOut(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo        Repository
	roomService room.Service
	logger      zerolog.Logger
}

func NewService(repo Repository, roomService room.Service, logger zerolog.Logger) Service {
	return &service{
		repo:        repo,
		roomService: roomService,
		logger:      logger.With().Str("component", "booking").Logger(),
	}
}

func (s *service) IsRoomAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	if !checkIn.Before(checkOut) {
		return false, ErrInvalidDateRange
	}
	hasOverlap, err := s.repo.HasOverlap(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return !hasOverlap, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate Date Range
	if !req.CheckIn.Before(req.CheckOut) {
		return nil, ErrInvalidDateRange
	}
	if req.Guests < 1 {
		return nil, ErrInvalidGuestCount
	}

	// 2. Validate Room Exists and fits the party
	rm, err := s.roomService.GetByID(ctx, req.RoomID)
	if err != nil {
		switch {
		case errors.Is(err, room.ErrNotFound):
			return nil, ErrRoomNotFound
		default:
			return nil, err
		}
	}
	if req.Guests > rm.MaxGuests {
		return nil, ErrTooManyGuests
	}

	// 3. Price the stay at the room's current rate
	_, total := Quote(req.CheckIn, req.CheckOut, rm.BasePrice)

	var requestsPtr *string
	if req.SpecialRequests != "" {
		requestsPtr = &req.SpecialRequests
	}

	b := &Booking{
		UserID:          req.UserID,
		RoomID:          req.RoomID,
		RoomNumber:      rm.RoomNumber,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          req.Guests,
		SpecialRequests: requestsPtr,
		TotalPrice:      total,
		Status:          StatusPending,
	}

	// 4. Overlap check and insert run atomically in the repository.
	if err := s.repo.CreateIfAvailable(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.logger.Info().
		Str("booking_id", b.ID).
		Str("room_id", b.RoomID).
		Str("total_price", b.TotalPrice.String()).
		Msg("booking created")

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListForUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error) {
	return s.repo.ListForUser(ctx, userID, page, pageSize)
}

func (s *service) Cancel(ctx context.Context, id, requesterUserID string, isStaff bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isStaff && b.UserID != requesterUserID {
		return nil, ErrPermissionDenied
	}

	switch b.Status {
	case StatusPending, StatusConfirmed:
		// cancellable
	default:
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled

	s.logger.Info().Str("booking_id", id).Msg("booking cancelled")
	return b, nil
}

func (s *service) CheckIn(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusConfirmed, StatusCheckedIn)
}

func (s *service) CheckOut(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusCheckedIn, StatusCheckedOut)
}

func (s *service) transition(ctx context.Context, id string, from, to Status) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != from {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	b.Status = to

	s.logger.Info().Str("booking_id", id).Str("status", string(to)).Msg("booking status updated")
	return b, nil
}
