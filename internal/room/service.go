package room

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/safari-hms/hotel-backend/internal/roomtype"
)

type CreateRequest struct {
	RoomNumber string
	Floor      int
	RoomTypeID string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Room, error)
	FindAvailable(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]*Room, error)
}

type service struct {
	repo      Repository
	rtService roomtype.Service
}

func NewService(repo Repository, rtService roomtype.Service) Service {
	return &service{
		repo:      repo,
		rtService: rtService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if _, err := s.rtService.GetByID(ctx, req.RoomTypeID); err != nil {
		if errors.Is(err, roomtype.ErrNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}

	rm := &Room{
		RoomNumber: strings.TrimSpace(req.RoomNumber),
		Floor:      req.Floor,
		RoomTypeID: req.RoomTypeID,
		Status:     StatusAvailable,
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}

	// Re-read to pick up the joined type fields.
	return s.repo.GetByID(ctx, rm.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Room, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) FindAvailable(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]*Room, error) {
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}
	if guests < 1 {
		return nil, ErrInvalidCapacity
	}
	return s.repo.FindAvailable(ctx, checkIn, checkOut, guests)
}
