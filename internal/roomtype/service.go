package roomtype

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Name        string
	Description string
	BasePrice   decimal.Decimal
	MaxGuests   int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*RoomType, error)
	GetByID(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context) ([]*RoomType, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*RoomType, error) {
	if !req.BasePrice.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if req.MaxGuests < 1 {
		return nil, ErrInvalidGuests
	}

	var descPtr *string
	if d := strings.TrimSpace(req.Description); d != "" {
		descPtr = &d
	}

	rt := &RoomType{
		Name:        strings.TrimSpace(req.Name),
		Description: descPtr,
		BasePrice:   req.BasePrice,
		MaxGuests:   req.MaxGuests,
	}

	if err := s.repo.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*RoomType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*RoomType, error) {
	return s.repo.List(ctx)
}
