package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/safari-hms/hotel-backend/internal/roomtype"
)

type CreateRoomTypeRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price" binding:"required"`
	MaxGuests   int             `json:"max_guests" binding:"required,min=1"`
}

type RoomTypeResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	MaxGuests   int             `json:"max_guests"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewRoomTypeResponse(rt *roomtype.RoomType) RoomTypeResponse {
	return RoomTypeResponse{
		ID:          rt.ID,
		Name:        rt.Name,
		Description: rt.Description,
		BasePrice:   rt.BasePrice,
		MaxGuests:   rt.MaxGuests,
		CreatedAt:   rt.CreatedAt,
	}
}
