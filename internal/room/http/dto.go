package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/safari-hms/hotel-backend/internal/pkg/request"
	"github.com/safari-hms/hotel-backend/internal/room"
)

type CreateRoomRequest struct {
	RoomNumber string `json:"room_number" binding:"required"`
	Floor      int    `json:"floor"`
	RoomTypeID string `json:"room_type_id" binding:"required,uuid"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available occupied cleaning maintenance unavailable"`
}

// SearchAvailabilityRequest carries a date range and guest count for the
// availability search.
type SearchAvailabilityRequest struct {
	CheckIn  string `form:"check_in" binding:"required"`
	CheckOut string `form:"check_out" binding:"required"`
	Guests   int    `form:"guests" binding:"required,min=1"`
}

// Dates parses the wire dates into UTC midnights.
func (r *SearchAvailabilityRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = request.ParseDate(r.CheckIn)
	if err != nil {
		return
	}
	checkOut, err = request.ParseDate(r.CheckOut)
	return
}

type RoomResponse struct {
	ID         string          `json:"id"`
	RoomNumber string          `json:"room_number"`
	Floor      int             `json:"floor"`
	Status     string          `json:"status"`
	RoomType   RoomTypeTag     `json:"room_type"`
	BasePrice  decimal.Decimal `json:"base_price"`
	MaxGuests  int             `json:"max_guests"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RoomTypeTag holds minimal room type info embedded in room responses.
type RoomTypeTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewRoomResponse(rm *room.Room) RoomResponse {
	return RoomResponse{
		ID:         rm.ID,
		RoomNumber: rm.RoomNumber,
		Floor:      rm.Floor,
		Status:     string(rm.Status),
		RoomType:   RoomTypeTag{ID: rm.RoomTypeID, Name: rm.RoomTypeName},
		BasePrice:  rm.BasePrice,
		MaxGuests:  rm.MaxGuests,
		CreatedAt:  rm.CreatedAt,
	}
}
