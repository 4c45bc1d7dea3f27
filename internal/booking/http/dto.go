package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/safari-hms/hotel-backend/internal/booking"
	"github.com/safari-hms/hotel-backend/internal/pkg/request"
)

type CreateBookingRequest struct {
	RoomID          string `json:"room_id" binding:"required,uuid"`
	CheckIn         string `json:"check_in" binding:"required"`
	CheckOut        string `json:"check_out" binding:"required"`
	Guests          int    `json:"guests" binding:"required,min=1"`
	SpecialRequests string `json:"special_requests"`
}

// Dates parses the wire dates into UTC midnights.
func (r *CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = request.ParseDate(r.CheckIn)
	if err != nil {
		return
	}
	checkOut, err = request.ParseDate(r.CheckOut)
	return
}

type BookingResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	RoomID          string          `json:"room_id"`
	RoomNumber      string          `json:"room_number"`
	CheckIn         string          `json:"check_in"`
	CheckOut        string          `json:"check_out"`
	Nights          int             `json:"nights"`
	Guests          int             `json:"guests"`
	SpecialRequests *string         `json:"special_requests,omitempty"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		RoomID:          b.RoomID,
		RoomNumber:      b.RoomNumber,
		CheckIn:         b.CheckIn.Format(request.DateLayout),
		CheckOut:        b.CheckOut.Format(request.DateLayout),
		Nights:          b.Nights(),
		Guests:          b.Guests,
		SpecialRequests: b.SpecialRequests,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
	}
}
