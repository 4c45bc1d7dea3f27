package room

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safari-hms/hotel-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "room not found")
	ErrNumberTaken      = apperror.New(http.StatusConflict, "room number already exists")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid room status")
	ErrTypeNotFound     = apperror.New(http.StatusNotFound, "room type not found")
	ErrInvalidCapacity  = apperror.New(http.StatusBadRequest, "guests must be at least 1")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "check-out must be after check-in")
)

// Status is the housekeeping state of a physical room. It is independent of
// booking availability: a room under maintenance can still hold future
// bookings, and overlap checks alone decide date conflicts.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusCleaning    Status = "cleaning"
	StatusMaintenance Status = "maintenance"
	StatusUnavailable Status = "unavailable"
)

// Valid reports whether s is a known room status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusCleaning, StatusMaintenance, StatusUnavailable:
		return true
	}
	return false
}

// Room is a physical, bookable room. Rate and capacity come from its type.
type Room struct {
	ID           string
	RoomNumber   string
	Floor        int
	RoomTypeID   string
	RoomTypeName string
	BasePrice    decimal.Decimal
	MaxGuests    int
	Status       Status
	CreatedAt    time.Time
}
