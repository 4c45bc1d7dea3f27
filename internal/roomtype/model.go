package roomtype

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safari-hms/hotel-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "room type not found")
	ErrNameTaken     = apperror.New(http.StatusConflict, "room type name already exists")
	ErrInvalidPrice  = apperror.New(http.StatusBadRequest, "base price must be positive")
	ErrInvalidGuests = apperror.New(http.StatusBadRequest, "max guests must be at least 1")
)

// RoomType describes a class of rooms sharing a nightly rate and capacity.
type RoomType struct {
	ID          string
	Name        string
	Description *string
	BasePrice   decimal.Decimal // nightly rate
	MaxGuests   int
	CreatedAt   time.Time
}
