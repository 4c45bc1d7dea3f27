package booking

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safari-hms/hotel-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrRoomUnavailable   = apperror.New(http.StatusConflict, "room is not available for these dates")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "check-out must be after check-in")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status transition")
	ErrRoomNotFound      = apperror.New(http.StatusNotFound, "room not found")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrTooManyGuests     = apperror.New(http.StatusBadRequest, "guest count exceeds room capacity")
	ErrInvalidGuestCount = apperror.New(http.StatusBadRequest, "guests must be at least 1")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

// ActiveStatuses are the states that hold a room's date range. Bookings in
// any other state do not block new reservations.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed, StatusCheckedIn}

// Booking is a reservation of one room for a half-open date range
// [CheckIn, CheckOut). Dates are UTC midnights.
type Booking struct {
	ID              string
	UserID          string
	RoomID          string
	RoomNumber      string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	SpecialRequests *string
	TotalPrice      decimal.Decimal
	Status          Status
	CreatedAt       time.Time
}

// Nights returns the whole-day length of the stay.
func (b *Booking) Nights() int {
	return nightsBetween(b.CheckIn, b.CheckOut)
}

// Overlaps reports whether the half-open ranges [aIn, aOut) and [bIn, bOut)
// intersect. Ranges that merely touch (one's check-out equals the other's
// check-in) do not overlap: the departing guest leaves before the arriving
// guest checks in.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// Quote computes the stay length and total price for a date range at the
// given nightly rate. Nights are whole days, clamped to a minimum of one so
// a same-day turnaround is still charged a full night.
func Quote(checkIn, checkOut time.Time, nightlyRate decimal.Decimal) (nights int, total decimal.Decimal) {
	nights = nightsBetween(checkIn, checkOut)
	if nights < 1 {
		nights = 1
	}
	total = nightlyRate.Mul(decimal.NewFromInt(int64(nights)))
	return nights, total
}

func nightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}
