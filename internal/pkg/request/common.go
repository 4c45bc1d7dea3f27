package request

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (check-in / check-out).
const DateLayout = "2006-01-02"

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ParseDate parses a calendar date in YYYY-MM-DD form into a UTC midnight
// time.Time. Booking dates are whole days, never clock times.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
