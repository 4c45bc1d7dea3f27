package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		aIn  int
		aOut int
		bIn  int
		bOut int
		want bool
	}{
		{"identical ranges", 10, 12, 10, 12, true},
		{"contained", 10, 20, 12, 14, true},
		{"partial front", 10, 15, 12, 20, true},
		{"partial back", 12, 20, 10, 15, true},
		{"single shared night", 10, 12, 11, 13, true},
		{"disjoint", 10, 12, 15, 17, false},
		{"touching: a ends when b starts", 10, 12, 12, 14, false},
		{"touching: b ends when a starts", 12, 14, 10, 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(day(tt.aIn), day(tt.aOut), day(tt.bIn), day(tt.bOut))
			assert.Equal(t, tt.want, got)

			// The predicate is symmetric.
			assert.Equal(t, tt.want, Overlaps(day(tt.bIn), day(tt.bOut), day(tt.aIn), day(tt.aOut)))
		})
	}
}

func TestQuote(t *testing.T) {
	rate := decimal.NewFromInt(100)

	tests := []struct {
		name       string
		checkIn    time.Time
		checkOut   time.Time
		wantNights int
		wantTotal  string
	}{
		{"three nights", day(10), day(13), 3, "300"},
		{"one night", day(10), day(11), 1, "100"},
		{"sub-day stay charges one night", day(10), day(10).Add(6 * time.Hour), 1, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nights, total := Quote(tt.checkIn, tt.checkOut, rate)
			assert.Equal(t, tt.wantNights, nights)
			assert.True(t, total.Equal(decimal.RequireFromString(tt.wantTotal)),
				"total = %s, want %s", total, tt.wantTotal)
		})
	}
}

func TestQuoteFractionalRate(t *testing.T) {
	rate := decimal.RequireFromString("99.99")
	_, total := Quote(day(1), day(4), rate)
	assert.True(t, total.Equal(decimal.RequireFromString("299.97")), "total = %s", total)
}

func TestNights(t *testing.T) {
	b := &Booking{CheckIn: day(5), CheckOut: day(9)}
	assert.Equal(t, 4, b.Nights())
}
