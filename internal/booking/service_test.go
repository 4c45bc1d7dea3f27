package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safari-hms/hotel-backend/internal/room"
)

// memRepo is an in-memory Repository honoring the same overlap semantics as
// the SQL implementation.
type memRepo struct {
	bookings map[string]*Booking
}

func newMemRepo() *memRepo {
	return &memRepo{bookings: make(map[string]*Booking)}
}

func (r *memRepo) hasOverlap(roomID string, checkIn, checkOut time.Time) bool {
	for _, b := range r.bookings {
		if b.RoomID != roomID {
			continue
		}
		active := false
		for _, s := range ActiveStatuses {
			if b.Status == s {
				active = true
				break
			}
		}
		if active && Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			return true
		}
	}
	return false
}

func (r *memRepo) CreateIfAvailable(_ context.Context, b *Booking) error {
	if r.hasOverlap(b.RoomID, b.CheckIn, b.CheckOut) {
		return ErrRoomUnavailable
	}
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	r.bookings[b.ID] = b
	return nil
}

func (r *memRepo) HasOverlap(_ context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	return r.hasOverlap(roomID, checkIn, checkOut), nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) ListForUser(_ context.Context, userID string, _, _ int) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	return nil
}

// fakeRoomService serves a fixed set of rooms.
type fakeRoomService struct {
	rooms map[string]*room.Room
}

func (s *fakeRoomService) Create(context.Context, room.CreateRequest) (*room.Room, error) {
	panic("not used")
}

func (s *fakeRoomService) GetByID(_ context.Context, id string) (*room.Room, error) {
	rm, ok := s.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return rm, nil
}

func (s *fakeRoomService) UpdateStatus(context.Context, string, room.Status) (*room.Room, error) {
	panic("not used")
}

func (s *fakeRoomService) FindAvailable(context.Context, time.Time, time.Time, int) ([]*room.Room, error) {
	panic("not used")
}

func newTestService(t *testing.T) (Service, *memRepo, *room.Room) {
	t.Helper()

	rm := &room.Room{
		ID:         uuid.NewString(),
		RoomNumber: "101",
		BasePrice:  decimal.NewFromInt(150),
		MaxGuests:  2,
		Status:     room.StatusAvailable,
	}
	repo := newMemRepo()
	rooms := &fakeRoomService{rooms: map[string]*room.Room{rm.ID: rm}}

	return NewService(repo, rooms, zerolog.Nop()), repo, rm
}

func TestCreateBooking(t *testing.T) {
	svc, _, rm := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{
		UserID:   uuid.NewString(),
		RoomID:   rm.ID,
		CheckIn:  day(10),
		CheckOut: day(13),
		Guests:   2,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, "101", b.RoomNumber)
	assert.True(t, b.TotalPrice.Equal(decimal.NewFromInt(450)), "total = %s", b.TotalPrice)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, rm := newTestService(t)
	ctx := context.Background()
	userID := uuid.NewString()

	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			"check-out before check-in",
			CreateRequest{UserID: userID, RoomID: rm.ID, CheckIn: day(13), CheckOut: day(10), Guests: 1},
			ErrInvalidDateRange,
		},
		{
			"check-out equals check-in",
			CreateRequest{UserID: userID, RoomID: rm.ID, CheckIn: day(10), CheckOut: day(10), Guests: 1},
			ErrInvalidDateRange,
		},
		{
			"zero guests",
			CreateRequest{UserID: userID, RoomID: rm.ID, CheckIn: day(10), CheckOut: day(11), Guests: 0},
			ErrInvalidGuestCount,
		},
		{
			"too many guests",
			CreateRequest{UserID: userID, RoomID: rm.ID, CheckIn: day(10), CheckOut: day(11), Guests: 5},
			ErrTooManyGuests,
		},
		{
			"unknown room",
			CreateRequest{UserID: userID, RoomID: uuid.NewString(), CheckIn: day(10), CheckOut: day(11), Guests: 1},
			ErrRoomNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateBookingConflicts(t *testing.T) {
	svc, _, rm := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{
		UserID: uuid.NewString(), RoomID: rm.ID,
		CheckIn: day(10), CheckOut: day(13), Guests: 1,
	})
	require.NoError(t, err)

	// Overlapping range is rejected.
	_, err = svc.Create(ctx, CreateRequest{
		UserID: uuid.NewString(), RoomID: rm.ID,
		CheckIn: day(12), CheckOut: day(14), Guests: 1,
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// Back-to-back is fine: new check-in on the existing check-out day.
	_, err = svc.Create(ctx, CreateRequest{
		UserID: uuid.NewString(), RoomID: rm.ID,
		CheckIn: day(13), CheckOut: day(15), Guests: 1,
	})
	assert.NoError(t, err)
}

func TestCancelledBookingFreesRange(t *testing.T) {
	svc, _, rm := newTestService(t)
	ctx := context.Background()
	owner := uuid.NewString()

	b, err := svc.Create(ctx, CreateRequest{
		UserID: owner, RoomID: rm.ID,
		CheckIn: day(10), CheckOut: day(13), Guests: 1,
	})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, b.ID, owner, false)
	require.NoError(t, err)

	ok, err := svc.IsRoomAvailable(ctx, rm.ID, day(10), day(13))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCancelPermissions(t *testing.T) {
	svc, _, rm := newTestService(t)
	ctx := context.Background()
	owner := uuid.NewString()

	b, err := svc.Create(ctx, CreateRequest{
		UserID: owner, RoomID: rm.ID,
		CheckIn: day(10), CheckOut: day(13), Guests: 1,
	})
	require.NoError(t, err)

	// A stranger cannot cancel.
	_, err = svc.Cancel(ctx, b.ID, uuid.NewString(), false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Staff can.
	got, err := svc.Cancel(ctx, b.ID, uuid.NewString(), true)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
}

func TestFrontDeskTransitions(t *testing.T) {
	svc, repo, rm := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{
		UserID: uuid.NewString(), RoomID: rm.ID,
		CheckIn: day(10), CheckOut: day(13), Guests: 1,
	})
	require.NoError(t, err)

	// Pending bookings cannot be checked in.
	_, err = svc.CheckIn(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	require.NoError(t, repo.UpdateStatus(ctx, b.ID, StatusConfirmed))

	got, err := svc.CheckIn(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, got.Status)

	// A checked-in booking still blocks the range.
	ok, err := svc.IsRoomAvailable(ctx, rm.ID, day(11), day(12))
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = svc.CheckOut(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedOut, got.Status)

	// After check-out the range is free again.
	ok, err = svc.IsRoomAvailable(ctx, rm.ID, day(11), day(12))
	require.NoError(t, err)
	assert.True(t, ok)

	// Check-out twice is rejected.
	_, err = svc.CheckOut(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
