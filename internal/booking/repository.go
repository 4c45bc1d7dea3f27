package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// CreateIfAvailable atomically re-checks the overlap predicate and
	// inserts the booking. The check and the insert run in one transaction
	// holding a per-room advisory lock, so two concurrent requests for
	// overlapping ranges cannot both succeed. Returns ErrRoomUnavailable
	// when a conflicting active booking exists.
	CreateIfAvailable(ctx context.Context, b *Booking) error

	// HasOverlap checks if any active booking for the room intersects the
	// half-open range [checkIn, checkOut). Read-only.
	HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	ListForUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = `
	b.id, b.user_id, b.room_id, r.room_number, b.check_in, b.check_out,
	b.guests, b.special_requests, b.total_price, b.status, b.created_at
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.RoomNumber, &b.CheckIn, &b.CheckOut,
		&b.Guests, &b.SpecialRequests, &b.TotalPrice, &b.Status, &b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}
	return &b, nil
}

const overlapQuery = `
	SELECT EXISTS (
		SELECT 1
		FROM public.bookings
		WHERE room_id = $1
		  AND status IN ('pending', 'confirmed', 'checked_in')
		  AND check_in < $2
		  AND check_out > $3
	)
`

func (r *pgxRepository) CreateIfAvailable(ctx context.Context, b *Booking) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize check-then-insert per room. The lock is released on commit
	// or rollback; concurrent requests for the same room queue here.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, b.RoomID); err != nil {
		return fmt.Errorf("acquire room lock failed: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, overlapQuery, b.RoomID, b.CheckOut, b.CheckIn).Scan(&exists); err != nil {
		return fmt.Errorf("check overlap failed: %w", err)
	}
	if exists {
		return ErrRoomUnavailable
	}

	const insert = `
		INSERT INTO public.bookings
			(user_id, room_id, check_in, check_out, guests, special_requests, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	if err := tx.QueryRow(
		ctx, insert,
		b.UserID, b.RoomID, b.CheckIn, b.CheckOut,
		b.Guests, b.SpecialRequests, b.TotalPrice, b.Status,
	).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("insert booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, overlapQuery, roomID, checkOut, checkIn).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM public.bookings b
		JOIN public.rooms r ON b.room_id = r.id
		WHERE b.id = $1
	`
	return scanBooking(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) ListForUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.user_id", "b.room_id", "r.room_number", "b.check_in", "b.check_out",
		"b.guests", "b.special_requests", "b.total_price", "b.status", "b.created_at",
		"count(*) OVER() AS total_count",
	).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.check_in DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.RoomID, &b.RoomNumber, &b.CheckIn, &b.CheckOut,
			&b.Guests, &b.SpecialRequests, &b.TotalPrice, &b.Status, &b.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $1, updated_at = now()
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
