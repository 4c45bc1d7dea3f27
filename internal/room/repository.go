package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// FindAvailable returns rooms whose type fits the guest count and that
	// have no active booking overlapping [checkIn, checkOut).
	FindAvailable(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]*Room, error)
}

const roomColumns = `
	r.id, r.room_number, r.floor, r.room_type_id, rt.name, rt.base_price, rt.max_guests, r.status, r.created_at
`

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.rooms").
		Columns("room_number", "floor", "room_type_id", "status").
		Values(rm.RoomNumber, rm.Floor, rm.RoomTypeID, rm.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rm.ID, &rm.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) {
			switch e.Code {
			case pgerrcode.UniqueViolation:
				return ErrNumberTaken
			case pgerrcode.ForeignKeyViolation:
				return ErrTypeNotFound
			}
		}
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM public.rooms r
		JOIN public.room_types rt ON r.room_type_id = rt.id
		WHERE r.id = $1
	`

	var rm Room
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&rm.ID, &rm.RoomNumber, &rm.Floor, &rm.RoomTypeID,
		&rm.RoomTypeName, &rm.BasePrice, &rm.MaxGuests, &rm.Status, &rm.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `
		UPDATE public.rooms
		SET status = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update room status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) FindAvailable(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]*Room, error) {
	// Half-open overlap: an existing booking conflicts when its check-in is
	// before our check-out AND its check-out is after our check-in.
	const query = `
		SELECT ` + roomColumns + `
		FROM public.rooms r
		JOIN public.room_types rt ON r.room_type_id = rt.id
		WHERE rt.max_guests >= $1
		  AND r.status = 'available'
		  AND NOT EXISTS (
			SELECT 1
			FROM public.bookings b
			WHERE b.room_id = r.id
			  AND b.status IN ('pending', 'confirmed', 'checked_in')
			  AND b.check_in < $2
			  AND b.check_out > $3
		  )
		ORDER BY r.room_number
	`

	rows, err := r.pool.Query(ctx, query, guests, checkOut, checkIn)
	if err != nil {
		return nil, fmt.Errorf("find available rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		var rm Room
		if err := rows.Scan(
			&rm.ID, &rm.RoomNumber, &rm.Floor, &rm.RoomTypeID,
			&rm.RoomTypeName, &rm.BasePrice, &rm.MaxGuests, &rm.Status, &rm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &rm)
	}
	return rooms, nil
}
