package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	CreateProfile(ctx context.Context, p *Profile) error
	GetProfileByUserID(ctx context.Context, userID string) (*Profile, error)
	GetProfileByID(ctx context.Context, id string) (*Profile, error)

	CreateTask(ctx context.Context, t *Task) error
	GetTaskByID(ctx context.Context, id string) (*Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status TaskStatus) error
	ListTasksForStaff(ctx context.Context, staffID string) ([]*Task, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const profileColumns = `
	sp.id, sp.user_id, u.email, sp.role, sp.active, sp.hired_date
`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.Email, &p.Role, &p.Active, &p.HiredDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan staff profile failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) CreateProfile(ctx context.Context, p *Profile) error {
	const query = `
		INSERT INTO public.staff_profiles (user_id, role, active)
		VALUES ($1, $2, $3)
		RETURNING id, hired_date
	`

	if err := r.pool.QueryRow(ctx, query, p.UserID, p.Role, p.Active).Scan(&p.ID, &p.HiredDate); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyStaff
		}
		return fmt.Errorf("create staff profile failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetProfileByUserID(ctx context.Context, userID string) (*Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM public.staff_profiles sp
		JOIN public.users u ON sp.user_id = u.id
		WHERE sp.user_id = $1
	`
	return scanProfile(r.pool.QueryRow(ctx, query, userID))
}

func (r *pgxRepository) GetProfileByID(ctx context.Context, id string) (*Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM public.staff_profiles sp
		JOIN public.users u ON sp.user_id = u.id
		WHERE sp.id = $1
	`
	return scanProfile(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) CreateTask(ctx context.Context, t *Task) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.staff_tasks").
		Columns("staff_id", "room_id", "title", "details", "due_date", "status").
		Values(t.StaffID, t.RoomID, t.Title, t.Details, t.DueDate, t.Status).
		Suffix("RETURNING id, assigned_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create task query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.AssignedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrProfileNotFound
		}
		return fmt.Errorf("create task failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetTaskByID(ctx context.Context, id string) (*Task, error) {
	const query = `
		SELECT id, staff_id, room_id, title, details, due_date, status, assigned_at
		FROM public.staff_tasks
		WHERE id = $1
	`

	var t Task
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.StaffID, &t.RoomID, &t.Title, &t.Details, &t.DueDate, &t.Status, &t.AssignedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task failed: %w", err)
	}
	return &t, nil
}

func (r *pgxRepository) UpdateTaskStatus(ctx context.Context, id string, status TaskStatus) error {
	const query = `
		UPDATE public.staff_tasks
		SET status = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update task status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *pgxRepository) ListTasksForStaff(ctx context.Context, staffID string) ([]*Task, error) {
	const query = `
		SELECT id, staff_id, room_id, title, details, due_date, status, assigned_at
		FROM public.staff_tasks
		WHERE staff_id = $1
		ORDER BY assigned_at DESC
	`

	rows, err := r.pool.Query(ctx, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("list tasks failed: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(
			&t.ID, &t.StaffID, &t.RoomID, &t.Title, &t.Details, &t.DueDate, &t.Status, &t.AssignedAt,
		); err != nil {
			return nil, fmt.Errorf("scan task failed: %w", err)
		}
		tasks = append(tasks, &t)
	}
	return tasks, nil
}
