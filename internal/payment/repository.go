package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts the payment together with its first log entry in one
	// transaction.
	Create(ctx context.Context, p *Payment, initialLog *Log) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	GetByMerchantRef(ctx context.Context, ref string) (*Payment, error)

	// ApplyGatewayStatus records the provider's latest verdict for the
	// payment. It stores the status verbatim, appends a log entry with the
	// raw payload, and confirms the booking exactly once on the first
	// COMPLETED verdict. The second return value reports whether this call
	// was the one that completed the payment.
	ApplyGatewayStatus(ctx context.Context, paymentID string, ts *TransactionStatus) (*Payment, bool, error)

	ListLogs(ctx context.Context, paymentID string) ([]*Log, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const paymentColumns = `
	id, booking_id, user_id, merchant_ref, tracking_id, amount, currency,
	status, redirect_url, created_at, updated_at
`

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	if err := row.Scan(
		&p.ID, &p.BookingID, &p.UserID, &p.MerchantRef, &p.TrackingID,
		&p.Amount, &p.Currency, &p.Status, &p.RedirectURL, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("scan payment failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) Create(ctx context.Context, p *Payment, initialLog *Log) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin create payment tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertPayment = `
		INSERT INTO public.payments
			(id, booking_id, user_id, merchant_ref, tracking_id, amount, currency, status, redirect_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	if err := tx.QueryRow(ctx, insertPayment,
		p.ID, p.BookingID, p.UserID, p.MerchantRef, p.TrackingID,
		p.Amount, p.Currency, p.Status, p.RedirectURL,
	).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrBookingNotFound
		}
		return fmt.Errorf("create payment failed: %w", err)
	}

	if err := insertLog(ctx, tx, p.ID, initialLog); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create payment tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM public.payments WHERE id = $1`
	return scanPayment(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByMerchantRef(ctx context.Context, ref string) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM public.payments WHERE merchant_ref = $1`
	return scanPayment(r.pool.QueryRow(ctx, query, ref))
}

func (r *pgxRepository) ApplyGatewayStatus(ctx context.Context, paymentID string, ts *TransactionStatus) (*Payment, bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, fmt.Errorf("begin reconcile tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	lockQuery := `SELECT ` + paymentColumns + ` FROM public.payments WHERE id = $1 FOR UPDATE`
	p, err := scanPayment(tx.QueryRow(ctx, lockQuery, paymentID))
	if err != nil {
		return nil, false, err
	}

	wasCompleted := IsCompleted(p.Status)

	const updatePayment = `
		UPDATE public.payments
		SET status = $1,
		    tracking_id = COALESCE(NULLIF($2, ''), tracking_id),
		    updated_at = now()
		WHERE id = $3
		RETURNING tracking_id, updated_at
	`

	p.Status = ts.Status
	if err := tx.QueryRow(ctx, updatePayment, ts.Status, ts.TrackingID, p.ID).
		Scan(&p.TrackingID, &p.UpdatedAt); err != nil {
		return nil, false, fmt.Errorf("update payment status failed: %w", err)
	}

	log := &Log{
		Status:  ts.Status,
		Message: "gateway status received",
		Payload: ts.Raw,
	}
	if err := insertLog(ctx, tx, p.ID, log); err != nil {
		return nil, false, err
	}

	newlyCompleted := IsCompleted(ts.Status) && !wasCompleted
	if newlyCompleted {
		const confirmBooking = `
			UPDATE public.bookings
			SET status = 'confirmed', updated_at = now()
			WHERE id = $1 AND status = 'pending'
		`
		if _, err := tx.Exec(ctx, confirmBooking, p.BookingID); err != nil {
			return nil, false, fmt.Errorf("confirm booking failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit reconcile tx failed: %w", err)
	}
	return p, newlyCompleted, nil
}

func (r *pgxRepository) ListLogs(ctx context.Context, paymentID string) ([]*Log, error) {
	const query = `
		SELECT id, payment_id, status, message, payload, created_at
		FROM public.payment_logs
		WHERE payment_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("list payment logs failed: %w", err)
	}
	defer rows.Close()

	var logs []*Log
	for rows.Next() {
		var l Log
		if err := rows.Scan(&l.ID, &l.PaymentID, &l.Status, &l.Message, &l.Payload, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment log failed: %w", err)
		}
		logs = append(logs, &l)
	}
	return logs, nil
}

func insertLog(ctx context.Context, tx pgx.Tx, paymentID string, l *Log) error {
	const query = `
		INSERT INTO public.payment_logs (payment_id, status, message, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	l.PaymentID = paymentID
	if err := tx.QueryRow(ctx, query, paymentID, l.Status, l.Message, l.Payload).
		Scan(&l.ID, &l.CreatedAt); err != nil {
		return fmt.Errorf("insert payment log failed: %w", err)
	}
	return nil
}
