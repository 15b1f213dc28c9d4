package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFoundOrAlreadyCancelled = errors.New("reservation not found or already cancelled")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, memberID, classID uuid.UUID, priceCents int64, reservedAt time.Time) (*Reservation, error) {
	query := `
		INSERT INTO reservations (id, member_id, class_id, price_cents, reserved_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, member_id, class_id, price_cents, reserved_at, cancelled_at
	`

	var res Reservation
	err := r.db.GetContext(ctx, &res, query, uuid.New(), memberID, classID, priceCents, reservedAt)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	query := `
		SELECT id, member_id, class_id, price_cents, reserved_at, cancelled_at
		FROM reservations
		WHERE id = $1
	`

	var res Reservation
	err := r.db.GetContext(ctx, &res, query, id)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) error {
	query := `
		UPDATE reservations
		SET cancelled_at = $2
		WHERE id = $1 AND cancelled_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, id, cancelledAt)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFoundOrAlreadyCancelled
	}

	return nil
}

func (r *repository) CountActiveForClass(ctx context.Context, classID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE class_id = $1 AND cancelled_at IS NULL
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, classID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) HasActiveReservation(ctx context.Context, memberID, classID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE member_id = $1 AND class_id = $2 AND cancelled_at IS NULL
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, memberID, classID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]Reservation, error) {
	query := `
		SELECT id, member_id, class_id, price_cents, reserved_at, cancelled_at
		FROM reservations
		WHERE member_id = $1
		ORDER BY reserved_at DESC
	`

	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, query, memberID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) ListByClass(ctx context.Context, classID uuid.UUID) ([]ReservationWithDetails, error) {
	query := `
		SELECT
			res.id,
			res.member_id,
			res.class_id,
			res.price_cents,
			res.reserved_at,
			res.cancelled_at,
			c.name AS class_name,
			c.start_at AS class_start,
			m.name AS member_name,
			m.email AS member_email
		FROM reservations res
		JOIN classes c ON res.class_id = c.id
		JOIN members m ON res.member_id = m.id
		WHERE res.class_id = $1
		ORDER BY res.reserved_at DESC
	`

	var reservations []ReservationWithDetails
	err := r.db.SelectContext(ctx, &reservations, query, classID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}
