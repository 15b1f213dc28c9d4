package class

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrClassNotFound = errors.New("class not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, instructor string, capacity int, startAt time.Time) (*FitnessClass, error) {
	query := `
		INSERT INTO classes (id, name, instructor, capacity, start_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, instructor, capacity, start_at, created_at
	`

	var fc FitnessClass
	err := r.db.GetContext(ctx, &fc, query, uuid.New(), name, instructor, capacity, startAt)
	if err != nil {
		return nil, err
	}

	return &fc, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*FitnessClass, error) {
	query := `
		SELECT id, name, instructor, capacity, start_at, created_at
		FROM classes
		WHERE id = $1
	`

	var fc FitnessClass
	err := r.db.GetContext(ctx, &fc, query, id)
	if err != nil {
		return nil, err
	}

	return &fc, nil
}

func (r *repository) GetAll(ctx context.Context) ([]FitnessClass, error) {
	query := `
		SELECT id, name, instructor, capacity, start_at, created_at
		FROM classes
		ORDER BY start_at
	`

	var classes []FitnessClass
	err := r.db.SelectContext(ctx, &classes, query)
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) ListWithAvailability(ctx context.Context) ([]ClassWithAvailability, error) {
	query := `
		SELECT
			c.id,
			c.name,
			c.instructor,
			c.capacity,
			c.start_at,
			c.created_at,
			COUNT(r.id) FILTER (WHERE r.cancelled_at IS NULL) AS active_count
		FROM classes c
		LEFT JOIN reservations r ON r.class_id = c.id
		GROUP BY c.id
		ORDER BY c.start_at
	`

	var classes []ClassWithAvailability
	err := r.db.SelectContext(ctx, &classes, query)
	if err != nil {
		return nil, err
	}

	for i := range classes {
		classes[i].Available = classes[i].Capacity - classes[i].ActiveCount
		classes[i].IsFull = classes[i].ActiveCount >= classes[i].Capacity
	}

	return classes, nil
}
