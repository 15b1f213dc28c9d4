package class

import (
	"time"

	"github.com/google/uuid"
)

// FitnessClass is a scheduled class with a fixed seat capacity. Classes are
// immutable once created; there is no reschedule or resize operation.
type FitnessClass struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Instructor string    `db:"instructor" json:"instructor"`
	Capacity   int       `db:"capacity" json:"capacity"`
	StartAt    time.Time `db:"start_at" json:"start_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ClassWithAvailability decorates a class with its live occupancy and, when
// requested for a member, the price a new reservation would cost right now.
type ClassWithAvailability struct {
	FitnessClass
	ActiveCount int    `db:"active_count" json:"active_count"`
	Available   int    `json:"available"`
	IsFull      bool   `json:"is_full"`
	QuoteCents  *int64 `json:"quote_cents,omitempty"`
}

type CreateClassRequest struct {
	Name       string `json:"name" binding:"required"`
	Instructor string `json:"instructor" binding:"required"`
	Capacity   int    `json:"capacity" binding:"required,min=1"`
	StartAt    string `json:"start_at" binding:"required"`
}
