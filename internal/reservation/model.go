package reservation

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a member's seat in a class. The price is fixed at
// admission time and never changes; cancellation is the only mutation and
// is one-way.
type Reservation struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	MemberID    uuid.UUID  `db:"member_id" json:"member_id"`
	ClassID     uuid.UUID  `db:"class_id" json:"class_id"`
	PriceCents  int64      `db:"price_cents" json:"price_cents"`
	ReservedAt  time.Time  `db:"reserved_at" json:"reserved_at"`
	CancelledAt *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
}

// Active reports whether the reservation still holds its seat.
func (r *Reservation) Active() bool {
	return r.CancelledAt == nil
}

// ReservationWithDetails joins in the class and member a reservation
// belongs to, for admin listings.
type ReservationWithDetails struct {
	Reservation
	ClassName   string    `db:"class_name" json:"class_name"`
	ClassStart  time.Time `db:"class_start" json:"class_start"`
	MemberName  string    `db:"member_name" json:"member_name"`
	MemberEmail string    `db:"member_email" json:"member_email"`
}

type CreateReservationRequest struct {
	ClassID string `json:"class_id" binding:"required,uuid"`
}

type CancelReservationResponse struct {
	RefundCents int64  `json:"refund_cents"`
	Message     string `json:"message" example:"Reservation cancelled"`
}
