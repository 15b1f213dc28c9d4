package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, memberID, classID uuid.UUID, priceCents int64, reservedAt time.Time) (*Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	// Cancel stamps the cancellation time on an active reservation. It must
	// refuse to touch a reservation that is already cancelled.
	Cancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) error
	CountActiveForClass(ctx context.Context, classID uuid.UUID) (int, error)
	HasActiveReservation(ctx context.Context, memberID, classID uuid.UUID) (bool, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]Reservation, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]ReservationWithDetails, error)
}
