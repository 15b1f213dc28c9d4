package reservation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is a mutex-guarded in-memory Repository. Reservations
// are value-copied in and out so callers can never mutate stored state
// behind the lock's back.
type MemoryRepository struct {
	mu           sync.RWMutex
	reservations map[uuid.UUID]Reservation
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		reservations: make(map[uuid.UUID]Reservation),
	}
}

func (r *MemoryRepository) Create(_ context.Context, memberID, classID uuid.UUID, priceCents int64, reservedAt time.Time) (*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := Reservation{
		ID:         uuid.New(),
		MemberID:   memberID,
		ClassID:    classID,
		PriceCents: priceCents,
		ReservedAt: reservedAt,
	}

	r.reservations[res.ID] = res

	out := res
	return &out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, ErrNotFoundOrAlreadyCancelled
	}

	out := res
	if res.CancelledAt != nil {
		at := *res.CancelledAt
		out.CancelledAt = &at
	}
	return &out, nil
}

func (r *MemoryRepository) Cancel(_ context.Context, id uuid.UUID, cancelledAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok || res.CancelledAt != nil {
		return ErrNotFoundOrAlreadyCancelled
	}

	at := cancelledAt
	res.CancelledAt = &at
	r.reservations[id] = res

	return nil
}

func (r *MemoryRepository) CountActiveForClass(_ context.Context, classID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, res := range r.reservations {
		if res.ClassID == classID && res.CancelledAt == nil {
			count++
		}
	}

	return count, nil
}

func (r *MemoryRepository) HasActiveReservation(_ context.Context, memberID, classID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, res := range r.reservations {
		if res.MemberID == memberID && res.ClassID == classID && res.CancelledAt == nil {
			return true, nil
		}
	}

	return false, nil
}

func (r *MemoryRepository) ListByMember(_ context.Context, memberID uuid.UUID) ([]Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Reservation
	for _, res := range r.reservations {
		if res.MemberID == memberID {
			out = append(out, res)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ReservedAt.After(out[j].ReservedAt)
	})

	return out, nil
}

// ListByClass returns bare reservations; the in-memory store has no class
// or member records to join against.
func (r *MemoryRepository) ListByClass(_ context.Context, classID uuid.UUID) ([]ReservationWithDetails, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []ReservationWithDetails
	for _, res := range r.reservations {
		if res.ClassID == classID {
			out = append(out, ReservationWithDetails{Reservation: res})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ReservedAt.After(out[j].ReservedAt)
	})

	return out, nil
}
