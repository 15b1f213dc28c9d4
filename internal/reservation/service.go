package reservation

import (
	"context"
	"errors"
	"time"

	"classbook/internal/class"
	"classbook/internal/logger"
	"classbook/internal/member"
	"classbook/internal/metrics"
	"classbook/internal/pricing"
	"classbook/internal/refund"

	"github.com/google/uuid"
)

var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrClassNotFound        = errors.New("class not found")
	ErrClassFull            = errors.New("class is full")
	ErrDuplicateReservation = errors.New("member already has an active reservation for this class")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrAlreadyCancelled     = errors.New("reservation is already cancelled")
)

// Mailer sends confirmation mail after a successful admission or
// cancellation. A nil Mailer disables notifications.
type Mailer interface {
	SendReservationConfirmation(ctx context.Context, to, name, className string, startAt time.Time, priceCents int64) error
	SendCancellationConfirmation(ctx context.Context, to, name, className string, refundCents int64) error
}

type Service interface {
	// Create admits memberID into classID, pricing the seat at the moment
	// of booking. now is the reservation timestamp.
	Create(ctx context.Context, memberID, classID uuid.UUID, now time.Time) (*Reservation, error)
	// Cancel cancels an active reservation and returns the refund in cents.
	Cancel(ctx context.Context, reservationID uuid.UUID, now time.Time) (int64, error)
	GetByID(ctx context.Context, reservationID uuid.UUID) (*Reservation, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]Reservation, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]ReservationWithDetails, error)
}

type service struct {
	reservations Repository
	members      member.Repository
	classes      class.Repository
	mailer       Mailer

	// classLocks serializes the check-then-insert admission sequence per
	// class; resLocks does the same for the cancel read-modify-write per
	// reservation. Unrelated classes and reservations stay concurrent.
	classLocks *keyedMutex
	resLocks   *keyedMutex
}

func NewService(reservations Repository, members member.Repository, classes class.Repository, mailer Mailer) Service {
	return &service{
		reservations: reservations,
		members:      members,
		classes:      classes,
		mailer:       mailer,
		classLocks:   newKeyedMutex(),
		resLocks:     newKeyedMutex(),
	}
}

func (s *service) Create(ctx context.Context, memberID, classID uuid.UUID, now time.Time) (*Reservation, error) {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		metrics.RecordReservation("member_not_found")
		return nil, ErrMemberNotFound
	}

	fc, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		metrics.RecordReservation("class_not_found")
		return nil, ErrClassNotFound
	}

	// Creation rules forbid non-positive capacity; checked anyway before
	// the reservation store is touched.
	if fc.Capacity <= 0 {
		metrics.RecordReservation("class_full")
		return nil, ErrClassFull
	}

	// Duplicate and capacity checks plus the insert form a check-then-act
	// sequence; the per-class lock makes it atomic against concurrent
	// admissions for the same class.
	unlock := s.classLocks.Lock(classID)
	defer unlock()

	hasActive, err := s.reservations.HasActiveReservation(ctx, memberID, classID)
	if err != nil {
		return nil, err
	}
	if hasActive {
		metrics.RecordReservation("duplicate_reservation")
		return nil, ErrDuplicateReservation
	}

	activeCount, err := s.reservations.CountActiveForClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if activeCount >= fc.Capacity {
		metrics.RecordReservation("class_full")
		return nil, ErrClassFull
	}

	// Occupancy is measured before this reservation is added.
	priceCents := pricing.Quote(m.Tier, activeCount, fc.Capacity, fc.StartAt)

	res, err := s.reservations.Create(ctx, memberID, classID, priceCents, now)
	if err != nil {
		return nil, err
	}

	metrics.RecordReservation("created")
	metrics.RecordReservationPrice(priceCents)

	if s.mailer != nil {
		if err := s.mailer.SendReservationConfirmation(ctx, m.Email, m.Name, fc.Name, fc.StartAt, priceCents); err != nil {
			logger.Error("failed to queue reservation confirmation", "error", err, "reservation_id", res.ID)
		}
	}

	return res, nil
}

func (s *service) Cancel(ctx context.Context, reservationID uuid.UUID, now time.Time) (int64, error) {
	// Serialize against a concurrent cancel of the same reservation so
	// only one caller can pass the "still active" check.
	unlock := s.resLocks.Lock(reservationID)
	defer unlock()

	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return 0, ErrReservationNotFound
	}

	if !res.Active() {
		return 0, ErrAlreadyCancelled
	}

	fc, err := s.classes.GetByID(ctx, res.ClassID)
	if err != nil {
		// Reservations always reference a stored class; a miss here is a
		// data-integrity problem, not a caller mistake.
		return 0, ErrClassNotFound
	}

	refundCents, err := refund.Amount(res.PriceCents, fc.StartAt, now)
	if err != nil {
		return 0, err
	}

	if err := s.reservations.Cancel(ctx, reservationID, now); err != nil {
		if errors.Is(err, ErrNotFoundOrAlreadyCancelled) {
			return 0, ErrAlreadyCancelled
		}
		return 0, err
	}

	metrics.RecordCancellation(refundCents)

	if s.mailer != nil {
		if m, merr := s.members.GetByID(ctx, res.MemberID); merr == nil {
			if err := s.mailer.SendCancellationConfirmation(ctx, m.Email, m.Name, fc.Name, refundCents); err != nil {
				logger.Error("failed to queue cancellation confirmation", "error", err, "reservation_id", reservationID)
			}
		}
	}

	return refundCents, nil
}

func (s *service) GetByID(ctx context.Context, reservationID uuid.UUID) (*Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, ErrReservationNotFound
	}
	return res, nil
}

func (s *service) ListByMember(ctx context.Context, memberID uuid.UUID) ([]Reservation, error) {
	return s.reservations.ListByMember(ctx, memberID)
}

func (s *service) ListByClass(ctx context.Context, classID uuid.UUID) ([]ReservationWithDetails, error) {
	return s.reservations.ListByClass(ctx, classID)
}
