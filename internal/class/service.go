package class

import (
	"context"
	"errors"
	"time"

	"classbook/internal/member"
	"classbook/internal/pricing"

	"github.com/google/uuid"
)

var ErrInvalidClass = errors.New("invalid class")

type Service interface {
	Create(ctx context.Context, req CreateClassRequest) (*FitnessClass, error)
	GetByID(ctx context.Context, id uuid.UUID) (*FitnessClass, error)
	List(ctx context.Context, tier member.Tier) ([]ClassWithAvailability, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateClassRequest) (*FitnessClass, error) {
	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, ErrInvalidClass
	}

	if req.Capacity <= 0 {
		return nil, ErrInvalidClass
	}

	// Start times are stored timezone-normalized.
	return s.repo.Create(ctx, req.Name, req.Instructor, req.Capacity, startAt.UTC())
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*FitnessClass, error) {
	fc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrClassNotFound
	}
	return fc, nil
}

// List returns all classes with live availability. When tier is a valid
// membership tier, each open class also carries the price a reservation
// would cost that member right now.
func (s *service) List(ctx context.Context, tier member.Tier) ([]ClassWithAvailability, error) {
	classes, err := s.repo.ListWithAvailability(ctx)
	if err != nil {
		return nil, err
	}

	if !tier.Valid() {
		return classes, nil
	}

	for i := range classes {
		if classes[i].IsFull || classes[i].Capacity <= 0 {
			continue
		}
		quote := pricing.Quote(tier, classes[i].ActiveCount, classes[i].Capacity, classes[i].StartAt)
		classes[i].QuoteCents = &quote
	}

	return classes, nil
}
