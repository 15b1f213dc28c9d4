package class

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, name, instructor string, capacity int, startAt time.Time) (*FitnessClass, error)
	GetByID(ctx context.Context, id uuid.UUID) (*FitnessClass, error)
	GetAll(ctx context.Context) ([]FitnessClass, error)
	ListWithAvailability(ctx context.Context) ([]ClassWithAvailability, error)
}
