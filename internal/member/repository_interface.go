package member

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, role string, tier Tier) (*Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
