package member

import (
	"time"

	"github.com/google/uuid"
)

// Tier is the membership level a member signs up with. It drives the base
// rate used by the pricing engine.
type Tier string

const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
	TierStudent  Tier = "student"
)

// Valid reports whether t is one of the defined tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierStandard, TierPremium, TierStudent:
		return true
	}
	return false
}

type Member struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Tier         Tier      `db:"tier" json:"tier"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Tier     string `json:"tier" binding:"required,oneof=standard premium student"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Member       *Member `json:"member"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
}
