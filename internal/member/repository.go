package member

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrMemberNotFound = errors.New("member not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash, role string, tier Tier) (*Member, error) {
	query := `
		INSERT INTO members (id, name, email, password_hash, role, tier)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, password_hash, role, tier, created_at
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, uuid.New(), name, email, passwordHash, role, tier)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	query := `
		SELECT id, name, email, password_hash, role, tier, created_at
		FROM members
		WHERE id = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	query := `
		SELECT id, name, email, password_hash, role, tier, created_at
		FROM members
		WHERE email = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, email)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}
