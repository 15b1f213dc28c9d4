package member

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is a mutex-guarded in-memory Repository. It backs unit
// tests and single-process deployments without Postgres.
type MemoryRepository struct {
	mu      sync.RWMutex
	members map[uuid.UUID]Member
	byEmail map[string]uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		members: make(map[uuid.UUID]Member),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *MemoryRepository) Create(_ context.Context, name, email, passwordHash, role string, tier Tier) (*Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := Member{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Tier:         tier,
		CreatedAt:    time.Now().UTC(),
	}

	r.members[m.ID] = m
	r.byEmail[m.Email] = m.ID

	out := m
	return &out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}

	out := m
	return &out, nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrMemberNotFound
	}

	m := r.members[id]
	out := m
	return &out, nil
}

func (r *MemoryRepository) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}
