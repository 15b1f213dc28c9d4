package class

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ActiveCounter reports live active-reservation counts per class. The
// in-memory reservation repository satisfies it.
type ActiveCounter interface {
	CountActiveForClass(ctx context.Context, classID uuid.UUID) (int, error)
}

// MemoryRepository is a mutex-guarded in-memory Repository.
type MemoryRepository struct {
	mu      sync.RWMutex
	classes map[uuid.UUID]FitnessClass
	counter ActiveCounter
}

// NewMemoryRepository builds an in-memory class store. counter may be nil
// when availability listings are not needed.
func NewMemoryRepository(counter ActiveCounter) *MemoryRepository {
	return &MemoryRepository{
		classes: make(map[uuid.UUID]FitnessClass),
		counter: counter,
	}
}

func (r *MemoryRepository) Create(_ context.Context, name, instructor string, capacity int, startAt time.Time) (*FitnessClass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fc := FitnessClass{
		ID:         uuid.New(),
		Name:       name,
		Instructor: instructor,
		Capacity:   capacity,
		StartAt:    startAt.UTC(),
		CreatedAt:  time.Now().UTC(),
	}

	r.classes[fc.ID] = fc

	out := fc
	return &out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*FitnessClass, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fc, ok := r.classes[id]
	if !ok {
		return nil, ErrClassNotFound
	}

	out := fc
	return &out, nil
}

func (r *MemoryRepository) GetAll(_ context.Context) ([]FitnessClass, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classes := make([]FitnessClass, 0, len(r.classes))
	for _, fc := range r.classes {
		classes = append(classes, fc)
	}

	sort.Slice(classes, func(i, j int) bool {
		return classes[i].StartAt.Before(classes[j].StartAt)
	})

	return classes, nil
}

func (r *MemoryRepository) ListWithAvailability(ctx context.Context) ([]ClassWithAvailability, error) {
	classes, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ClassWithAvailability, 0, len(classes))
	for _, fc := range classes {
		active := 0
		if r.counter != nil {
			active, err = r.counter.CountActiveForClass(ctx, fc.ID)
			if err != nil {
				return nil, err
			}
		}

		out = append(out, ClassWithAvailability{
			FitnessClass: fc,
			ActiveCount:  active,
			Available:    fc.Capacity - active,
			IsFull:       active >= fc.Capacity,
		})
	}

	return out, nil
}
