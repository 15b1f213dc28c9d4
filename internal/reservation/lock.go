package reservation

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex hands out one mutex per key so that admissions for different
// classes (or cancellations of different reservations) never contend with
// each other. Entries are kept for the process lifetime; the key space is
// bounded by the number of live classes and reservations.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key uuid.UUID) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
