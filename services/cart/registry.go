package cart

import (
	"context"
	"sync"
	"time"

	"servicehub/database/repository"
)

const (
	// DefaultIdleTTL is how long an untouched store stays cached.
	DefaultIdleTTL = 30 * time.Minute
	maxSweepEvery  = time.Minute
)

type registryEntry struct {
	store    *Store
	lastUsed time.Time
}

// Registry hands out one hydrated Store per user. Stores idle for longer than
// IdleTTL are dropped and reload from storage on next use; stores holding
// unsaved changes are kept.
type Registry struct {
	IdleTTL time.Duration
	Now     func() time.Time

	storage repository.CartStorage
	opts    []Option

	mu        sync.Mutex
	stores    map[string]*registryEntry
	lastSweep time.Time
}

func NewRegistry(storage repository.CartStorage, opts ...Option) *Registry {
	return &Registry{
		IdleTTL: DefaultIdleTTL,
		Now:     time.Now,
		storage: storage,
		opts:    opts,
		stores:  make(map[string]*registryEntry),
	}
}

// Get returns the user's cart, hydrating it first. When the load fails the
// error wraps ErrNotLoaded; the returned store keeps changes in memory only
// and the next Get retries the load.
func (r *Registry) Get(ctx context.Context, userID string) (*Store, error) {
	now := r.Now()

	r.mu.Lock()
	r.sweepLocked(now)
	e, ok := r.stores[userID]
	if !ok {
		e = &registryEntry{store: NewStore(userID, r.storage, r.opts...)}
		r.stores[userID] = e
	}
	e.lastUsed = now
	s := e.store
	r.mu.Unlock()

	if err := s.Hydrate(ctx); err != nil {
		return s, err
	}
	return s, nil
}

// Len returns the number of cached stores.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Evict drops every store idle since before now-IdleTTL. It returns the number dropped.
func (r *Registry) Evict(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evictLocked(now)
}

func (r *Registry) sweepLocked(now time.Time) {
	if r.IdleTTL <= 0 {
		return
	}
	every := r.IdleTTL
	if every > maxSweepEvery {
		every = maxSweepEvery
	}
	if now.Sub(r.lastSweep) < every {
		return
	}
	r.evictLocked(now)
}

func (r *Registry) evictLocked(now time.Time) int {
	r.lastSweep = now
	if r.IdleTTL <= 0 {
		return 0
	}
	dropped := 0
	for id, e := range r.stores {
		if now.Sub(e.lastUsed) >= r.IdleTTL && e.store.idle() {
			delete(r.stores, id)
			dropped++
		}
	}
	return dropped
}
