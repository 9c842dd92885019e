package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/observability"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Store is one user's cart: at most one entry per service id, persisted in
// full after every mutation. Writes are serialized per store.
type Store struct {
	userID     string
	storage    repository.CartStorage
	logger     *zap.Logger
	maxRetries int
	newBackOff func() backoff.BackOff

	mu    sync.Mutex
	items []models.CartItem
	// hydrated is set only after a successful load. Until then nothing is
	// written back, so a failed load can never overwrite the stored cart.
	hydrated bool
	// dirty marks in-memory changes that storage does not hold yet.
	dirty bool
}

const hydrateTimeout = 5 * time.Second

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMaxRetries bounds how many times a failed write is retried.
func WithMaxRetries(n int) Option {
	return func(s *Store) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithBackOff replaces the retry delay policy.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(s *Store) { s.newBackOff = f }
}

// NewStore creates an empty, not yet hydrated cart for userID.
func NewStore(userID string, storage repository.CartStorage, opts ...Option) *Store {
	s := &Store{
		userID:     userID,
		storage:    storage,
		logger:     zap.NewNop(),
		maxRetries: 3,
		newBackOff: defaultBackOff,
		items:      []models.CartItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads the persisted list. It is a no-op once a load succeeded; a
// failed load leaves the store unhydrated and the next call tries again.
// Entries mutated in memory before the load win over persisted ones with the
// same id, and the merged list is written back.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hydrated {
		return nil
	}

	// Loads ignore client cancellation; the store is shared across requests.
	lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), hydrateTimeout)
	defer cancel()

	loaded, err := s.storage.Load(lctx, s.userID)
	if err != nil {
		s.logger.Warn("Cart hydrate failed, retrying on next access", zap.String("userId", s.userID), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNotLoaded, err)
	}

	merged := append([]models.CartItem{}, loaded...)
	for _, item := range s.items {
		if i := indexOf(merged, item.ID); i >= 0 {
			merged[i] = item
		} else {
			merged = append(merged, item)
		}
	}
	s.items = merged
	s.hydrated = true

	if s.dirty {
		s.persist(lctx, s.snapshot())
	}
	return nil
}

// Loaded reports whether the persisted cart has been loaded.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// idle reports whether the store can be dropped without losing changes. A
// store busy loading or writing is never idle.
func (s *Store) idle() bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()
	return !s.dirty
}

// AddOrUpdate merges the patch into the entry with the same id, or appends a
// new entry with quantity defaulting to 1.
func (s *Store) AddOrUpdate(ctx context.Context, patch models.CartItemPatch) (models.CartItem, SyncResult, error) {
	if patch.ID == "" {
		return models.CartItem{}, SyncResult{}, ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var item models.CartItem
	if i := indexOf(s.items, patch.ID); i >= 0 {
		patch.ApplyTo(&s.items[i])
		item = s.items[i]
	} else {
		item = models.CartItem{ID: patch.ID, Quantity: 1}
		patch.ApplyTo(&item)
		s.items = append(s.items, item)
	}

	observability.CartMutationsTotal.WithLabelValues("add_or_update").Inc()
	return item, s.persist(ctx, s.snapshot()), nil
}

// Remove drops the entry with id. Removing an absent id still persists.
func (s *Store) Remove(ctx context.Context, id string) SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.CartItem, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept

	observability.CartMutationsTotal.WithLabelValues("remove").Inc()
	return s.persist(ctx, s.snapshot())
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []models.CartItem{}

	observability.CartMutationsTotal.WithLabelValues("clear").Inc()
	return s.persist(ctx, s.snapshot())
}

// UpdateQuantity sets the quantity of an existing entry. No bound is
// enforced; callers guard against zero or negative values.
func (s *Store) UpdateQuantity(ctx context.Context, id string, n int) (SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.items, id)
	if i < 0 {
		return SyncResult{}, ErrItemNotFound
	}
	s.items[i].Quantity = n

	observability.CartMutationsTotal.WithLabelValues("update_quantity").Inc()
	return s.persist(ctx, s.snapshot()), nil
}

// Items returns a copy of the current entries in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Get returns the entry for id.
func (s *Store) Get(id string) (models.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.items, id); i >= 0 {
		return s.items[i], true
	}
	return models.CartItem{}, false
}

func (s *Store) snapshot() []models.CartItem {
	return append([]models.CartItem{}, s.items...)
}

func indexOf(items []models.CartItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
