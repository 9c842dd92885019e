package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"servicehub/database/repository"
	"servicehub/models"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyStorage struct {
	mu        sync.Mutex
	inner     *repository.MemoryCartStorage
	failSaves int
	saves     int
	loads     int
	loadErr   error
}

func newFlaky() *flakyStorage {
	return &flakyStorage{inner: repository.NewMemoryCartStorage()}
}

func (f *flakyStorage) Load(ctx context.Context, userID string) ([]models.CartItem, error) {
	f.mu.Lock()
	f.loads++
	err := f.loadErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.inner.Load(ctx, userID)
}

func (f *flakyStorage) Save(ctx context.Context, userID string, items []models.CartItem) error {
	f.mu.Lock()
	f.saves++
	fail := f.failSaves > 0
	if fail {
		f.failSaves--
	}
	f.mu.Unlock()
	if fail {
		return errors.New("storage unavailable")
	}
	return f.inner.Save(ctx, userID, items)
}

func noDelay() backoff.BackOff { return &backoff.ZeroBackOff{} }

func newTestStore(storage repository.CartStorage, opts ...Option) *Store {
	return NewStore("u1", storage, append([]Option{WithBackOff(noDelay)}, opts...)...)
}

func newLoadedStore(t *testing.T, storage repository.CartStorage, opts ...Option) *Store {
	t.Helper()
	s := newTestStore(storage, opts...)
	require.NoError(t, s.Hydrate(context.Background()))
	return s
}

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }
func qty(n int) *int         { return &n }

func TestAddOrUpdate_Idempotence(t *testing.T) {
	ctx := context.Background()
	s := newLoadedStore(t, newFlaky())

	_, _, err := s.AddOrUpdate(ctx, models.CartItemPatch{ID: "s1", Title: str("Plumbing"), Price: num(10)})
	require.NoError(t, err)
	item, res, err := s.AddOrUpdate(ctx, models.CartItemPatch{ID: "s1", Price: num(15), Date: str("Jun 1")})
	require.NoError(t, err)
	assert.True(t, res.Persisted)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 15.0, items[0].Price)
	assert.Equal(t, "Jun 1", items[0].Date)
	assert.Equal(t, "Plumbing", items[0].Title, "fields absent from the update are preserved")
	assert.Equal(t, items[0], item)
}

func TestAddOrUpdate_QuantityDefaultsToOne(t *testing.T) {
	ctx := context.Background()
	s := newLoadedStore(t, newFlaky())

	item, _, err := s.AddOrUpdate(ctx, models.CartItemPatch{ID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	item, _, err = s.AddOrUpdate(ctx, models.CartItemPatch{ID: "s2", Quantity: qty(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
}

func TestAddOrUpdate_MissingID(t *testing.T) {
	s := newLoadedStore(t, newFlaky())

	_, _, err := s.AddOrUpdate(context.Background(), models.CartItemPatch{})
	assert.ErrorIs(t, err, ErrMissingID)
	assert.Empty(t, s.Items())
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := newLoadedStore(t, newFlaky())
	for _, id := range []string{"a", "b", "a", "c"} {
		_, _, err := s.AddOrUpdate(ctx, models.CartItemPatch{ID: id})
		require.NoError(t, err)
	}

	res := s.Remove(ctx, "a")
	assert.True(t, res.Persisted)

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Len(t, s.Items(), 2)

	res = s.Remove(ctx, "missing")
	assert.True(t, res.Persisted)
	assert.Len(t, s.Items(), 2)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	storage := newFlaky()
	s := newLoadedStore(t, storage)
	_, _, _ = s.AddOrUpdate(ctx, models.CartItemPatch{ID: "a"})

	s.Clear(ctx)

	assert.Empty(t, s.Items())
	persisted, err := storage.inner.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestUpdateQuantity_NoLowerBound(t *testing.T) {
	ctx := context.Background()
	s := newLoadedStore(t, newFlaky())
	_, _, _ = s.AddOrUpdate(ctx, models.CartItemPatch{ID: "a"})

	_, err := s.UpdateQuantity(ctx, "a", -2)
	require.NoError(t, err)
	item, _ := s.Get("a")
	assert.Equal(t, -2, item.Quantity)

	_, err = s.UpdateQuantity(ctx, "missing", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestPersist_RetriesThenSucceeds(t *testing.T) {
	storage := newFlaky()
	storage.failSaves = 2
	s := newLoadedStore(t, storage, WithMaxRetries(3))

	_, res, err := s.AddOrUpdate(context.Background(), models.CartItemPatch{ID: "a"})
	require.NoError(t, err)
	assert.True(t, res.Persisted)
	assert.Equal(t, 3, res.Attempts)
	assert.NoError(t, res.Err)
}

func TestPersist_FailureKeepsInMemoryMutation(t *testing.T) {
	storage := newFlaky()
	storage.failSaves = 10
	s := newLoadedStore(t, storage, WithMaxRetries(2))

	_, res, err := s.AddOrUpdate(context.Background(), models.CartItemPatch{ID: "a", Title: str("Kept")})
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Equal(t, 3, res.Attempts)
	assert.Error(t, res.Err)

	item, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Kept", item.Title)
}

func TestHydrate_RunsOnce(t *testing.T) {
	ctx := context.Background()
	storage := newFlaky()
	require.NoError(t, storage.inner.Save(ctx, "u1", []models.CartItem{{ID: "saved", Quantity: 2}}))
	s := newTestStore(storage)

	require.NoError(t, s.Hydrate(ctx))
	require.NoError(t, s.Hydrate(ctx))

	assert.Equal(t, 1, storage.loads)
	require.Len(t, s.Items(), 1)
	assert.Equal(t, 2, s.Items()[0].Quantity)
}

func TestHydrate_InMemoryEntriesWinAndAreWritten(t *testing.T) {
	ctx := context.Background()
	storage := newFlaky()
	require.NoError(t, storage.inner.Save(ctx, "u1", []models.CartItem{
		{ID: "a", Title: "old"},
		{ID: "b", Title: "persisted"},
	}))
	s := newTestStore(storage)
	_, res, err := s.AddOrUpdate(ctx, models.CartItemPatch{ID: "a", Title: str("new")})
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.ErrorIs(t, res.Err, ErrNotLoaded)
	assert.Zero(t, storage.saves, "nothing is written before the load")

	require.NoError(t, s.Hydrate(ctx))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].Title)
	assert.Equal(t, "persisted", items[1].Title)

	stored, err := storage.inner.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, items, stored)
}

func TestHydrate_LoadErrorIsRetried(t *testing.T) {
	ctx := context.Background()
	storage := newFlaky()
	require.NoError(t, storage.inner.Save(ctx, "u1", []models.CartItem{{ID: "a"}, {ID: "b"}}))
	storage.loadErr = errors.New("redis down")
	s := newTestStore(storage)

	err := s.Hydrate(ctx)
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Items())

	storage.loadErr = nil
	require.NoError(t, s.Hydrate(ctx))
	assert.True(t, s.Loaded())
	assert.Len(t, s.Items(), 2)
	assert.Equal(t, 2, storage.loads)
}

func TestHydrate_IgnoresCancelledContext(t *testing.T) {
	storage := newFlaky()
	require.NoError(t, storage.inner.Save(context.Background(), "u1", []models.CartItem{{ID: "a"}}))
	s := newTestStore(storage)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Hydrate(ctx))
	assert.Len(t, s.Items(), 1)
}

func TestRegistry_FailedLoadNeverOverwritesStoredCart(t *testing.T) {
	ctx := context.Background()
	storage := newFlaky()
	require.NoError(t, storage.inner.Save(ctx, "u1", []models.CartItem{{ID: "a"}, {ID: "b"}}))
	reg := NewRegistry(storage, WithBackOff(noDelay))

	storage.loadErr = errors.New("redis blip")
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	s, err := reg.Get(cancelled, "u1")
	require.ErrorIs(t, err, ErrNotLoaded)
	assert.Empty(t, s.Items())

	// A mutation on the unloaded cart stays in memory.
	_, res, err := s.AddOrUpdate(ctx, models.CartItemPatch{ID: "c"})
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Zero(t, storage.saves)

	storage.loadErr = nil
	s, err = reg.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, s.Items(), 3)

	_, res, err = s.AddOrUpdate(ctx, models.CartItemPatch{ID: "d"})
	require.NoError(t, err)
	assert.True(t, res.Persisted)

	stored, err := storage.inner.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 4)
	assert.Equal(t, []string{"a", "b", "c", "d"}, []string{stored[0].ID, stored[1].ID, stored[2].ID, stored[3].ID})
}

func TestRegistry_HydratesBeforeReturning(t *testing.T) {
	ctx := context.Background()
	storage := newFlaky()
	require.NoError(t, storage.inner.Save(ctx, "u1", []models.CartItem{{ID: "saved"}}))
	reg := NewRegistry(storage, WithBackOff(noDelay))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := reg.Get(ctx, "u1")
			assert.NoError(t, err)
			assert.Len(t, s.Items(), 1)
		}()
	}
	wg.Wait()

	a, _ := reg.Get(ctx, "u1")
	b, _ := reg.Get(ctx, "u1")
	assert.Same(t, a, b)
	assert.Equal(t, 1, storage.loads)

	other, err := reg.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other.Items())
}

func TestRegistry_EvictsIdleStoresAndReloads(t *testing.T) {
	ctx := context.Background()
	storage := newFlaky()
	reg := NewRegistry(storage, WithBackOff(noDelay))
	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	reg.Now = func() time.Time { return now }
	reg.IdleTTL = 10 * time.Minute

	first, err := reg.Get(ctx, "u1")
	require.NoError(t, err)
	_, _, err = first.AddOrUpdate(ctx, models.CartItemPatch{ID: "a"})
	require.NoError(t, err)

	// Another instance changes the stored cart meanwhile.
	require.NoError(t, storage.inner.Save(ctx, "u1", []models.CartItem{{ID: "a"}, {ID: "b"}}))

	now = now.Add(5 * time.Minute)
	assert.Zero(t, reg.Evict(now), "recently used stores stay")

	now = now.Add(11 * time.Minute)
	second, err := reg.Get(ctx, "u1")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Len(t, second.Items(), 2)
	assert.Equal(t, 2, storage.loads)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_KeepsStoresWithUnsavedChanges(t *testing.T) {
	ctx := context.Background()
	storage := newFlaky()
	reg := NewRegistry(storage, WithBackOff(noDelay), WithMaxRetries(0))
	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	reg.Now = func() time.Time { return now }
	reg.IdleTTL = time.Minute

	s, err := reg.Get(ctx, "u1")
	require.NoError(t, err)
	storage.failSaves = 1
	_, res, err := s.AddOrUpdate(ctx, models.CartItemPatch{ID: "a"})
	require.NoError(t, err)
	require.False(t, res.Persisted)

	assert.Zero(t, reg.Evict(now.Add(time.Hour)))
	assert.Equal(t, 1, reg.Len())
}
