package cart

import (
	"context"
	"time"

	"servicehub/models"
	"servicehub/observability"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// SyncResult reports the outcome of writing the cart to storage after a mutation.
// The in-memory mutation stands even when Persisted is false.
type SyncResult struct {
	Persisted bool  `json:"persisted"`
	Attempts  int   `json:"attempts"`
	Err       error `json:"-"`
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 3 * time.Second
	return b
}

// persist writes items with bounded exponential retry. Caller holds s.mu.
// Before a successful hydrate nothing is written and the change stays dirty.
func (s *Store) persist(ctx context.Context, items []models.CartItem) SyncResult {
	var res SyncResult
	if !s.hydrated {
		s.dirty = true
		res.Err = ErrNotLoaded
		return res
	}
	op := func() error {
		res.Attempts++
		return s.storage.Save(ctx, s.userID, items)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), uint64(s.maxRetries)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		s.dirty = true
		res.Err = err
		observability.CartPersistFailures.Inc()
		s.logger.Warn("Cart persist failed",
			zap.String("userId", s.userID),
			zap.Int("attempts", res.Attempts),
			zap.Error(err),
		)
		return res
	}
	s.dirty = false
	res.Persisted = true
	return res
}
