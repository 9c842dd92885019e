package cartRepo

import (
	"context"
	"sync"

	"servicehub/models"
)

// MemoryCartStorage is an in-process CartStorage for tests and local runs.
type MemoryCartStorage struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem
}

func NewMemoryCartStorage() *MemoryCartStorage {
	return &MemoryCartStorage{carts: make(map[string][]models.CartItem)}
}

func (s *MemoryCartStorage) Load(_ context.Context, userID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem{}, s.carts[userID]...), nil
}

func (s *MemoryCartStorage) Save(_ context.Context, userID string, items []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = append([]models.CartItem(nil), items...)
	return nil
}
