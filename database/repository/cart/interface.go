package cartRepo

import (
	"context"

	"servicehub/models"
)

// CartStorage persists a user's full cart list.
type CartStorage interface {
	// Load returns the persisted list, or an empty list when nothing was stored.
	Load(ctx context.Context, userID string) ([]models.CartItem, error)
	// Save overwrites the persisted list.
	Save(ctx context.Context, userID string, items []models.CartItem) error
}
