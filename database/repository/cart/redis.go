package cartRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"servicehub/models"
	"servicehub/utils"

	"github.com/go-redis/redis/v8"
)

// RedisCartStorage keeps each cart as a JSON list under cart:<userID>.
type RedisCartStorage struct {
	client *redis.Client
}

func NewRedisCartStorage(client *redis.Client) CartStorage {
	return &RedisCartStorage{client: client}
}

func (s *RedisCartStorage) key(userID string) string {
	return utils.CartKeyPrefix + userID
}

func (s *RedisCartStorage) Load(ctx context.Context, userID string) ([]models.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	raw, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for %s: %w", userID, err)
	}

	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart for %s: %w", userID, err)
	}
	return items, nil
}

func (s *RedisCartStorage) Save(ctx context.Context, userID string, items []models.CartItem) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart for %s: %w", userID, err)
	}
	return nil
}
