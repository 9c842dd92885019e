package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/utils"

	"github.com/go-redis/redis/v8"
)

// TokenStore maps users to their FCM device token.
type TokenStore interface {
	Set(ctx context.Context, userID, token string) error
	// Get returns ErrNoDeviceToken when nothing is registered.
	Get(ctx context.Context, userID string) (string, error)
}

// RedisTokenStore keeps tokens under fcm:<userID>.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Set(ctx context.Context, userID, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.client.Set(ctx, utils.DeviceTokenPrefix+userID, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to store device token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Get(ctx context.Context, userID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	token, err := s.client.Get(ctx, utils.DeviceTokenPrefix+userID).Result()
	if errors.Is(err, redis.Nil) || (err == nil && token == "") {
		return "", ErrNoDeviceToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read device token: %w", err)
	}
	return token, nil
}
