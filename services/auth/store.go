package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/utils"

	"github.com/go-redis/redis/v8"
)

// OTPStore holds hashed pending codes.
type OTPStore interface {
	Save(ctx context.Context, phone, hash string, ttl time.Duration) error
	// Get returns ErrOTPExpired when no code is pending.
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func (s *RedisOTPStore) Save(ctx context.Context, phone, hash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, utils.OTPKeyPrefix+phone, hash, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}
	return nil
}

func (s *RedisOTPStore) Get(ctx context.Context, phone string) (string, error) {
	hash, err := s.client.Get(ctx, utils.OTPKeyPrefix+phone).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPExpired
	}
	if err != nil {
		return "", fmt.Errorf("failed to read OTP: %w", err)
	}
	return hash, nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, utils.OTPKeyPrefix+phone).Err()
}
