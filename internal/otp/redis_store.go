package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Harshkesharwani789/wave-backend/internal/config"
)

// RedisStore keeps OTP codes in Redis with automatic expiry. A verified
// code is deleted so it cannot be replayed.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(cfg config.RedisConfig, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{
		client: client,
		prefix: prefix,
	}, nil
}

func (s *RedisStore) key(phone string) string {
	return fmt.Sprintf("%s:%s", s.prefix, phone)
}

// Save stores the code for the phone, replacing any outstanding code.
func (s *RedisStore) Save(ctx context.Context, phone, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(phone), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save otp in redis: %w", err)
	}
	return nil
}

// Verify checks the code and consumes it on success.
func (s *RedisStore) Verify(ctx context.Context, phone, code string) error {
	key := s.key(phone)

	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrOTPNotFound
		}
		return fmt.Errorf("failed to get otp from redis: %w", err)
	}

	if stored != code {
		return ErrOTPMismatch
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to consume otp in redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
