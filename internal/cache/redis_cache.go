package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Harshkesharwani789/wave-backend/internal/config"
	"github.com/Harshkesharwani789/wave-backend/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// RedisCatalogCache caches the rendered catalog tree and home lists so
// catalog reads do not hit the database on every request.
type RedisCatalogCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCatalogCache(cfg config.RedisConfig, prefix string) (*RedisCatalogCache, error) {
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

	return &RedisCatalogCache{
		client: client,
		prefix: prefix,
	}, nil
}

func (c *RedisCatalogCache) TreeKey() string {
	return fmt.Sprintf("%s:tree", c.prefix)
}

func (c *RedisCatalogCache) RecommendedKey() string {
	return fmt.Sprintf("%s:recommended", c.prefix)
}

func (c *RedisCatalogCache) MostBookedKey() string {
	return fmt.Sprintf("%s:most_booked", c.prefix)
}

func (c *RedisCatalogCache) GetTree(ctx context.Context, key string) ([]domain.CategoryTree, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var tree []domain.CategoryTree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return tree, nil
}

func (c *RedisCatalogCache) SetTree(ctx context.Context, key string, tree []domain.CategoryTree, ttl time.Duration) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

func (c *RedisCatalogCache) GetSubServices(ctx context.Context, key string) ([]domain.SubService, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var out []domain.SubService
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return out, nil
}

func (c *RedisCatalogCache) SetSubServices(ctx context.Context, key string, subs []domain.SubService, ttl time.Duration) error {
	data, err := json.Marshal(subs)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

// Invalidate drops all catalog cache entries. Called after any catalog
// mutation.
func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	keys := []string{c.TreeKey(), c.RecommendedKey(), c.MostBookedKey()}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}
