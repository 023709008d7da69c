package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shareit/internal/config"
	"shareit/internal/models"

	"github.com/redis/go-redis/v9"
)

const searchGenKey = "search_gen"

// RedisCache keeps item search results in redis. Invalidation bumps a
// generation counter so stale keys simply expire.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a redis client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, searchGenKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get cache generation: %w", err)
	}
	return gen, nil
}

func (c *RedisCache) GetItems(ctx context.Context, key string) ([]models.Item, bool, error) {
	if c.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}

	gen, err := c.generation(ctx)
	if err != nil {
		return nil, false, err
	}

	val, err := c.client.Get(ctx, fmt.Sprintf("search:%d:%s", gen, key)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get items from redis: %w", err)
	}

	var items []models.Item
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal items: %w", err)
	}
	return items, true, nil
}

func (c *RedisCache) SetItems(ctx context.Context, key string, items []models.Item) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	gen, err := c.generation(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}

	if err := c.client.Set(ctx, fmt.Sprintf("search:%d:%s", gen, key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set items in redis: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := c.client.Incr(ctx, searchGenKey).Err(); err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}
	return nil
}

// Ping checks the redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}
