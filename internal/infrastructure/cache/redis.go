// Package cache provides the Redis-backed cache repository used to keep
// the public catalog fast. Keys live under a small fixed namespace and the
// whole namespace is invalidated after any admin write.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/infrastructure/config"
	"github.com/denizsemerci/egeli-betty/internal/ports/outbound"
)

// Key namespace for recipe caching. DeletePrefix(KeyPrefix) wipes
// everything the public handlers ever cache.
const (
	KeyPrefix     = "egelibetty:"
	KeyRecipeList = KeyPrefix + "recipes:list:"
	KeyRecipeSlug = KeyPrefix + "recipes:slug:"
)

// ListKey builds the cache key for a filtered catalog listing.
func ListKey(category, search string, limit, offset int) string {
	return fmt.Sprintf("%s%s:%s:%d:%d", KeyRecipeList, category, search, limit, offset)
}

// SlugKey builds the cache key for a single recipe page.
func SlugKey(slug string) string {
	return KeyRecipeSlug + slug
}

// NewRedisClient creates and pings a Redis client.
func NewRedisClient(cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis client initialized", zap.String("addr", cfg.RedisAddr()))
	return client, nil
}

// RedisRepository implements the cache repository interface on Redis.
type RedisRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisRepository creates a new Redis cache repository
func NewRedisRepository(client *redis.Client, logger *zap.Logger) outbound.CacheRepository {
	return &RedisRepository{
		client: client,
		logger: logger.Named("cache"),
	}
}

// Get retrieves a value, returning outbound.ErrCacheMiss for absent keys.
func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, outbound.ErrCacheMiss
		}
		r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// Set stores a value with a TTL
func (r *RedisRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a single key
func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("Cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// DeletePrefix removes every key under a prefix using SCAN so large
// namespaces don't block the server.
func (r *RedisRepository) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			r.logger.Warn("Cache prefix delete failed",
				zap.String("key", iter.Val()),
				zap.Error(err),
			)
			return err
		}
	}
	return iter.Err()
}
