package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Pelito1/PrimeMarket-back/config"
	"github.com/Pelito1/PrimeMarket-back/models"
)

// KeyPrefix namespaces every product entry in Redis.
const KeyPrefix = "primemarket:product:"

// LoadFunc reads a product from the source of truth.
type LoadFunc func(ctx context.Context) (*models.Product, error)

// IProductCache is a read-through cache for single product lookups.
type IProductCache interface {
	// GetOrLoad returns the cached product or calls load and caches its result.
	// Cache failures never fail the read; only load errors are returned.
	GetOrLoad(ctx context.Context, id uint, load LoadFunc) (*models.Product, error)
	// Invalidate drops the given products from the cache.
	Invalidate(ctx context.Context, ids ...uint) error
}

// Key returns the Redis key of a product.
func Key(id uint) string {
	return KeyPrefix + strconv.FormatUint(uint64(id), 10)
}

// RedisProductCache implements IProductCache on top of go-redis.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
	group  singleflight.Group
}

// NewRedisProductCache creates a new RedisProductCache instance.
func NewRedisProductCache(client *redis.Client, ttl time.Duration, log *zap.Logger) IProductCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisProductCache{client: client, ttl: ttl, log: log.Named("product-cache")}
}

// NewRedisClient opens a client for the configured Redis server and pings it.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func (c *RedisProductCache) GetOrLoad(ctx context.Context, id uint, load LoadFunc) (*models.Product, error) {
	key := Key(id)

	raw, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var product models.Product
		if err := json.Unmarshal([]byte(raw), &product); err == nil {
			return &product, nil
		}
		c.log.Warn("dropping undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		product, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, product)
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Product), nil
}

func (c *RedisProductCache) store(ctx context.Context, key string, product *models.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		c.log.Warn("failed to encode product for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisProductCache) Invalidate(ctx context.Context, ids ...uint) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = Key(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate %d product(s): %w", len(keys), err)
	}
	return nil
}

// NoopProductCache always loads from the source. It is used when Redis is disabled.
type NoopProductCache struct{}

// NewNoopProductCache creates a cache that stores nothing.
func NewNoopProductCache() IProductCache {
	return NoopProductCache{}
}

func (NoopProductCache) GetOrLoad(ctx context.Context, _ uint, load LoadFunc) (*models.Product, error) {
	return load(ctx)
}

func (NoopProductCache) Invalidate(context.Context, ...uint) error {
	return nil
}
