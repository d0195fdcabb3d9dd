package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/equity_management_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// ValuationKeyPrefix namespaces snapshot keys: valuation:<company_id>.
const ValuationKeyPrefix = "valuation:"

// RedisValuationCache shares snapshots between instances. Entries expire through the Redis key TTL.
type RedisValuationCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ portsrepo.ValuationCache = (*RedisValuationCache)(nil)

func NewRedisValuationCache(rdb *redis.Client, ttl time.Duration) *RedisValuationCache {
	return &RedisValuationCache{rdb: rdb, ttl: ttl}
}

// NewRedisClient builds a client from a redis:// URL.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func (c *RedisValuationCache) Get(ctx context.Context, companyID string) (*domain.ValuationSnapshot, bool, error) {
	raw, err := c.rdb.Get(ctx, ValuationKeyPrefix+companyID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached valuation for company %s: %w", companyID, err)
	}
	var snap domain.ValuationSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// A corrupt entry is treated as a miss and overwritten by the caller.
		return nil, false, nil
	}
	return &snap, true, nil
}

func (c *RedisValuationCache) Set(ctx context.Context, companyID string, snapshot domain.ValuationSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode valuation for company %s: %w", companyID, err)
	}
	if err := c.rdb.Set(ctx, ValuationKeyPrefix+companyID, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache valuation for company %s: %w", companyID, err)
	}
	return nil
}

func (c *RedisValuationCache) Invalidate(ctx context.Context, companyID string) error {
	if err := c.rdb.Del(ctx, ValuationKeyPrefix+companyID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached valuation for company %s: %w", companyID, err)
	}
	return nil
}
