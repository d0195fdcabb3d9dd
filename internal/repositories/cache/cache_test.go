package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(companyID string) domain.ValuationSnapshot {
	return domain.ValuationSnapshot{
		CompanyID:             companyID,
		StrategicCompanyValue: decimal.RequireFromString("9000.50"),
		AuthorizedShares:      10_000_000,
		PricePerShare:         decimal.RequireFromString("0.0009"),
		ComputedAt:            time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestLRUValuationCache(t *testing.T) {
	ctx := context.Background()
	c := NewLRUValuationCache(2, time.Hour)

	_, ok, err := c.Get(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "c1", snapshot("c1")))
	got, ok, err := c.Get(ctx, "c1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(10_000_000), got.AuthorizedShares)

	require.NoError(t, c.Invalidate(ctx, "c1"))
	_, ok, _ = c.Get(ctx, "c1")
	assert.False(t, ok)
}

func TestLRUValuationCacheEvictsOldest(t *testing.T) {
	ctx := context.Background()
	c := NewLRUValuationCache(2, time.Hour)
	require.NoError(t, c.Set(ctx, "c1", snapshot("c1")))
	require.NoError(t, c.Set(ctx, "c2", snapshot("c2")))
	require.NoError(t, c.Set(ctx, "c3", snapshot("c3")))

	_, ok, _ := c.Get(ctx, "c1")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "c3")
	assert.True(t, ok)
}

func TestLRUValuationCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewLRUValuationCache(8, 20*time.Millisecond)
	require.NoError(t, c.Set(ctx, "c1", snapshot("c1")))

	assert.Eventually(t, func() bool {
		_, ok, _ := c.Get(ctx, "c1")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisValuationCache(t *testing.T) {
	ctx := context.Background()
	mr, rdb := setupRedis(t)
	c := NewRedisValuationCache(rdb, 5*time.Second)

	_, ok, err := c.Get(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "c1", snapshot("c1")))
	assert.True(t, mr.Exists(ValuationKeyPrefix+"c1"))
	assert.Equal(t, 5*time.Second, mr.TTL(ValuationKeyPrefix+"c1"))

	got, ok, err := c.Get(ctx, "c1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.StrategicCompanyValue.Equal(decimal.RequireFromString("9000.50")))
	assert.True(t, got.ComputedAt.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)))

	mr.FastForward(6 * time.Second)
	_, ok, err = c.Get(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisValuationCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	mr, rdb := setupRedis(t)
	c := NewRedisValuationCache(rdb, time.Minute)

	require.NoError(t, c.Set(ctx, "c1", snapshot("c1")))
	require.NoError(t, c.Invalidate(ctx, "c1"))
	assert.False(t, mr.Exists(ValuationKeyPrefix+"c1"))
}

func TestRedisValuationCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	mr, rdb := setupRedis(t)
	c := NewRedisValuationCache(rdb, time.Minute)

	require.NoError(t, mr.Set(ValuationKeyPrefix+"c1", "{not json"))
	_, ok, err := c.Get(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisValuationCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	mr, rdb := setupRedis(t)
	c := NewRedisValuationCache(rdb, time.Minute)
	mr.Close()

	_, _, err := c.Get(ctx, "c1")
	assert.Error(t, err)
}
