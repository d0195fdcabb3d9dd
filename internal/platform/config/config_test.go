package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, CacheDriverMemory, cfg.ValuationCacheDriver)
	assert.Equal(t, 5*time.Second, cfg.ValuationCacheTTL)
	assert.Equal(t, 1024, cfg.ValuationCacheSize)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, "https://eu.i.posthog.com", cfg.PosthogEndpoint)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "nonsense")
	t.Setenv("VALUATION_CACHE_DRIVER", "REDIS")
	t.Setenv("VALUATION_CACHE_TTL", "250ms")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, CacheDriverRedis, cfg.ValuationCacheDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.ValuationCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}
