package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store and cache drivers accepted by STORE_DRIVER and VALUATION_CACHE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	MigrationsPath    string

	StoreDriver string

	// Valuation cache
	ValuationCacheDriver string
	ValuationCacheTTL    time.Duration
	ValuationCacheSize   int
	RedisURL             string

	RateLimit          string        // limiter format, e.g. "100-M"
	RequestTimeout     time.Duration // applied to every /api/v1 request
	CORSAllowedOrigins []string

	// Usage analytics, disabled without a key
	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "equity-management-app")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("VALUATION_CACHE_DRIVER", CacheDriverMemory)
	viper.SetDefault("VALUATION_CACHE_TTL", "5s")
	viper.SetDefault("VALUATION_CACHE_SIZE", 1024)
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "equity-management-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.StoreDriver = strings.ToLower(viper.GetString("STORE_DRIVER"))
	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		log.Printf("Warning: unknown STORE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StoreDriver, StoreDriverPostgres)
		cfg.StoreDriver = StoreDriverPostgres
	}
	if cfg.StoreDriver == StoreDriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.ValuationCacheDriver = strings.ToLower(viper.GetString("VALUATION_CACHE_DRIVER"))
	switch cfg.ValuationCacheDriver {
	case CacheDriverMemory, CacheDriverRedis:
	default:
		log.Printf("Warning: unknown VALUATION_CACHE_DRIVER ('%s'). Defaulting to %s.\n", cfg.ValuationCacheDriver, CacheDriverMemory)
		cfg.ValuationCacheDriver = CacheDriverMemory
	}
	cfg.ValuationCacheTTL = durationOrDefault("VALUATION_CACHE_TTL", 5*time.Second)
	cfg.ValuationCacheSize = viper.GetInt("VALUATION_CACHE_SIZE")
	if cfg.ValuationCacheSize <= 0 {
		cfg.ValuationCacheSize = 1024
	}
	cfg.RedisURL = viper.GetString("REDIS_URL")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.RequestTimeout = durationOrDefault("REQUEST_TIMEOUT", 10*time.Second)
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}

// durationOrDefault parses a duration key, falling back to def when unset or malformed.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
