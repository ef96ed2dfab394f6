// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Development-only signing secrets. Load refuses them when APP_ENV=production.
const (
	devAccessSecret  = "dev_access_secret_change_me"
	devRefreshSecret = "dev_refresh_secret_change_me"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP API listens on (e.g. :3001).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// Env is the application environment ("development", "test", "production").
	Env string `mapstructure:"APP_ENV"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// JWTAccessSecret is the HMAC secret for access tokens (min 16 chars).
	JWTAccessSecret string `mapstructure:"JWT_ACCESS_SECRET"`
	// JWTRefreshSecret is the HMAC secret for refresh tokens (min 16 chars). Must differ from the access secret.
	JWTRefreshSecret string `mapstructure:"JWT_REFRESH_SECRET"`
	// JWTIssuer is the iss claim set on and required from every token.
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// JWTAudience is the aud claim set on and required from every token.
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`
	// JWTAccessTTL is the access token lifetime (e.g. "15m").
	JWTAccessTTL string `mapstructure:"JWT_ACCESS_TTL"`
	// JWTRefreshTTL is the refresh token lifetime (e.g. "720h").
	JWTRefreshTTL string `mapstructure:"JWT_REFRESH_TTL"`
	// SessionTTLRaw is the lifetime of a persisted session row (e.g. "720h").
	SessionTTLRaw string `mapstructure:"SESSION_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`

	// CacheBackend selects the read cache: "memory" (default) or "redis".
	CacheBackend string `mapstructure:"CACHE_BACKEND"`
	// RedisURL is the redis:// URL used when CacheBackend is "redis".
	RedisURL string `mapstructure:"REDIS_URL"`
	// CacheListTTLRaw is the TTL for list and search results (default "5s").
	CacheListTTLRaw string `mapstructure:"CACHE_LIST_TTL"`
	// CacheItemTTLRaw is the TTL for single-article lookups (default "10s").
	CacheItemTTLRaw string `mapstructure:"CACHE_ITEM_TTL"`

	// AllowedOrigins is a comma-separated CORS allow-list. Empty allows every origin.
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	// RateLimitRPS is the per-IP sustained request rate.
	RateLimitRPS float64 `mapstructure:"RATE_LIMIT_RPS"`
	// RateLimitBurst is the per-IP burst size.
	RateLimitBurst int `mapstructure:"RATE_LIMIT_BURST"`

	// OTLPEndpoint is the OTLP gRPC collector endpoint; empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces a plaintext connection to the collector.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// KafkaBrokers is a comma-separated list of Kafka broker addresses. Empty disables the ingest queue.
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// IngestKafkaTopic is the topic scraped candidates are published to and consumed from.
	IngestKafkaTopic string `mapstructure:"INGEST_KAFKA_TOPIC"`
	// KafkaGroupID is the consumer group ID for the ingestion worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`
	// ScrapeIntervalRaw is how often the scraper polls active feed configs (default "5m").
	ScrapeIntervalRaw string `mapstructure:"SCRAPE_INTERVAL"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":3001")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_ACCESS_SECRET", devAccessSecret)
	v.SetDefault("JWT_REFRESH_SECRET", devRefreshSecret)
	v.SetDefault("JWT_ISSUER", "ainvestfeed-api")
	v.SetDefault("JWT_AUDIENCE", "ainvestfeed-web")
	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("JWT_REFRESH_TTL", "720h") // 30d
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_LIST_TTL", "5s")
	v.SetDefault("CACHE_ITEM_TTL", "10s")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("RATE_LIMIT_RPS", 1000.0/60.0)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("INGEST_KAFKA_TOPIC", "news-candidates")
	v.SetDefault("KAFKA_GROUP_ID", "ainvestfeed-ingest-worker")
	v.SetDefault("SCRAPE_INTERVAL", "5m")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	switch cfg.Env {
	case "development", "test", "production":
	default:
		return nil, errors.New("config: APP_ENV must be one of development, test, production")
	}

	if len(cfg.JWTAccessSecret) < 16 || len(cfg.JWTRefreshSecret) < 16 {
		return nil, errors.New("config: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be at least 16 characters")
	}
	if cfg.JWTAccessSecret == cfg.JWTRefreshSecret {
		return nil, errors.New("config: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if cfg.IsProduction() && (cfg.JWTAccessSecret == devAccessSecret || cfg.JWTRefreshSecret == devRefreshSecret) {
		return nil, errors.New("config: development JWT secrets must not be used when APP_ENV=production")
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	cfg.CacheBackend = strings.ToLower(strings.TrimSpace(cfg.CacheBackend))
	switch cfg.CacheBackend {
	case "memory":
	case "redis":
		if cfg.RedisURL == "" {
			return nil, errors.New("config: REDIS_URL must be set when CACHE_BACKEND=redis")
		}
	default:
		return nil, errors.New("config: CACHE_BACKEND must be memory or redis")
	}

	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, errors.New("config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return &cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AccessTTL parses JWTAccessTTL as a time.Duration. Returns 15m if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	return parseDuration(c.JWTAccessTTL, 15*time.Minute)
}

// RefreshTTL parses JWTRefreshTTL as a time.Duration. Returns 720h if unset or invalid.
func (c *Config) RefreshTTL() time.Duration {
	return parseDuration(c.JWTRefreshTTL, 720*time.Hour)
}

// SessionTTL parses SessionTTLRaw. Returns 720h if unset or invalid.
func (c *Config) SessionTTL() time.Duration {
	return parseDuration(c.SessionTTLRaw, 720*time.Hour)
}

// CacheListTTL parses CacheListTTLRaw. Returns 5s if unset or invalid.
func (c *Config) CacheListTTL() time.Duration {
	return parseDuration(c.CacheListTTLRaw, 5*time.Second)
}

// CacheItemTTL parses CacheItemTTLRaw. Returns 10s if unset or invalid.
func (c *Config) CacheItemTTL() time.Duration {
	return parseDuration(c.CacheItemTTLRaw, 10*time.Second)
}

// ScrapeInterval parses ScrapeIntervalRaw. Returns 5m if unset or invalid.
func (c *Config) ScrapeInterval() time.Duration {
	return parseDuration(c.ScrapeIntervalRaw, 5*time.Minute)
}

// AllowedOriginsList returns the CORS allow-list from the comma-separated config.
func (c *Config) AllowedOriginsList() []string {
	return splitList(c.AllowedOrigins)
}

// KafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if the ingest queue is enabled (non-empty list).
func (c *Config) KafkaBrokersList() []string {
	if c == nil {
		return nil
	}
	return splitList(c.KafkaBrokers)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
