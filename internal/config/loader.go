package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies BARHOP_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known BARHOP_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Server ──
	setInt(&cfg.Server.Port, "BARHOP_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "BARHOP_SERVER_CORS_ORIGINS")
	setStr(&cfg.Server.APIKey, "BARHOP_SERVER_API_KEY")
	setInt(&cfg.Server.RateLimit, "BARHOP_SERVER_RATE_LIMIT")
	setDuration(&cfg.Server.RateLimitWindow, "BARHOP_SERVER_RATE_LIMIT_WINDOW")

	// ── Kalshi ──
	setStr(&cfg.Kalshi.APIKeyID, "BARHOP_KALSHI_API_KEY_ID")
	setStringSlice(&cfg.Kalshi.BaseURLs, "BARHOP_KALSHI_BASE_URLS")
	setStr(&cfg.Kalshi.PrivateKeyPEM, "BARHOP_KALSHI_PRIVATE_KEY_PEM")
	setStr(&cfg.Kalshi.PrivateKeyBase64, "BARHOP_KALSHI_PRIVATE_KEY_BASE64")
	setStr(&cfg.Kalshi.PrivateKeyPath, "BARHOP_KALSHI_PRIVATE_KEY_PATH")
	setStr(&cfg.Kalshi.EncryptedKeyPath, "BARHOP_KALSHI_ENCRYPTED_KEY_PATH")
	setStr(&cfg.Kalshi.KeyPassword, "BARHOP_KALSHI_KEY_PASSWORD")

	// ── OpenAI ──
	setStr(&cfg.OpenAI.APIKey, "BARHOP_OPENAI_API_KEY")
	setStr(&cfg.OpenAI.APIKey, "OPENAI_API_KEY") // conventional alias
	setStr(&cfg.OpenAI.Model, "BARHOP_OPENAI_MODEL")

	// ── Logos ──
	setStr(&cfg.Logos.SportsDBBaseURL, "BARHOP_LOGOS_SPORTSDB_BASE_URL")
	setStr(&cfg.Logos.WikipediaBaseURL, "BARHOP_LOGOS_WIKIPEDIA_BASE_URL")
	setInt(&cfg.Logos.CacheCapacity, "BARHOP_LOGOS_CACHE_CAPACITY")

	// ── Poller ──
	setBool(&cfg.Poller.Enabled, "BARHOP_POLLER_ENABLED")
	setStringSlice(&cfg.Poller.Series, "BARHOP_POLLER_SERIES")
	setDuration(&cfg.Poller.Interval, "BARHOP_POLLER_INTERVAL")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "BARHOP_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "BARHOP_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "BARHOP_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "BARHOP_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "BARHOP_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "BARHOP_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "BARHOP_REDIS_TLS_ENABLED")

	// ── Postgres ──
	setBool(&cfg.Postgres.Enabled, "BARHOP_POSTGRES_ENABLED")
	setStr(&cfg.Postgres.DSN, "BARHOP_POSTGRES_DSN")
	setStr(&cfg.Postgres.DSN, "DATABASE_URL") // conventional alias
	setStr(&cfg.Postgres.Host, "BARHOP_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "BARHOP_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "BARHOP_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "BARHOP_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "BARHOP_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "BARHOP_POSTGRES_SSLMODE")
	setInt(&cfg.Postgres.PoolMaxConns, "BARHOP_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "BARHOP_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "BARHOP_POSTGRES_RUN_MIGRATIONS")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "BARHOP_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
