// Package config defines the top-level configuration for the barhop backend
// and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by BARHOP_* environment variables.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Kalshi   KalshiConfig   `toml:"kalshi"`
	OpenAI   OpenAIConfig   `toml:"openai"`
	Logos    LogosConfig    `toml:"logos"`
	Poller   PollerConfig   `toml:"poller"`
	Redis    RedisConfig    `toml:"redis"`
	Postgres PostgresConfig `toml:"postgres"`
	LogLevel string         `toml:"log_level"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
	// APIKey enables static bearer-token auth when non-empty.
	APIKey string `toml:"api_key"`

	// RateLimit is requests per window per client IP; 0 disables limiting.
	RateLimit       int      `toml:"rate_limit"`
	RateLimitWindow duration `toml:"rate_limit_window"`
}

// KalshiConfig holds market catalog API credentials and endpoints.
// Exactly one private key source must be set.
type KalshiConfig struct {
	APIKeyID string `toml:"api_key_id"`
	// BaseURLs are tried in order on each request until one succeeds.
	BaseURLs []string `toml:"base_urls"`

	PrivateKeyPEM    string `toml:"private_key_pem"`
	PrivateKeyBase64 string `toml:"private_key_base64"`
	PrivateKeyPath   string `toml:"private_key_path"`
	EncryptedKeyPath string `toml:"encrypted_key_path"`
	KeyPassword      string `toml:"key_password"`
}

// OpenAIConfig holds LLM classification credentials. An empty api_key
// disables the oracle and the pipeline falls back to deterministic matching.
type OpenAIConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// LogosConfig holds logo lookup sources and cache sizing.
type LogosConfig struct {
	SportsDBBaseURL  string `toml:"sportsdb_base_url"`
	WikipediaBaseURL string `toml:"wikipedia_base_url"`
	CacheCapacity    int    `toml:"cache_capacity"`
}

// PollerConfig holds the background price poller parameters.
type PollerConfig struct {
	Enabled  bool     `toml:"enabled"`
	Series   []string `toml:"series"`
	Interval duration `toml:"interval"`
}

// RedisConfig holds Redis connection parameters. Redis is optional; when
// disabled the in-process logo cache and rate limiter are used instead.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// PostgresConfig holds PostgreSQL connection parameters. Postgres is
// optional; when disabled the embedded static venue set is served.
type PostgresConfig struct {
	Enabled       bool   `toml:"enabled"`
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
// These match the values in config.example.toml.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8000,
			CORSOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
			RateLimit:       0,
			RateLimitWindow: duration{time.Minute},
		},
		Kalshi: KalshiConfig{
			BaseURLs: []string{"https://api.elections.kalshi.com"},
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Logos: LogosConfig{
			SportsDBBaseURL:  "https://www.thesportsdb.com/api/v1/json/3",
			WikipediaBaseURL: "https://en.wikipedia.org/w/api.php",
			CacheCapacity:    2048,
		},
		Poller: PollerConfig{
			Enabled:  false,
			Interval: duration{30 * time.Second},
		},
		Redis: RedisConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			PoolSize:   20,
			MaxRetries: 3,
		},
		Postgres: PostgresConfig{
			Enabled:       false,
			Host:          "localhost",
			Port:          5432,
			Database:      "barhop",
			User:          "postgres",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			PoolMinConns:  2,
			RunMigrations: true,
		},
		LogLevel: "info",
	}
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Server
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, "server: rate_limit must be >= 0")
	}
	if c.Server.RateLimit > 0 && c.Server.RateLimitWindow.Duration <= 0 {
		errs = append(errs, "server: rate_limit_window must be positive when rate_limit is set")
	}

	// Kalshi
	if c.Kalshi.APIKeyID == "" {
		errs = append(errs, "kalshi: api_key_id must not be empty")
	}
	if len(c.Kalshi.BaseURLs) == 0 {
		errs = append(errs, "kalshi: base_urls must list at least one endpoint")
	}
	keySources := 0
	for _, s := range []string{c.Kalshi.PrivateKeyPEM, c.Kalshi.PrivateKeyBase64, c.Kalshi.PrivateKeyPath, c.Kalshi.EncryptedKeyPath} {
		if strings.TrimSpace(s) != "" {
			keySources++
		}
	}
	if keySources == 0 {
		errs = append(errs, "kalshi: one of private_key_pem, private_key_base64, private_key_path, or encrypted_key_path must be set")
	}
	if keySources > 1 {
		errs = append(errs, "kalshi: only one private key source may be set")
	}
	if c.Kalshi.EncryptedKeyPath != "" && c.Kalshi.KeyPassword == "" {
		errs = append(errs, "kalshi: key_password is required when encrypted_key_path is set")
	}

	// OpenAI
	if c.OpenAI.APIKey != "" && c.OpenAI.Model == "" {
		errs = append(errs, "openai: model must not be empty when api_key is set")
	}

	// Logos
	if c.Logos.SportsDBBaseURL == "" {
		errs = append(errs, "logos: sportsdb_base_url must not be empty")
	}
	if c.Logos.WikipediaBaseURL == "" {
		errs = append(errs, "logos: wikipedia_base_url must not be empty")
	}
	if c.Logos.CacheCapacity < 1 {
		errs = append(errs, "logos: cache_capacity must be >= 1")
	}

	// Poller
	if c.Poller.Enabled {
		if len(c.Poller.Series) == 0 {
			errs = append(errs, "poller: series must list at least one series ticker when enabled")
		}
		if c.Poller.Interval.Duration <= 0 {
			errs = append(errs, "poller: interval must be positive when enabled")
		}
	}

	// Redis
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty when enabled")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	}

	// Postgres
	if c.Postgres.Enabled {
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			if c.Postgres.Host == "" {
				errs = append(errs, "postgres: host must not be empty (or set postgres.dsn)")
			}
			if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
				errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
			}
			if c.Postgres.Database == "" {
				errs = append(errs, "postgres: database must not be empty")
			}
		}
		if c.Postgres.PoolMaxConns < 1 {
			errs = append(errs, "postgres: pool_max_conns must be >= 1")
		}
		if c.Postgres.PoolMinConns < 0 {
			errs = append(errs, "postgres: pool_min_conns must be >= 0")
		}
		if c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
			errs = append(errs, "postgres: pool_min_conns must not exceed pool_max_conns")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
