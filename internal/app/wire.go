package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/barhop/barhop/internal/cache/memory"
	"github.com/barhop/barhop/internal/cache/redis"
	"github.com/barhop/barhop/internal/config"
	"github.com/barhop/barhop/internal/crypto"
	"github.com/barhop/barhop/internal/domain"
	"github.com/barhop/barhop/internal/platform/kalshi"
	"github.com/barhop/barhop/internal/platform/openai"
	"github.com/barhop/barhop/internal/platform/sportsdb"
	"github.com/barhop/barhop/internal/platform/wikipedia"
	"github.com/barhop/barhop/internal/store/postgres"
	"github.com/barhop/barhop/internal/store/static"
)

// Dependencies bundles every domain-level dependency that the application
// needs to operate. It is constructed by Wire and torn down by the returned
// cleanup function.
type Dependencies struct {
	// Platform clients
	Catalog      *kalshi.Client
	Oracle       *openai.Oracle
	Badges       *sportsdb.Client
	Encyclopedia *wikipedia.Client

	// Caches
	LogoCache   domain.LogoCache
	RateLimiter domain.RateLimiter

	// Stores
	Venues domain.VenueStore
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- Market catalog (signed API client) ---
	// Key resolution happens once here; a bad key is fatal at startup rather
	// than a per-request failure.
	privateKey, err := crypto.LoadRSAPrivateKey(crypto.KeySource{
		InlinePEM:     cfg.Kalshi.PrivateKeyPEM,
		InlineBase64:  cfg.Kalshi.PrivateKeyBase64,
		Path:          cfg.Kalshi.PrivateKeyPath,
		EncryptedPath: cfg.Kalshi.EncryptedKeyPath,
		Password:      cfg.Kalshi.KeyPassword,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("wire: load signing key: %w", err)
	}

	deps.Catalog, err = kalshi.NewClient(cfg.Kalshi.BaseURLs, cfg.Kalshi.APIKeyID, privateKey, logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("wire: kalshi client: %w", err)
	}

	// --- Classification oracle (disabled when no API key is configured) ---
	deps.Oracle = openai.NewOracle(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)

	// --- Logo sources ---
	deps.Badges = sportsdb.NewClient(cfg.Logos.SportsDBBaseURL)
	deps.Encyclopedia = wikipedia.NewClient(cfg.Logos.WikipediaBaseURL)

	// --- Caches: Redis when configured, in-process otherwise ---
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })

		deps.LogoCache = redis.NewLogoCache(redisClient)
		deps.RateLimiter = redis.NewRateLimiter(redisClient)
	} else {
		deps.LogoCache = memory.NewLogoCache(cfg.Logos.CacheCapacity)
		deps.RateLimiter = memory.NewRateLimiter()
	}

	// --- Venues: Postgres when configured, embedded static set otherwise ---
	if cfg.Postgres.Enabled {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}

		deps.Venues = postgres.NewVenueStore(pgClient)
	} else {
		deps.Venues = static.NewVenueStore()
	}

	return deps, cleanup, nil
}
