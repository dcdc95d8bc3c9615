// Package app provides the top-level application lifecycle management for the
// barhop backend. It wires together all dependencies (the market catalog
// client, the classification oracle, logo sources, caches, and venue stores),
// starts the HTTP server plus background goroutines, and blocks until
// shutdown.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/barhop/barhop/internal/config"
	"github.com/barhop/barhop/internal/resolver"
	"github.com/barhop/barhop/internal/server"
	"github.com/barhop/barhop/internal/server/handler"
	"github.com/barhop/barhop/internal/server/ws"
	"github.com/barhop/barhop/internal/service"
)

const shutdownTimeout = 10 * time.Second

// App is the root application object. It owns the configuration, logger, and
// a list of cleanup functions that are called in reverse order on shutdown.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []func()
}

// New creates a new App from the given configuration and logger.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run is the main entry point. It wires all dependencies, starts the HTTP
// server and background goroutines, and blocks until the context is
// cancelled. On return the caller should invoke Close.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "starting application",
		slog.String("log_level", a.cfg.LogLevel),
		slog.Int("port", a.cfg.Server.Port),
	)

	deps, cleanup, err := Wire(ctx, a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("app: wire dependencies: %w", err)
	}
	a.closers = append(a.closers, cleanup)

	// Services.
	res := resolver.New(deps.Catalog, deps.Oracle, a.logger)
	marketSvc := service.NewMarketService(res, deps.Catalog, a.logger)
	logoSvc := service.NewLogoService(deps.Badges, deps.Encyclopedia, deps.Oracle, deps.LogoCache, a.logger)

	// WebSocket hub and the poller feeding it.
	hub := ws.NewHub(a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})

	if a.cfg.Poller.Enabled {
		poller := service.NewPricePoller(
			deps.Catalog, hub, a.cfg.Poller.Series, a.cfg.Poller.Interval.Duration, a.logger,
		)
		g.Go(func() error {
			return poller.Run(gctx)
		})
	}

	// HTTP server.
	handlers := server.Handlers{
		Health:  handler.NewHealthHandler(marketSvc, deps.Oracle.Enabled(), a.logger),
		Markets: handler.NewMarketHandler(marketSvc, a.logger),
		Logos:   handler.NewLogoHandler(logoSvc, a.logger),
		Venues:  handler.NewVenueHandler(deps.Venues, a.logger),
	}

	srv := server.NewServer(server.Config{
		Port:            a.cfg.Server.Port,
		CORSOrigins:     a.cfg.Server.CORSOrigins,
		APIKey:          a.cfg.Server.APIKey,
		RateLimit:       a.cfg.Server.RateLimit,
		RateLimitWindow: a.cfg.Server.RateLimitWindow.Duration,
	}, handlers, hub, deps.RateLimiter, a.logger)

	g.Go(func() error {
		return srv.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// A cancelled parent context is a clean shutdown; anything else is a
	// genuine failure from one of the goroutines.
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("app: run: %w", err)
	}
	return nil
}

// Close tears down all resources in reverse registration order. It is safe to
// call multiple times; subsequent calls are no-ops.
func (a *App) Close() {
	a.logger.Info("shutting down application")
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
