package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/barhop/barhop/internal/domain"
)

// MarketBroadcaster receives refreshed market snapshots for fan-out to
// connected clients.
type MarketBroadcaster interface {
	BroadcastMarkets(series string, markets []domain.Market)
}

// PricePoller periodically refetches a fixed set of series and pushes the
// snapshots to a broadcaster. Fetch failures are logged and skipped; the
// next tick retries.
type PricePoller struct {
	catalog     domain.MarketCatalog
	broadcaster MarketBroadcaster
	series      []string
	interval    time.Duration
	logger      *slog.Logger
}

// NewPricePoller creates a PricePoller for the given series list.
func NewPricePoller(catalog domain.MarketCatalog, broadcaster MarketBroadcaster, series []string, interval time.Duration, logger *slog.Logger) *PricePoller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &PricePoller{
		catalog:     catalog,
		broadcaster: broadcaster,
		series:      series,
		interval:    interval,
		logger:      logger.With("component", "price_poller"),
	}
}

// Run polls until the context is cancelled. It performs one immediate pass
// before settling into the tick interval.
func (p *PricePoller) Run(ctx context.Context) error {
	if len(p.series) == 0 {
		p.logger.InfoContext(ctx, "no series configured, poller idle")
		<-ctx.Done()
		return ctx.Err()
	}

	p.pollOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

func (p *PricePoller) pollOnce(ctx context.Context) {
	for _, series := range p.series {
		if ctx.Err() != nil {
			return
		}
		markets, err := p.catalog.MarketsBySeries(ctx, series, domain.CatalogOpts{
			Status: "open",
			Limit:  domain.MaxQueryLimit,
		})
		if err != nil {
			p.logger.WarnContext(ctx, "poll failed",
				"series", series, "error", err)
			continue
		}
		if len(markets) == 0 {
			continue
		}
		p.broadcaster.BroadcastMarkets(series, markets)
	}
}
