package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/barhop/barhop/internal/domain"
)

// Candlestick query defaults. The upstream API accepts intervals of
// 1, 5, 15, 60, 240 and 1440 minutes.
const (
	DefaultCandleHours    = 168
	DefaultCandleInterval = 60
)

var validCandleIntervals = map[int]bool{1: true, 5: true, 15: true, 60: true, 240: true, 1440: true}

// MarketResolver runs a query through the resolution pipeline.
type MarketResolver interface {
	Resolve(ctx context.Context, q domain.MarketQuery) (domain.Resolution, error)
}

// MarketService fronts the resolution pipeline and the candlestick transform
// for the HTTP layer.
type MarketService struct {
	resolver MarketResolver
	catalog  domain.MarketCatalog
	logger   *slog.Logger
	now      func() time.Time
}

// NewMarketService creates a MarketService.
func NewMarketService(resolver MarketResolver, catalog domain.MarketCatalog, logger *slog.Logger) *MarketService {
	return &MarketService{
		resolver: resolver,
		catalog:  catalog,
		logger:   logger.With("component", "market_service"),
		now:      time.Now,
	}
}

// ResolveMarkets maps an event query to its series and ranked markets.
// An empty resolution is a valid outcome, not an error.
func (s *MarketService) ResolveMarkets(ctx context.Context, q domain.MarketQuery) (domain.Resolution, error) {
	res, err := s.resolver.Resolve(ctx, q)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("market_service: resolve %q: %w", q.Identifier, err)
	}
	return res, nil
}

// Candlesticks returns the price history for one market over the trailing
// hours window. Out-of-range hours or interval values fall back to defaults.
func (s *MarketService) Candlesticks(ctx context.Context, series, ticker string, hours, interval int) ([]domain.CandlestickPoint, error) {
	if hours <= 0 {
		hours = DefaultCandleHours
	}
	if !validCandleIntervals[interval] {
		interval = DefaultCandleInterval
	}

	end := s.now().Unix()
	start := end - int64(hours)*3600

	points, err := s.catalog.Candlesticks(ctx, series, ticker, start, end, interval)
	if err != nil {
		return nil, fmt.Errorf("market_service: candlesticks %s/%s: %w", series, ticker, err)
	}
	return points, nil
}

// ProbeEndpoints reports reachability of every configured catalog endpoint.
func (s *MarketService) ProbeEndpoints(ctx context.Context, series string) []domain.EndpointStatus {
	return s.catalog.ProbeEndpoints(ctx, series)
}
