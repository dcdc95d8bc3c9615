package resolver

import (
	"context"
	"log/slog"

	"github.com/barhop/barhop/internal/domain"
)

// openEventScanLimit bounds the last-resort full-catalog scan.
const openEventScanLimit = 200

// Resolver runs the event-to-market resolution pipeline: alias lookup,
// keyword detection, oracle classification, catalog fetch, and ranking.
// A pipeline run never fails outward; an empty resolution is the expected
// outcome for events with no market coverage.
type Resolver struct {
	catalog domain.MarketCatalog
	oracle  domain.Oracle
	logger  *slog.Logger
}

// New creates a Resolver.
func New(catalog domain.MarketCatalog, oracle domain.Oracle, logger *slog.Logger) *Resolver {
	return &Resolver{
		catalog: catalog,
		oracle:  oracle,
		logger:  logger.With("component", "resolver"),
	}
}

// Resolve maps a query to a series and its ranked markets. The only error
// returned is context cancellation; every upstream failure degrades to the
// next strategy and, at worst, an empty resolution.
func (r *Resolver) Resolve(ctx context.Context, q domain.MarketQuery) (domain.Resolution, error) {
	res := domain.Resolution{Identifier: q.Identifier, Markets: []domain.Market{}}
	searchText := q.SearchText()

	series := r.resolveSeries(ctx, q, searchText)

	var markets []domain.Market
	if series != "" {
		markets = r.fetchSeriesMarkets(ctx, series, q.ClampedLimit())
	}

	// Last resort: scan the open-event catalog and match at event level.
	if len(markets) == 0 {
		scanSeries, scanMarkets := r.scanOpenEvents(ctx, searchText)
		if scanSeries != "" {
			series = scanSeries
			markets = scanMarkets
		}
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if series == "" {
		r.logger.InfoContext(ctx, "no series resolved", "identifier", q.Identifier)
		return res, nil
	}
	res.SeriesTicker = series

	tradeable := markets[:0:0]
	for _, m := range markets {
		if m.Status.Tradeable() {
			tradeable = append(tradeable, m)
		}
	}

	res.Markets = r.rank(ctx, searchText, tradeable, q.ClampedLimit())
	r.logger.InfoContext(ctx, "resolved",
		"identifier", q.Identifier, "series", series, "count", len(res.Markets))
	return res, nil
}

// resolveSeries tries the cheap deterministic strategies in order, then the
// oracle. Returns "" when everything misses.
func (r *Resolver) resolveSeries(ctx context.Context, q domain.MarketQuery, searchText string) string {
	if series := AliasSeries(q.Identifier, q.DisplayName); series != "" {
		return series
	}
	if series := DetectSeries(searchText); series != "" {
		return series
	}
	if r.oracle.Enabled() {
		series, err := r.oracle.ClassifySeries(ctx, searchText)
		if err != nil {
			r.logger.WarnContext(ctx, "oracle classify failed", "error", err)
			return ""
		}
		return series
	}
	return ""
}

// fetchSeriesMarkets fetches open markets for a series, retrying once
// without the status filter when the open set is empty. Fetch errors
// degrade to an empty slice.
func (r *Resolver) fetchSeriesMarkets(ctx context.Context, series string, limit int) []domain.Market {
	opts := domain.CatalogOpts{Status: "open", Limit: CandidatePool(limit)}
	markets, err := r.catalog.MarketsBySeries(ctx, series, opts)
	if err != nil {
		r.logger.WarnContext(ctx, "markets fetch failed", "series", series, "error", err)
		markets = nil
	}
	if len(markets) > 0 {
		return markets
	}

	opts.Status = ""
	markets, err = r.catalog.MarketsBySeries(ctx, series, opts)
	if err != nil {
		r.logger.WarnContext(ctx, "unfiltered markets fetch failed", "series", series, "error", err)
		return nil
	}
	return markets
}

// scanOpenEvents fetches the full open-event catalog, scores events against
// the query, and adopts the first confident event's series, flattening the
// markets of every confident event in that series.
func (r *Resolver) scanOpenEvents(ctx context.Context, searchText string) (string, []domain.Market) {
	events, err := r.catalog.AllOpenEvents(ctx, openEventScanLimit)
	if err != nil {
		r.logger.WarnContext(ctx, "open event scan failed", "error", err)
		return "", nil
	}

	type scored struct {
		event domain.Event
		score float64
	}
	matched := make([]scored, 0)
	for _, ev := range events {
		if s := Score(searchText, ev.SearchText()); s > MatchThreshold {
			matched = append(matched, scored{ev, s})
		}
	}
	if len(matched) == 0 {
		return "", nil
	}

	// Highest score wins; ties keep catalog order.
	best := matched[0]
	for _, m := range matched[1:] {
		if m.score > best.score {
			best = m
		}
	}

	series := best.event.SeriesTicker
	var markets []domain.Market
	for _, m := range matched {
		if m.event.SeriesTicker != series {
			continue
		}
		markets = append(markets, m.event.Markets...)
	}
	return series, markets
}

// rank applies the ranking policy: volume order for league-level queries,
// otherwise token scoring over a volume-bounded candidate pool with oracle
// selection and volume order as successive fallbacks.
func (r *Resolver) rank(ctx context.Context, searchText string, markets []domain.Market, limit int) []domain.Market {
	if len(markets) == 0 {
		return []domain.Market{}
	}

	if IsLeagueLevel(searchText) {
		return Truncate(SortByVolumeDesc(markets), limit)
	}

	candidates := TopByVolume(markets, CandidatePool(limit))

	if confident := FilterConfident(searchText, candidates); confident != nil {
		return Truncate(confident, limit)
	}

	if r.oracle.Enabled() {
		tickers, err := r.oracle.SelectMarkets(ctx, searchText, candidates, limit)
		if err != nil {
			r.logger.WarnContext(ctx, "oracle select failed", "error", err)
		} else if len(tickers) > 0 {
			byTicker := make(map[string]domain.Market, len(candidates))
			for _, m := range candidates {
				byTicker[m.Ticker] = m
			}
			picked := make([]domain.Market, 0, len(tickers))
			for _, t := range tickers {
				if m, ok := byTicker[t]; ok {
					picked = append(picked, m)
				}
			}
			if len(picked) > 0 {
				return Truncate(picked, limit)
			}
		}
	}

	return Truncate(SortByVolumeDesc(candidates), limit)
}
