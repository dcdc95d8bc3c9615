package domain

import "context"

// CatalogOpts narrows a catalog fetch. A zero value means no status filter
// and the client's default page size.
type CatalogOpts struct {
	// Status filters by market/event status, e.g. "open". Empty disables
	// the filter so closed and settled entries are included.
	Status string

	// Limit caps the number of entries requested from the upstream API.
	Limit int
}

// EndpointStatus is the result of probing one catalog base endpoint.
type EndpointStatus struct {
	BaseURL   string `json:"base_url"`
	OK        bool   `json:"ok"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// MarketCatalog is the read-only remote market data source. Implementations
// try their configured base endpoints in fixed order and surface an error
// only when every endpoint fails; callers treat that the same as an empty
// result and move to the next resolution strategy.
type MarketCatalog interface {
	// MarketsBySeries returns the markets belonging to a series.
	MarketsBySeries(ctx context.Context, series string, opts CatalogOpts) ([]Market, error)

	// EventsBySeries returns the events (with nested markets) for a series.
	EventsBySeries(ctx context.Context, series string, opts CatalogOpts) ([]Event, error)

	// AllOpenEvents returns the full open-event catalog. This is the
	// heaviest call and is used only as a last resort.
	AllOpenEvents(ctx context.Context, limit int) ([]Event, error)

	// Candlesticks returns price history for one market, already
	// deduplicated and sorted ascending by timestamp.
	Candlesticks(ctx context.Context, series, ticker string, startTS, endTS int64, periodInterval int) ([]CandlestickPoint, error)

	// ProbeEndpoints checks connectivity of every configured base
	// endpoint, in fallback order.
	ProbeEndpoints(ctx context.Context, series string) []EndpointStatus
}

// Oracle is the natural-language classification fallback. Every method fails
// soft: a timeout, a missing credential, or malformed output yields an empty
// result rather than an error the pipeline would have to handle.
type Oracle interface {
	// Enabled reports whether a credential is configured.
	Enabled() bool

	// ClassifySeries proposes a single series ticker for the free-text
	// query from a fixed catalog of known series, or "" for no match.
	ClassifySeries(ctx context.Context, freeText string) (string, error)

	// SuggestSeries proposes up to limit candidate series tickers, not
	// restricted to the fixed catalog.
	SuggestSeries(ctx context.Context, freeText string, limit int) ([]string, error)

	// SelectMarkets picks the tickers from candidates most relevant to
	// the query.
	SelectMarkets(ctx context.Context, query string, candidates []Market, limit int) ([]string, error)

	// CanonicalName expands an abbreviated entity label ("MAN UTD") to
	// its canonical form for image search, or "" when unsure.
	CanonicalName(ctx context.Context, label, context string) (string, error)
}
