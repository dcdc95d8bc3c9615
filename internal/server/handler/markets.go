package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/barhop/barhop/internal/domain"
)

// MarketResolver defines what the market handler requires from the service
// layer. It is declared locally so the handler package does not depend on
// the concrete service implementation.
type MarketResolver interface {
	ResolveMarkets(ctx context.Context, q domain.MarketQuery) (domain.Resolution, error)
	Candlesticks(ctx context.Context, series, ticker string, hours, interval int) ([]domain.CandlestickPoint, error)
}

// MarketHandler serves event-to-market resolution and candlestick endpoints.
type MarketHandler struct {
	markets MarketResolver
	logger  *slog.Logger
}

// NewMarketHandler creates a MarketHandler with the given service and logger.
func NewMarketHandler(markets MarketResolver, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{
		markets: markets,
		logger:  logger,
	}
}

// resolveResponse wraps a resolution result. SeriesTicker is null when no
// series could be resolved; Markets is always present, possibly empty.
type resolveResponse struct {
	EventID      string          `json:"eventId"`
	SeriesTicker any             `json:"seriesTicker"`
	Markets      []domain.Market `json:"markets"`
	Count        int             `json:"count"`
}

// ResolveMarkets resolves an event identifier to tradeable markets.
// GET /api/markets/{identifier}?name=&category=&limit=
func (h *MarketHandler) ResolveMarkets(w http.ResponseWriter, r *http.Request) {
	identifier := pathParam(r, "identifier")
	if identifier == "" {
		writeError(w, http.StatusBadRequest, "missing event identifier")
		return
	}

	res, err := h.markets.ResolveMarkets(r.Context(), domain.MarketQuery{
		Identifier:  identifier,
		DisplayName: r.URL.Query().Get("name"),
		Category:    r.URL.Query().Get("category"),
		Limit:       queryInt(r, "limit"),
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: resolve markets failed",
			slog.String("identifier", identifier),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to resolve markets")
		return
	}

	writeJSON(w, http.StatusOK, resolveResponse{
		EventID:      res.Identifier,
		SeriesTicker: nullableString(res.SeriesTicker),
		Markets:      res.Markets,
		Count:        len(res.Markets),
	})
}

// candlesticksResponse wraps the price-history endpoint output.
type candlesticksResponse struct {
	SeriesTicker string                    `json:"seriesTicker"`
	Ticker       string                    `json:"ticker"`
	Candlesticks []domain.CandlestickPoint `json:"candlesticks"`
	Count        int                       `json:"count"`
}

// Candlesticks returns the normalized price history for a market.
// GET /api/candlesticks/{series}/{ticker}?hours=168&interval=60
func (h *MarketHandler) Candlesticks(w http.ResponseWriter, r *http.Request) {
	series := pathParam(r, "series")
	ticker := pathParam(r, "ticker")
	if series == "" || ticker == "" {
		writeError(w, http.StatusBadRequest, "missing series or market ticker")
		return
	}

	points, err := h.markets.Candlesticks(r.Context(), series, ticker,
		queryInt(r, "hours"), queryInt(r, "interval"))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: candlesticks failed",
			slog.String("series", series),
			slog.String("ticker", ticker),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to fetch candlesticks")
		return
	}

	writeJSON(w, http.StatusOK, candlesticksResponse{
		SeriesTicker: series,
		Ticker:       ticker,
		Candlesticks: points,
		Count:        len(points),
	})
}
