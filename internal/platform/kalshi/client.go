package kalshi

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/barhop/barhop/internal/domain"
)

const (
	apiPrefix      = "/trade-api/v2"
	defaultTimeout = 10 * time.Second
)

// Client is the REST client for the trade API. It is configured with an
// ordered list of base endpoints and tries them in that order on every call,
// returning the first successful response. There are no per-endpoint retries;
// the next endpoint is the retry.
type Client struct {
	baseURLs   []string
	apiKeyID   string
	privateKey *rsa.PrivateKey
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new trade API client.
//
// baseURLs are API roots in fallback order, e.g.
// "https://api.elections.kalshi.com". apiKeyID is the API key identifier.
func NewClient(baseURLs []string, apiKeyID string, privateKey *rsa.PrivateKey, logger *slog.Logger) (*Client, error) {
	if len(baseURLs) == 0 {
		return nil, fmt.Errorf("kalshi: %w", domain.ErrNoEndpoints)
	}
	if privateKey == nil {
		return nil, fmt.Errorf("kalshi: %w: private key not configured", domain.ErrInvalidKey)
	}
	return &Client{
		baseURLs:   baseURLs,
		apiKeyID:   apiKeyID,
		privateKey: privateKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger.With("component", "kalshi"),
	}, nil
}

// MarketsBySeries returns the markets belonging to a series.
func (c *Client) MarketsBySeries(ctx context.Context, series string, opts domain.CatalogOpts) ([]domain.Market, error) {
	params := url.Values{}
	params.Set("series_ticker", series)
	if opts.Status != "" {
		params.Set("status", opts.Status)
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	body, err := c.doSignedGet(ctx, "/markets", params)
	if err != nil {
		return nil, fmt.Errorf("kalshi: markets for %s: %w", series, err)
	}

	var resp marketsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("kalshi: decode markets: %w", err)
	}

	markets := make([]domain.Market, 0, len(resp.Markets))
	for _, m := range resp.Markets {
		dm := m.toDomain()
		dm.SeriesTicker = series
		markets = append(markets, dm)
	}
	return markets, nil
}

// EventsBySeries returns the events, with nested markets, for a series.
func (c *Client) EventsBySeries(ctx context.Context, series string, opts domain.CatalogOpts) ([]domain.Event, error) {
	params := url.Values{}
	params.Set("series_ticker", series)
	params.Set("with_nested_markets", "true")
	if opts.Status != "" {
		params.Set("status", opts.Status)
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	body, err := c.doSignedGet(ctx, "/events", params)
	if err != nil {
		return nil, fmt.Errorf("kalshi: events for %s: %w", series, err)
	}

	return decodeEvents(body, series)
}

// AllOpenEvents returns the full open-event catalog. It is the heaviest
// call the client exposes and is only used as a last-resort scan.
func (c *Client) AllOpenEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	params := url.Values{}
	params.Set("status", "open")
	params.Set("with_nested_markets", "true")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.doSignedGet(ctx, "/events", params)
	if err != nil {
		return nil, fmt.Errorf("kalshi: open events: %w", err)
	}

	return decodeEvents(body, "")
}

// Candlesticks returns price history for one market. Points are deduplicated
// by timestamp, last write wins, and sorted ascending before return.
func (c *Client) Candlesticks(ctx context.Context, series, ticker string, startTS, endTS int64, periodInterval int) ([]domain.CandlestickPoint, error) {
	path := fmt.Sprintf("/series/%s/markets/%s/candlesticks",
		url.PathEscape(series), url.PathEscape(ticker))

	params := url.Values{}
	params.Set("start_ts", strconv.FormatInt(startTS, 10))
	params.Set("end_ts", strconv.FormatInt(endTS, 10))
	params.Set("period_interval", strconv.Itoa(periodInterval))

	body, err := c.doSignedGet(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("kalshi: candlesticks %s/%s: %w", series, ticker, err)
	}

	var resp candlesticksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("kalshi: decode candlesticks: %w", err)
	}

	points := make([]domain.CandlestickPoint, 0, len(resp.Candlesticks))
	for _, candle := range resp.Candlesticks {
		if candle.EndPeriodTS == 0 {
			continue
		}
		price, ok := candle.extractPrice()
		if !ok {
			continue
		}
		points = append(points, domain.CandlestickPoint{TS: candle.EndPeriodTS, Price: price})
	}
	return domain.NormalizeCandlesticks(points), nil
}

// ProbeEndpoints issues a one-market request against every configured base
// endpoint, in fallback order, and reports reachability and latency.
func (c *Client) ProbeEndpoints(ctx context.Context, series string) []domain.EndpointStatus {
	params := url.Values{}
	params.Set("limit", "1")
	if series != "" {
		params.Set("series_ticker", series)
	}

	statuses := make([]domain.EndpointStatus, 0, len(c.baseURLs))
	for _, base := range c.baseURLs {
		start := time.Now()
		_, err := c.tryEndpoint(ctx, base, "/markets", params)
		status := domain.EndpointStatus{
			BaseURL:   base,
			OK:        err == nil,
			LatencyMS: time.Since(start).Milliseconds(),
		}
		if err != nil {
			status.Error = err.Error()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// doSignedGet tries every base endpoint in order and returns the first
// successful body. Each attempt is signed fresh so the timestamp stays
// within the API's acceptance window.
func (c *Client) doSignedGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	var lastErr error
	for _, base := range c.baseURLs {
		body, err := c.tryEndpoint(ctx, base, path, params)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.WarnContext(ctx, "endpoint failed, trying next",
			"base_url", base, "path", path, "error", err)
		lastErr = err
	}
	return nil, fmt.Errorf("all endpoints failed: %w", lastErr)
}

func (c *Client) tryEndpoint(ctx context.Context, base, path string, params url.Values) ([]byte, error) {
	signPath := apiPrefix + path
	fullURL := base + signPath
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// The signature covers the bare path; query parameters are excluded.
	if err := c.signRequest(req, http.MethodGet, signPath); err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if err := checkStatus(resp.StatusCode, respBody); err != nil {
		return nil, err
	}
	return respBody, nil
}

// signRequest adds RSA authentication headers to the HTTP request. The API
// uses RSA-PSS-SHA256 signatures over the timestamp + method + path message.
func (c *Client) signRequest(req *http.Request, method, path string) error {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	message := ts + method + path

	hash := sha256.Sum256([]byte(message))
	signature, err := rsa.SignPSS(rand.Reader, c.privateKey, crypto.SHA256, hash[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
	})
	if err != nil {
		return fmt.Errorf("RSA sign: %w", err)
	}

	req.Header.Set("KALSHI-ACCESS-KEY", c.apiKeyID)
	req.Header.Set("KALSHI-ACCESS-SIGNATURE", base64.StdEncoding.EncodeToString(signature))
	req.Header.Set("KALSHI-ACCESS-TIMESTAMP", ts)
	return nil
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// checkStatus maps non-2xx HTTP status codes to errors, keeping the domain
// sentinels wrappable for callers that branch on them.
func checkStatus(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	var apiErr apiError
	_ = json.Unmarshal(body, &apiErr)

	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s (%s)", domain.ErrNotFound, apiErr.Message, apiErr.Code)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s (%s)", domain.ErrUnauthorized, apiErr.Message, apiErr.Code)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s (%s)", domain.ErrRateLimited, apiErr.Message, apiErr.Code)
	default:
		return fmt.Errorf("HTTP %d: %s (%s)", statusCode, apiErr.Message, apiErr.Code)
	}
}

func decodeEvents(body []byte, series string) ([]domain.Event, error) {
	var resp eventsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("kalshi: decode events: %w", err)
	}

	events := make([]domain.Event, 0, len(resp.Events))
	for _, e := range resp.Events {
		de := e.toDomain()
		if de.SeriesTicker == "" {
			de.SeriesTicker = series
		}
		for i := range de.Markets {
			if de.Markets[i].SeriesTicker == "" {
				de.Markets[i].SeriesTicker = de.SeriesTicker
			}
		}
		events = append(events, de)
	}
	return events, nil
}

var _ domain.MarketCatalog = (*Client)(nil)
