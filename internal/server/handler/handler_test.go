package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/barhop/barhop/internal/domain"
	"github.com/barhop/barhop/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type fakeMarkets struct {
	resolution  domain.Resolution
	resolveErr  error
	lastQuery   domain.MarketQuery
	candles     []domain.CandlestickPoint
	candleErr   error
	lastSeries  string
	lastTicker  string
	lastHours   int
	lastIntervl int
}

func (f *fakeMarkets) ResolveMarkets(_ context.Context, q domain.MarketQuery) (domain.Resolution, error) {
	f.lastQuery = q
	return f.resolution, f.resolveErr
}

func (f *fakeMarkets) Candlesticks(_ context.Context, series, ticker string, hours, interval int) ([]domain.CandlestickPoint, error) {
	f.lastSeries, f.lastTicker = series, ticker
	f.lastHours, f.lastIntervl = hours, interval
	return f.candles, f.candleErr
}

func TestResolveMarketsResponse(t *testing.T) {
	markets := &fakeMarkets{
		resolution: domain.Resolution{
			Identifier:   "champions-league",
			SeriesTicker: "KXUCLGAME",
			Markets: []domain.Market{
				{Ticker: "KXUCLGAME-A", Status: domain.MarketStatusOpen},
			},
		},
	}
	h := NewMarketHandler(markets, discardLogger())

	req := httptest.NewRequest("GET", "/api/markets/champions-league?name=UEFA+Champions+League&limit=5", nil)
	req.SetPathValue("identifier", "champions-league")
	rec := httptest.NewRecorder()

	h.ResolveMarkets(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if markets.lastQuery.DisplayName != "UEFA Champions League" {
		t.Errorf("display name not forwarded: %q", markets.lastQuery.DisplayName)
	}
	if markets.lastQuery.Limit != 5 {
		t.Errorf("limit not forwarded: %d", markets.lastQuery.Limit)
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["eventId"] != "champions-league" {
		t.Errorf("eventId = %v", resp["eventId"])
	}
	if resp["seriesTicker"] != "KXUCLGAME" {
		t.Errorf("seriesTicker = %v", resp["seriesTicker"])
	}
	if resp["count"] != float64(1) {
		t.Errorf("count = %v", resp["count"])
	}
}

func TestResolveMarketsNoMatchIsOK(t *testing.T) {
	markets := &fakeMarkets{
		resolution: domain.Resolution{
			Identifier: "trivia-night",
			Markets:    []domain.Market{},
		},
	}
	h := NewMarketHandler(markets, discardLogger())

	req := httptest.NewRequest("GET", "/api/markets/trivia-night", nil)
	req.SetPathValue("identifier", "trivia-night")
	rec := httptest.NewRecorder()

	h.ResolveMarkets(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for no match, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"seriesTicker":null`) {
		t.Errorf("unresolved series should be null: %s", body)
	}
	if !strings.Contains(body, `"markets":[]`) {
		t.Errorf("markets should be an empty array, not null: %s", body)
	}
}

func TestResolveMarketsMissingIdentifier(t *testing.T) {
	h := NewMarketHandler(&fakeMarkets{}, discardLogger())

	req := httptest.NewRequest("GET", "/api/markets/", nil)
	rec := httptest.NewRecorder()

	h.ResolveMarkets(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestResolveMarketsServiceError(t *testing.T) {
	markets := &fakeMarkets{resolveErr: errors.New("boom")}
	h := NewMarketHandler(markets, discardLogger())

	req := httptest.NewRequest("GET", "/api/markets/x", nil)
	req.SetPathValue("identifier", "x")
	rec := httptest.NewRecorder()

	h.ResolveMarkets(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected an error field")
	}
}

func TestCandlesticksForwardsParams(t *testing.T) {
	markets := &fakeMarkets{
		candles: []domain.CandlestickPoint{{TS: 100, Price: 42}},
	}
	h := NewMarketHandler(markets, discardLogger())

	req := httptest.NewRequest("GET", "/api/candlesticks/KXNBAGAME/KXNBAGAME-X?hours=24&interval=5", nil)
	req.SetPathValue("series", "KXNBAGAME")
	req.SetPathValue("ticker", "KXNBAGAME-X")
	rec := httptest.NewRecorder()

	h.Candlesticks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if markets.lastHours != 24 || markets.lastIntervl != 5 {
		t.Errorf("params not forwarded: hours=%d interval=%d", markets.lastHours, markets.lastIntervl)
	}

	var resp candlesticksResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 || resp.Ticker != "KXNBAGAME-X" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCandlesticksMissingTicker(t *testing.T) {
	h := NewMarketHandler(&fakeMarkets{}, discardLogger())

	req := httptest.NewRequest("GET", "/api/candlesticks/KXNBAGAME/", nil)
	req.SetPathValue("series", "KXNBAGAME")
	rec := httptest.NewRecorder()

	h.Candlesticks(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

type fakeLogos struct {
	urls        map[string]string
	err         error
	lastContext string
	lastQueries []service.LogoQuery
}

func (f *fakeLogos) LogoURL(_ context.Context, name, contextHint string) (string, error) {
	f.lastContext = contextHint
	return f.urls[name], f.err
}

func (f *fakeLogos) Logos(_ context.Context, queries []service.LogoQuery, defaultContext string) (map[string]string, error) {
	f.lastQueries = queries
	f.lastContext = defaultContext
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string, len(queries))
	for _, q := range queries {
		out[q.Name] = f.urls[q.Name]
	}
	return out, nil
}

func TestGetLogoHitAndMiss(t *testing.T) {
	logos := &fakeLogos{urls: map[string]string{"Arsenal": "https://cdn/arsenal.png"}}
	h := NewLogoHandler(logos, discardLogger())

	req := httptest.NewRequest("GET", "/api/logo/Arsenal?context=soccer", nil)
	req.SetPathValue("query", "Arsenal")
	rec := httptest.NewRecorder()

	h.GetLogo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if logos.lastContext != "soccer" {
		t.Errorf("context not forwarded: %q", logos.lastContext)
	}
	if !strings.Contains(rec.Body.String(), `"logoUrl":"https://cdn/arsenal.png"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/logo/Unknown", nil)
	req.SetPathValue("query", "Unknown")
	rec = httptest.NewRecorder()

	h.GetLogo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("miss should still be 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"logoUrl":null`) {
		t.Errorf("miss should be null: %s", rec.Body.String())
	}
}

func TestBatchLogosMixedQueryForms(t *testing.T) {
	logos := &fakeLogos{urls: map[string]string{
		"Arsenal": "https://cdn/arsenal.png",
		"Lakers":  "https://cdn/lakers.png",
	}}
	h := NewLogoHandler(logos, discardLogger())

	body := `{"queries":["Arsenal",{"name":"Lakers","context":"nba"},{"name":"Nobody"}],"context":"sports"}`
	req := httptest.NewRequest("POST", "/api/logos", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.BatchLogos(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(logos.lastQueries) != 3 {
		t.Fatalf("expected 3 queries, got %d", len(logos.lastQueries))
	}
	if logos.lastQueries[1].Context != "nba" {
		t.Errorf("per-query context lost: %+v", logos.lastQueries[1])
	}
	if logos.lastContext != "sports" {
		t.Errorf("default context not forwarded: %q", logos.lastContext)
	}

	var resp struct {
		Logos map[string]*string `json:"logos"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Logos["Arsenal"] == nil || *resp.Logos["Arsenal"] != "https://cdn/arsenal.png" {
		t.Errorf("Arsenal = %v", resp.Logos["Arsenal"])
	}
	if resp.Logos["Nobody"] != nil {
		t.Errorf("miss should be null, got %v", *resp.Logos["Nobody"])
	}
}

func TestBatchLogosEmptyBody(t *testing.T) {
	h := NewLogoHandler(&fakeLogos{}, discardLogger())

	req := httptest.NewRequest("POST", "/api/logos", strings.NewReader(`{"queries":[]}`))
	rec := httptest.NewRecorder()

	h.BatchLogos(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

type fakeVenues struct {
	venues []domain.Venue
	err    error
}

func (f *fakeVenues) ListVenues(context.Context) ([]domain.Venue, error) {
	return f.venues, f.err
}

func (f *fakeVenues) GetVenue(_ context.Context, id string) (domain.Venue, error) {
	for _, v := range f.venues {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Venue{}, domain.ErrNotFound
}

func TestListVenues(t *testing.T) {
	h := NewVenueHandler(&fakeVenues{venues: []domain.Venue{
		{ID: "stout", Name: "Stout NYC"},
	}}, discardLogger())

	req := httptest.NewRequest("GET", "/api/venues", nil)
	rec := httptest.NewRecorder()

	h.ListVenues(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetVenueNotFound(t *testing.T) {
	h := NewVenueHandler(&fakeVenues{}, discardLogger())

	req := httptest.NewRequest("GET", "/api/venues/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()

	h.GetVenue(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

type fakeProber struct {
	statuses []domain.EndpointStatus
	calls    int
}

func (f *fakeProber) ProbeEndpoints(_ context.Context, series string) []domain.EndpointStatus {
	f.calls++
	return f.statuses
}

func TestHealthCheckPlain(t *testing.T) {
	prober := &fakeProber{}
	h := NewHealthHandler(prober, true, discardLogger())

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()

	h.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if prober.calls != 0 {
		t.Error("probe should not run without a series param")
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHealthCheckProbesDegraded(t *testing.T) {
	prober := &fakeProber{statuses: []domain.EndpointStatus{
		{BaseURL: "https://a.example", OK: true, LatencyMS: 12},
		{BaseURL: "https://b.example", OK: false, Error: "connection refused"},
	}}
	h := NewHealthHandler(prober, false, discardLogger())

	req := httptest.NewRequest("GET", "/api/health?series=KXNBAGAME", nil)
	rec := httptest.NewRecorder()

	h.HealthCheck(rec, req)

	if prober.calls != 1 {
		t.Fatalf("expected one probe call, got %d", prober.calls)
	}
	if !strings.Contains(rec.Body.String(), `"status":"degraded"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
