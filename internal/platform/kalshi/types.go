package kalshi

import (
	"encoding/json"
	"math"
	"time"

	"github.com/barhop/barhop/internal/domain"
)

// apiMarket mirrors the trade API market payload. Optional numeric fields
// stay pointers so an absent field is distinguishable from an explicit zero.
type apiMarket struct {
	Ticker         string `json:"ticker"`
	EventTicker    string `json:"event_ticker"`
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	YesSubTitle    string `json:"yes_sub_title"`
	NoSubTitle     string `json:"no_sub_title"`
	Status         string `json:"status"`
	YesBid         int    `json:"yes_bid"`
	YesAsk         int    `json:"yes_ask"`
	NoBid          int    `json:"no_bid"`
	NoAsk          int    `json:"no_ask"`
	LastPrice      int    `json:"last_price"`
	Volume         *int64 `json:"volume"`
	Volume24H      *int64 `json:"volume_24h"`
	OpenInterest   *int64 `json:"open_interest"`
	Liquidity      *int64 `json:"liquidity"`
	CloseTime      string `json:"close_time"`
	ExpirationTime string `json:"expiration_time"`
	ImageURL       string `json:"image_url"`
	IconURL        string `json:"icon_url"`
	LogoURL        string `json:"logo_url"`
}

type apiEvent struct {
	EventTicker  string      `json:"event_ticker"`
	SeriesTicker string      `json:"series_ticker"`
	Title        string      `json:"title"`
	SubTitle     string      `json:"sub_title"`
	Category     string      `json:"category"`
	Markets      []apiMarket `json:"markets"`
}

type marketsResponse struct {
	Markets []apiMarket `json:"markets"`
	Cursor  string      `json:"cursor"`
}

type eventsResponse struct {
	Events []apiEvent `json:"events"`
	Cursor string     `json:"cursor"`
}

// apiCandle carries the price either as a nested object or as a bare
// yes_price, depending on the endpoint revision that served it.
type apiCandle struct {
	EndPeriodTS int64           `json:"end_period_ts"`
	YesPrice    *float64        `json:"yes_price"`
	Price       json.RawMessage `json:"price"`
}

type candlePrice struct {
	Open         *float64 `json:"open"`
	Close        *float64 `json:"close"`
	CloseDollars *float64 `json:"close_dollars"`
}

type candlesticksResponse struct {
	Candlesticks []apiCandle `json:"candlesticks"`
}

func (m apiMarket) toDomain() domain.Market {
	title := m.Title
	if title == "" {
		title = m.YesSubTitle
	}
	last := m.LastPrice
	if last == 0 {
		last = m.YesBid
	}
	image := m.ImageURL
	if image == "" {
		image = m.IconURL
	}
	if image == "" {
		image = m.LogoURL
	}
	return domain.Market{
		Ticker:         m.Ticker,
		EventTicker:    m.EventTicker,
		Title:          title,
		Subtitle:       m.Subtitle,
		YesSubTitle:    m.YesSubTitle,
		NoSubTitle:     m.NoSubTitle,
		Status:         domain.ParseMarketStatus(m.Status),
		YesBid:         domain.ClampPrice(m.YesBid),
		YesAsk:         domain.ClampPrice(m.YesAsk),
		NoBid:          domain.ClampPrice(m.NoBid),
		NoAsk:          domain.ClampPrice(m.NoAsk),
		LastPrice:      domain.ClampPrice(last),
		Volume:         m.Volume,
		Volume24h:      m.Volume24H,
		OpenInterest:   m.OpenInterest,
		ImageURL:       image,
		CloseTime:      parseAPITime(m.CloseTime),
		ExpirationTime: parseAPITime(m.ExpirationTime),
	}
}

func (e apiEvent) toDomain() domain.Event {
	markets := make([]domain.Market, 0, len(e.Markets))
	for _, m := range e.Markets {
		markets = append(markets, m.toDomain())
	}
	return domain.Event{
		EventTicker:  e.EventTicker,
		SeriesTicker: e.SeriesTicker,
		Title:        e.Title,
		Subtitle:     e.SubTitle,
		Category:     e.Category,
		Markets:      markets,
	}
}

func parseAPITime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

// extractPrice resolves a candle's price using, in order, the nested
// close, close_dollars scaled to cents, the bare yes_price, then the
// nested open. Returns false when none of them is present.
func (c apiCandle) extractPrice() (float64, bool) {
	var nested candlePrice
	if len(c.Price) > 0 && c.Price[0] == '{' {
		_ = json.Unmarshal(c.Price, &nested)
	}
	switch {
	case nested.Close != nil:
		return roundClamp(*nested.Close), true
	case nested.CloseDollars != nil:
		return roundClamp(*nested.CloseDollars * 100), true
	case c.YesPrice != nil:
		return roundClamp(*c.YesPrice), true
	case nested.Open != nil:
		return roundClamp(*nested.Open), true
	}
	return 0, false
}

func roundClamp(p float64) float64 {
	return domain.ClampPricePct(math.Round(p*100) / 100)
}
