package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// MarketStatus represents the lifecycle state of a market.
type MarketStatus string

const (
	MarketStatusOpen    MarketStatus = "open"
	MarketStatusActive  MarketStatus = "active"
	MarketStatusClosed  MarketStatus = "closed"
	MarketStatusSettled MarketStatus = "settled"
	MarketStatusUnknown MarketStatus = "unknown"
)

// ParseMarketStatus maps a raw upstream status string to a MarketStatus,
// defaulting to MarketStatusUnknown for anything unrecognised.
func ParseMarketStatus(s string) MarketStatus {
	switch MarketStatus(strings.ToLower(strings.TrimSpace(s))) {
	case MarketStatusOpen:
		return MarketStatusOpen
	case MarketStatusActive:
		return MarketStatusActive
	case MarketStatusClosed:
		return MarketStatusClosed
	case MarketStatusSettled:
		return MarketStatusSettled
	default:
		return MarketStatusUnknown
	}
}

// Tradeable reports whether markets in this status are still open for display
// in live listings.
func (s MarketStatus) Tradeable() bool {
	return s == MarketStatusOpen || s == MarketStatusActive
}

// ClampPrice bounds a price to the valid [0,100] percentage range.
func ClampPrice(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Market is a single tradeable yes/no contract. Prices are integer percentage
// points clamped to [0,100]. Volume fields are pointers so the pipeline can
// distinguish "not reported" from an actual zero; they are only collapsed to
// zero when the market is serialized.
type Market struct {
	Ticker       string
	EventTicker  string
	SeriesTicker string
	Title        string
	Subtitle     string
	YesSubTitle  string
	NoSubTitle   string

	YesBid    int
	YesAsk    int
	NoBid     int
	NoAsk     int
	LastPrice int

	Volume       *int64
	Volume24h    *int64
	OpenInterest *int64

	Status MarketStatus
	Result string

	CloseTime      *time.Time
	ExpirationTime *time.Time

	ImageURL string
}

// VolumeOrZero collapses an unreported volume to zero for ranking arithmetic.
func (m Market) VolumeOrZero() int64 {
	if m.Volume == nil {
		return 0
	}
	return *m.Volume
}

// SearchText concatenates the market's salient text fields for token
// matching against a user query.
func (m Market) SearchText() string {
	return strings.Join([]string{
		m.Title, m.Subtitle, m.YesSubTitle, m.NoSubTitle, m.Ticker, m.EventTicker,
	}, " ")
}

// marketJSON is the wire representation of a Market. Optional numerics
// default to zero here, at the serialization boundary, and nowhere earlier.
type marketJSON struct {
	Ticker       string `json:"ticker"`
	EventTicker  string `json:"event_ticker"`
	SeriesTicker string `json:"series_ticker"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	YesSubTitle  string `json:"yes_sub_title,omitempty"`
	NoSubTitle   string `json:"no_sub_title,omitempty"`

	YesBid    int `json:"yes_bid"`
	YesAsk    int `json:"yes_ask"`
	NoBid     int `json:"no_bid"`
	NoAsk     int `json:"no_ask"`
	LastPrice int `json:"last_price"`

	Volume       int64 `json:"volume"`
	Volume24h    int64 `json:"volume_24h"`
	OpenInterest int64 `json:"open_interest"`

	Status string `json:"status"`
	Result string `json:"result,omitempty"`

	CloseTime      *time.Time `json:"close_time,omitempty"`
	ExpirationTime *time.Time `json:"expiration_time,omitempty"`

	ImageURL string `json:"image_url,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (m Market) MarshalJSON() ([]byte, error) {
	out := marketJSON{
		Ticker:         m.Ticker,
		EventTicker:    m.EventTicker,
		SeriesTicker:   m.SeriesTicker,
		Title:          m.Title,
		Subtitle:       m.Subtitle,
		YesSubTitle:    m.YesSubTitle,
		NoSubTitle:     m.NoSubTitle,
		YesBid:         m.YesBid,
		YesAsk:         m.YesAsk,
		NoBid:          m.NoBid,
		NoAsk:          m.NoAsk,
		LastPrice:      m.LastPrice,
		Status:         string(m.Status),
		Result:         m.Result,
		CloseTime:      m.CloseTime,
		ExpirationTime: m.ExpirationTime,
		ImageURL:       m.ImageURL,
	}
	if m.Volume != nil {
		out.Volume = *m.Volume
	}
	if m.Volume24h != nil {
		out.Volume24h = *m.Volume24h
	}
	if m.OpenInterest != nil {
		out.OpenInterest = *m.OpenInterest
	}
	return json.Marshal(out)
}

// Event groups the markets tied to one real-world occurrence. This is the
// market-source notion of an event, distinct from the venue listings the
// front end shows.
type Event struct {
	EventTicker  string   `json:"event_ticker"`
	SeriesTicker string   `json:"series_ticker"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle,omitempty"`
	Category     string   `json:"category,omitempty"`
	Markets      []Market `json:"markets,omitempty"`
}

// SearchText concatenates the event's salient text fields for token matching.
func (e Event) SearchText() string {
	return strings.Join([]string{e.Title, e.Subtitle, e.Category, e.EventTicker}, " ")
}

// TotalVolume sums the reported volume across the event's markets.
func (e Event) TotalVolume() int64 {
	var total int64
	for _, m := range e.Markets {
		total += m.VolumeOrZero()
	}
	return total
}
