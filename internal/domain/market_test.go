package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestClampPrice(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{150, 100},
		{-10, 0},
		{0, 0},
		{100, 100},
		{55, 55},
	}
	for _, c := range cases {
		if got := ClampPrice(c.in); got != c.want {
			t.Errorf("ClampPrice(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseMarketStatus(t *testing.T) {
	cases := []struct {
		in   string
		want MarketStatus
	}{
		{"open", MarketStatusOpen},
		{"Active", MarketStatusActive},
		{" settled ", MarketStatusSettled},
		{"closed", MarketStatusClosed},
		{"finalized", MarketStatusUnknown},
		{"", MarketStatusUnknown},
	}
	for _, c := range cases {
		if got := ParseMarketStatus(c.in); got != c.want {
			t.Errorf("ParseMarketStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMarketMarshalDefaultsMissingVolumeToZero(t *testing.T) {
	m := Market{
		Ticker:       "KXEPLGAME-ARS-CHE",
		EventTicker:  "KXEPLGAME-25NOV01",
		SeriesTicker: "KXEPLGAME",
		Title:        "Arsenal vs Chelsea",
		Status:       MarketStatusOpen,
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := out["volume"].(float64); !ok || v != 0 {
		t.Errorf("volume = %v, want 0", out["volume"])
	}
	if v, ok := out["open_interest"].(float64); !ok || v != 0 {
		t.Errorf("open_interest = %v, want 0", out["open_interest"])
	}
	if _, present := out["close_time"]; present {
		t.Error("close_time should be omitted when unset")
	}
}

func TestMarketVolumeOrZeroDistinguishesNil(t *testing.T) {
	var m Market
	if m.VolumeOrZero() != 0 {
		t.Fatalf("nil volume should rank as 0")
	}
	vol := int64(42)
	m.Volume = &vol
	if m.VolumeOrZero() != 42 {
		t.Fatalf("VolumeOrZero = %d, want 42", m.VolumeOrZero())
	}
}

func TestSearchTextIncludesSalientFields(t *testing.T) {
	m := Market{
		Ticker:      "T1",
		EventTicker: "E1",
		Title:       "Arsenal vs Chelsea Winner",
		YesSubTitle: "Arsenal",
		NoSubTitle:  "Chelsea",
	}
	text := m.SearchText()
	for _, want := range []string{"Arsenal", "Chelsea", "T1", "E1"} {
		if !strings.Contains(text, want) {
			t.Errorf("SearchText missing %q: %q", want, text)
		}
	}
}
