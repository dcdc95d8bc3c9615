package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/barhop/barhop/internal/domain"
)

// fakeModel serves a fixed chat completion answer.
func fakeModel(t *testing.T, answer string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: answer}},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
}

func oracleFor(srv *httptest.Server) *Oracle {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return &Oracle{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT4oMini,
		logger: slog.New(slog.DiscardHandler),
	}
}

func TestDisabledOracle(t *testing.T) {
	o := NewOracle("", "", slog.New(slog.DiscardHandler))
	if o.Enabled() {
		t.Fatal("oracle without key should be disabled")
	}

	ticker, err := o.ClassifySeries(context.Background(), "lakers game tonight")
	if err != nil || ticker != "" {
		t.Errorf("ClassifySeries = %q, %v", ticker, err)
	}
	suggestions, err := o.SuggestSeries(context.Background(), "lakers", 3)
	if err != nil || suggestions != nil {
		t.Errorf("SuggestSeries = %v, %v", suggestions, err)
	}
	name, err := o.CanonicalName(context.Background(), "LAL", "nba")
	if err != nil || name != "" {
		t.Errorf("CanonicalName = %q, %v", name, err)
	}
}

func TestClassifySeries(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{"plain ticker", "KXNBAGAME", "KXNBAGAME"},
		{"ticker with prose", "The best fit is KXUCLGAME.", "KXUCLGAME"},
		{"lowercase", "kxnflgame", "KXNFLGAME"},
		{"none", "NONE", ""},
		{"no ticker shape", "basketball", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeModel(t, tt.answer)
			defer srv.Close()

			got, err := oracleFor(srv).ClassifySeries(context.Background(), "some event")
			if err != nil {
				t.Fatalf("ClassifySeries: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuggestSeries(t *testing.T) {
	srv := fakeModel(t, "Sure! ```json\n{\"tickers\": [\"KXNBAGAME\", \"nope\", \"KXSB\", \"KXMLBGAME\"]}\n```")
	defer srv.Close()

	got, err := oracleFor(srv).SuggestSeries(context.Background(), "basketball finals", 2)
	if err != nil {
		t.Fatalf("SuggestSeries: %v", err)
	}
	if len(got) != 2 || got[0] != "KXNBAGAME" || got[1] != "KXSB" {
		t.Errorf("got %v", got)
	}
}

func TestSuggestSeriesMalformed(t *testing.T) {
	srv := fakeModel(t, "I cannot answer that.")
	defer srv.Close()

	got, err := oracleFor(srv).SuggestSeries(context.Background(), "basketball", 3)
	if err != nil || got != nil {
		t.Errorf("malformed reply should fail soft, got %v, %v", got, err)
	}
}

func TestSelectMarketsUnknownTickersDropped(t *testing.T) {
	srv := fakeModel(t, `{"tickers": ["M2", "BOGUS", "M1"]}`)
	defer srv.Close()

	candidates := []domain.Market{
		{Ticker: "M1", Title: "Lakers win"},
		{Ticker: "M2", Title: "Celtics win"},
	}
	got, err := oracleFor(srv).SelectMarkets(context.Background(), "lakers", candidates, 5)
	if err != nil {
		t.Fatalf("SelectMarkets: %v", err)
	}
	if len(got) != 2 || got[0] != "M2" || got[1] != "M1" {
		t.Errorf("got %v", got)
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		answer string
		want   string
	}{
		{`"Manchester United"`, "Manchester United"},
		{"UNSURE", ""},
		{"", ""},
	}
	for _, tt := range tests {
		srv := fakeModel(t, tt.answer)
		got, err := oracleFor(srv).CanonicalName(context.Background(), "MAN UTD", "football")
		srv.Close()
		if err != nil {
			t.Fatalf("CanonicalName: %v", err)
		}
		if got != tt.want {
			t.Errorf("answer %q: got %q, want %q", tt.answer, got, tt.want)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	in := "Here you go:\n```json\n{\"tickers\": []}\n```"
	if got := extractJSON(in); got != `{"tickers": []}` {
		t.Errorf("extractJSON = %q", got)
	}
	if got := extractJSON("no json here"); got != "no json here" {
		t.Errorf("extractJSON passthrough = %q", got)
	}
}
