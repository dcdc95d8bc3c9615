package ws

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/barhop/barhop/internal/domain"
)

func testClient() *client {
	return &client{
		send: make(chan []byte, 4),
		subs: map[string]bool{"series:*": true},
	}
}

func TestWildcardSubscriptionMatchesAllSeries(t *testing.T) {
	c := testClient()

	if !c.isSubscribed("series:KXNBAGAME") {
		t.Error("default wildcard should match any series channel")
	}
	if c.isSubscribed("other:KXNBAGAME") {
		t.Error("wildcard is scoped to the series prefix")
	}
}

func TestSubscribeReplacesWildcard(t *testing.T) {
	c := testClient()

	c.handleSubscription(subscribeMsg{
		Action:   "subscribe",
		Channels: []string{"series:KXUCLGAME"},
	})

	if !c.isSubscribed("series:KXUCLGAME") {
		t.Error("explicit subscription lost")
	}
	if c.isSubscribed("series:KXNBAGAME") {
		t.Error("wildcard should be dropped after an explicit subscribe")
	}

	c.handleSubscription(subscribeMsg{
		Action:   "unsubscribe",
		Channels: []string{"series:KXUCLGAME"},
	})
	if c.isSubscribed("series:KXUCLGAME") {
		t.Error("unsubscribe did not remove the channel")
	}
}

func TestBroadcastMarketsEnvelope(t *testing.T) {
	h := NewHub(slog.New(slog.DiscardHandler))

	vol := int64(100)
	h.BroadcastMarkets("KXNBAGAME", []domain.Market{
		{Ticker: "KXNBAGAME-A", LastPrice: 55, Volume: &vol},
	})

	select {
	case msg := <-h.broadcast:
		if msg.channel != "series:KXNBAGAME" {
			t.Errorf("channel = %q", msg.channel)
		}
		var update priceUpdate
		if err := json.Unmarshal(msg.data, &update); err != nil {
			t.Fatalf("decoding update: %v", err)
		}
		if update.Type != "price_update" || update.Series != "KXNBAGAME" {
			t.Errorf("unexpected envelope: %+v", update)
		}
		if len(update.Markets) != 1 || update.Markets[0].Ticker != "KXNBAGAME-A" {
			t.Errorf("markets not carried: %+v", update.Markets)
		}
	default:
		t.Fatal("no message queued")
	}
}

func TestBroadcastDropsWhenQueueFull(t *testing.T) {
	h := NewHub(slog.New(slog.DiscardHandler))

	for i := 0; i < cap(h.broadcast)+10; i++ {
		h.BroadcastMarkets("KXNBAGAME", []domain.Market{{Ticker: "T"}})
	}

	if len(h.broadcast) != cap(h.broadcast) {
		t.Errorf("queue length %d, want full at %d", len(h.broadcast), cap(h.broadcast))
	}
}
