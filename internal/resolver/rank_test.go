package resolver

import (
	"testing"

	"github.com/barhop/barhop/internal/domain"
)

func TestSortByVolumeDescStable(t *testing.T) {
	in := []domain.Market{
		{Ticker: "A", Volume: i64(100)},
		{Ticker: "B", Volume: i64(500)},
		{Ticker: "C", Volume: i64(100)},
		{Ticker: "D"}, // unreported volume ranks as 0
		{Ticker: "E", Volume: i64(100)},
	}

	got := SortByVolumeDesc(in)

	want := []string{"B", "A", "C", "E", "D"}
	for i, w := range want {
		if got[i].Ticker != w {
			t.Errorf("rank %d = %s, want %s", i, got[i].Ticker, w)
		}
	}

	// Input order untouched.
	if in[0].Ticker != "A" || in[4].Ticker != "E" {
		t.Error("SortByVolumeDesc mutated its input")
	}
}

func TestTopByVolumePreservesCatalogOrder(t *testing.T) {
	in := []domain.Market{
		{Ticker: "A", Volume: i64(10)},
		{Ticker: "B", Volume: i64(900)},
		{Ticker: "C", Volume: i64(5)},
		{Ticker: "D", Volume: i64(300)},
	}

	got := TopByVolume(in, 2)

	// B and D survive, in their original catalog positions.
	if len(got) != 2 || got[0].Ticker != "B" || got[1].Ticker != "D" {
		t.Errorf("got %+v", got)
	}

	all := TopByVolume(in, 10)
	if len(all) != 4 || all[0].Ticker != "A" {
		t.Errorf("k > len should return the catalog unchanged, got %+v", all)
	}
}

func TestFilterConfident(t *testing.T) {
	candidates := []domain.Market{
		{Ticker: "A", Title: "Lakers vs Celtics"},
		{Ticker: "B", Title: "Warriors vs Suns"},
		{Ticker: "C", Title: "Lakers vs Warriors"},
	}

	got := FilterConfident("lakers celtics", candidates)
	if len(got) != 2 {
		t.Fatalf("got %d markets: %+v", len(got), got)
	}
	// A scores 1.0, C scores 0.5; B scores 0 and is dropped.
	if got[0].Ticker != "A" || got[1].Ticker != "C" {
		t.Errorf("order = %s, %s", got[0].Ticker, got[1].Ticker)
	}

	if got := FilterConfident("dolphins jets", candidates); got != nil {
		t.Errorf("expected nil for no confident match, got %+v", got)
	}
}

func TestFilterConfidentStableTies(t *testing.T) {
	candidates := []domain.Market{
		{Ticker: "A", Title: "Lakers game one"},
		{Ticker: "B", Title: "Lakers game two"},
		{Ticker: "C", Title: "Lakers game three"},
	}

	got := FilterConfident("lakers game", candidates)
	if len(got) != 3 {
		t.Fatalf("got %d markets", len(got))
	}
	for i, w := range []string{"A", "B", "C"} {
		if got[i].Ticker != w {
			t.Errorf("tie order broken at %d: got %s", i, got[i].Ticker)
		}
	}
}

func TestThresholdMonotonicity(t *testing.T) {
	candidates := []domain.Market{
		{Ticker: "A", Title: "alpha beta gamma delta"},
		{Ticker: "B", Title: "alpha beta gamma"},
		{Ticker: "C", Title: "alpha beta"},
		{Ticker: "D", Title: "alpha"},
	}

	query := "alpha beta gamma delta"
	prev := len(filterAbove(query, candidates, 0))
	for _, threshold := range []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.0} {
		n := len(filterAbove(query, candidates, threshold))
		if n > prev {
			t.Errorf("raising threshold to %v increased count from %d to %d", threshold, prev, n)
		}
		prev = n
	}
}

func TestCandidatePool(t *testing.T) {
	if got := CandidatePool(24); got != 40 {
		t.Errorf("CandidatePool(24) = %d", got)
	}
	if got := CandidatePool(60); got != 60 {
		t.Errorf("CandidatePool(60) = %d", got)
	}
}

func TestTruncate(t *testing.T) {
	in := []domain.Market{{Ticker: "A"}, {Ticker: "B"}, {Ticker: "C"}}
	if got := Truncate(in, 2); len(got) != 2 {
		t.Errorf("Truncate = %d items", len(got))
	}
	if got := Truncate(in, 5); len(got) != 3 {
		t.Errorf("Truncate beyond length = %d items", len(got))
	}
}
