package resolver

import "testing"

func TestNormalizeTextIdempotent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Champions League!", "champions league"},
		{"  NBA -- Finals  ", "nba finals"},
		{"already normal", "already normal"},
		{"***", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := NormalizeText(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := NormalizeText(got); again != got {
			t.Errorf("NormalizeText not idempotent: %q -> %q", got, again)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		haystack string
		want     float64
	}{
		{"full match", "lakers celtics", "Lakers vs Celtics tonight", 1.0},
		{"half match", "lakers warriors", "Lakers vs Celtics", 0.5},
		{"no match", "dolphins", "Lakers vs Celtics", 0},
		{"empty query", "", "Lakers vs Celtics", 0},
		{"empty haystack", "lakers", "", 0},
		{"substring token", "lake", "Lakers vs Celtics", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.query, tt.haystack)
			if got != tt.want {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Score out of range: %v", got)
			}
		})
	}
}

func TestIsLeagueLevel(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"Champions League final", true},
		{"premier league matchday", true},
		{"NBA", true},
		{"Lakers vs Celtics", false},
		{"manban", false}, // no accidental substring hits
		{"", false},
	}
	for _, tt := range tests {
		if got := IsLeagueLevel(tt.query); got != tt.want {
			t.Errorf("IsLeagueLevel(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
