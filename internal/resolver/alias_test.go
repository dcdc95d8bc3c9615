package resolver

import "testing"

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Oscars Watch Party", "oscars-watch-party"},
		{"champions-league", "champions-league"},
		{"  UFC // Fight Night!  ", "ufc-fight-night"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAliasSeries(t *testing.T) {
	tests := []struct {
		name        string
		identifier  string
		displayName string
		want        string
	}{
		{"identifier hit", "oscars-watch-party", "", "KXOSCARS"},
		{"identifier normalized", "Oscars Watch Party", "", "KXOSCARS"},
		{"display name fallback", "some-venue-event", "NBA Finals", "KXNBAGAME"},
		{"identifier wins over display name", "premier-league", "World Cup", "KXEPLGAME"},
		{"miss", "trivia-night", "Trivia Night", ""},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AliasSeries(tt.identifier, tt.displayName); got != tt.want {
				t.Errorf("AliasSeries = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectSeries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"simple keyword", "ufc fight tonight", "KXUFCGAME"},
		{"longest match wins", "premier league soccer nfl talk", "KXEPLGAME"},
		{"super bowl beats nfl", "nfl super bowl party", "KXSB"},
		{"case and punctuation", "Champions League: semifinal!", "KXUCLGAME"},
		{"word boundary required", "manba festival", ""},
		{"no keyword", "trivia night downtown", ""},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSeries(tt.text); got != tt.want {
				t.Errorf("DetectSeries(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
