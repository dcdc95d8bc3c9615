package resolver

import "strings"

// MatchThreshold is the minimum token-overlap score a candidate needs to
// count as a confident textual match.
const MatchThreshold = 0.35

// leagueTerms classify a query as "league-level": naming a broad competition
// rather than a specific matchup. Such queries rank by volume, not by text.
var leagueTerms = []string{
	"champions league",
	"premier league",
	"la liga",
	"serie a",
	"bundesliga",
	"ligue 1",
	"world cup",
	"march madness",
	"formula 1",
	"nfl",
	"nba",
	"mlb",
	"nhl",
	"ufc",
}

// NormalizeText lowercases s and collapses every non-alphanumeric run to a
// single space. It is idempotent: normalizing a normalized string is a no-op.
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range strings.ToLower(s) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Score computes the token-overlap score of query against haystack: the
// fraction of the query's whitespace tokens that appear as substrings of the
// normalized haystack. Always in [0,1]; empty input on either side scores 0.
func Score(query, haystack string) float64 {
	hay := NormalizeText(haystack)
	if hay == "" {
		return 0
	}
	tokens := strings.Fields(NormalizeText(query))
	if len(tokens) == 0 {
		return 0
	}
	hits := 0
	for _, tok := range tokens {
		if strings.Contains(hay, tok) {
			hits++
		}
	}
	return float64(hits) / float64(len(tokens))
}

// IsLeagueLevel reports whether the query names a broad competition or
// league rather than a specific matchup.
func IsLeagueLevel(query string) bool {
	text := " " + NormalizeText(query) + " "
	for _, term := range leagueTerms {
		if strings.Contains(text, " "+term+" ") {
			return true
		}
	}
	return false
}
