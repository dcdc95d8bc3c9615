package resolver

import "strings"

// aliasTable maps normalized event identifiers straight to a series ticker.
// This is the cheapest resolution step and covers the identifiers the front
// end is known to send.
var aliasTable = map[string]string{
	"oscars-watch-party": "KXOSCARS",
	"oscars":             "KXOSCARS",
	"champions-league":   "KXUCLGAME",
	"premier-league":     "KXEPLGAME",
	"world-cup":          "KXWCGAME",
	"nba-finals":         "KXNBAGAME",
	"march-madness":      "KXNCAAMGAME",
	"nfl-sunday-ticket":  "KXNFLGAME",
	"ufc-fight-night":    "KXUFCGAME",
}

// NormalizeKey reduces a label to the lowercase alphanumeric-hyphenated form
// used as an alias table key: non-alphanumeric runs collapse to a single
// hyphen and leading/trailing hyphens are trimmed.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AliasSeries looks up the identifier, then the display name, in the alias
// table. Returns "" when neither normalizes to a known key.
func AliasSeries(identifier, displayName string) string {
	if key := NormalizeKey(identifier); key != "" {
		if series, ok := aliasTable[key]; ok {
			return series
		}
	}
	if key := NormalizeKey(displayName); key != "" {
		if series, ok := aliasTable[key]; ok {
			return series
		}
	}
	return ""
}
