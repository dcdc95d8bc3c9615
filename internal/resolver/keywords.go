package resolver

import (
	"sort"
	"strings"
)

type keywordEntry struct {
	keyword string
	series  string
}

// keywordTable maps domain keywords found in free text to a series ticker.
// Longer keywords are matched first so "premier league" wins over a shorter
// overlapping term, independent of declaration order.
var keywordTable = []keywordEntry{
	{"super bowl", "KXSB"},
	{"champions league", "KXUCLGAME"},
	{"premier league", "KXEPLGAME"},
	{"world cup", "KXWCGAME"},
	{"march madness", "KXNCAAMGAME"},
	{"la liga", "KXLALIGAGAME"},
	{"golden globes", "KXGOLDENGLOBES"},
	{"academy awards", "KXOSCARS"},
	{"tony awards", "KXTONYAWARDS"},
	{"formula 1", "KXF1GAME"},
	{"bitcoin", "KXBTC"},
	{"ethereum", "KXETH"},
	{"solana", "KXSOL"},
	{"xrp", "KXXRP"},
	{"oscars", "KXOSCARS"},
	{"grammys", "KXGRAMMYS"},
	{"emmys", "KXEMMYS"},
	{"boxing", "KXBOXGAME"},
	{"tennis", "KXTENNIS"},
	{"golf", "KXGOLF"},
	{"nfl", "KXNFLGAME"},
	{"nba", "KXNBAGAME"},
	{"mlb", "KXMLBGAME"},
	{"nhl", "KXNHLGAME"},
	{"ufc", "KXUFCGAME"},
	{"mma", "KXUFCGAME"},
}

func init() {
	// Specificity order: longest keyword first, ties by declaration order.
	sort.SliceStable(keywordTable, func(i, j int) bool {
		return len(keywordTable[i].keyword) > len(keywordTable[j].keyword)
	})
}

// DetectSeries scans normalized free text for known domain keywords and
// returns the series of the most specific match, or "" when nothing hits.
func DetectSeries(freeText string) string {
	text := NormalizeText(freeText)
	if text == "" {
		return ""
	}
	padded := " " + text + " "
	for _, entry := range keywordTable {
		if strings.Contains(padded, " "+entry.keyword+" ") {
			return entry.series
		}
	}
	return ""
}
