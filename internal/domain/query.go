package domain

import "strings"

// Result-count bounds for a resolution request.
const (
	DefaultQueryLimit = 24
	MinQueryLimit     = 6
	MaxQueryLimit     = 60
)

// MarketQuery is a single resolution request: an opaque event identifier plus
// optional human-readable hints. Constructed per request, never persisted.
type MarketQuery struct {
	// Identifier is the event slug or ID as supplied by the caller,
	// e.g. "champions-league" or "oscars-watch-party".
	Identifier string

	// DisplayName is an optional human label, e.g. "UEFA Champions League".
	DisplayName string

	// Category is an optional category hint, e.g. "soccer".
	Category string

	// Limit is the requested result count before clamping.
	Limit int
}

// ClampedLimit returns the effective result limit: the default when
// unspecified, otherwise clamped to [MinQueryLimit, MaxQueryLimit].
func (q MarketQuery) ClampedLimit() int {
	if q.Limit == 0 {
		return DefaultQueryLimit
	}
	if q.Limit < MinQueryLimit {
		return MinQueryLimit
	}
	if q.Limit > MaxQueryLimit {
		return MaxQueryLimit
	}
	return q.Limit
}

// SearchText joins the query's populated fields into the free-text search
// context used for keyword detection, scoring, and oracle prompts. Hyphens in
// the identifier are replaced so slugs tokenize like the names they encode.
func (q MarketQuery) SearchText() string {
	parts := make([]string, 0, 3)
	if s := strings.TrimSpace(strings.ReplaceAll(q.Identifier, "-", " ")); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(q.DisplayName); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(q.Category); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// Resolution is the outcome of running a MarketQuery through the pipeline.
// An empty SeriesTicker with no markets is a valid result, not an error.
type Resolution struct {
	Identifier   string
	SeriesTicker string
	Markets      []Market
}
