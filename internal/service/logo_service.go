package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/barhop/barhop/internal/domain"
)

// logoBatchConcurrency bounds parallel lookups in a batch request.
const logoBatchConcurrency = 4

// sportsContexts mark a lookup context as sports-related, which unlocks the
// badge database tier.
var sportsContexts = []string{
	"football", "soccer", "basketball", "nba", "nfl", "mlb", "nhl",
	"hockey", "baseball", "mma", "ufc", "premier league",
}

// expansions maps common team abbreviations to the names the badge
// database actually indexes.
var expansions = map[string]string{
	"PSG":      "Paris Saint-Germain",
	"MAN UTD":  "Manchester United",
	"MAN CITY": "Manchester City",
	"REAL":     "Real Madrid",
	"BARCA":    "Barcelona",
	"BAY":      "Bayern Munich",
	"JUV":      "Juventus",
	"ARS":      "Arsenal",
	"CHE":      "Chelsea",
	"LIV":      "Liverpool",
	"TOT":      "Tottenham",
	"LAL":      "Los Angeles Lakers",
	"GSW":      "Golden State Warriors",
	"BOS":      "Boston Celtics",
	"MIA":      "Miami Heat",
	"BENFICA":  "Benfica",
	"PORTO":    "FC Porto",
	"SPORTING": "Sporting CP",
}

var (
	clubPrefix = regexp.MustCompile(`(?i)^(SL|FC|AS|AC|SS|SC|CF|CD|CA|RC|RCD|SD|UD|US|AJ|OGC|VfB|VfL|TSG|RB|BSC|1\.|Sporting|Athletic|Atlético)\s+`)
	clubSuffix = regexp.MustCompile(`(?i)\s+(FC|SC|CF|AC|United|City)$`)
)

// BadgeSource looks up a team badge image by team name.
type BadgeSource interface {
	TeamBadge(ctx context.Context, name string) (string, error)
}

// EncyclopediaSource resolves a free-text query to a representative image.
type EncyclopediaSource interface {
	Thumbnail(ctx context.Context, query string) (string, error)
}

// LogoQuery is one entity lookup in a batch request.
type LogoQuery struct {
	Name    string `json:"name"`
	Context string `json:"context,omitempty"`
}

// LogoService resolves entity names to image URLs through a tiered lookup:
// badge database for sports contexts, an optional name-canonicalization step
// for abbreviated labels, and encyclopedia image search as the universal
// fallback. Results, including misses, are memoized.
type LogoService struct {
	badges       BadgeSource
	encyclopedia EncyclopediaSource
	oracle       domain.Oracle
	cache        domain.LogoCache
	logger       *slog.Logger
}

// NewLogoService creates a LogoService.
func NewLogoService(badges BadgeSource, encyclopedia EncyclopediaSource, oracle domain.Oracle, cache domain.LogoCache, logger *slog.Logger) *LogoService {
	return &LogoService{
		badges:       badges,
		encyclopedia: encyclopedia,
		oracle:       oracle,
		cache:        cache,
		logger:       logger.With("component", "logo_service"),
	}
}

// LogoURL resolves one entity name to an image URL, or "" when every tier
// misses. Lookup failures degrade to the next tier and are never returned
// as errors; only context cancellation aborts.
func (s *LogoService) LogoURL(ctx context.Context, name, contextHint string) (string, error) {
	key := cacheKey(name, contextHint)
	if url, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return url, nil
	} else if err != nil {
		s.logger.WarnContext(ctx, "logo cache get failed", "key", key, "error", err)
	}

	url := s.lookup(ctx, name, contextHint)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, url); err != nil {
		s.logger.WarnContext(ctx, "logo cache set failed", "key", key, "error", err)
	}
	return url, nil
}

// Logos resolves a batch of entity lookups concurrently. One failed lookup
// never fails the batch; its entry is simply empty.
func (s *LogoService) Logos(ctx context.Context, queries []LogoQuery, defaultContext string) (map[string]string, error) {
	results := make([]string, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(logoBatchConcurrency)
	for i, q := range queries {
		g.Go(func() error {
			lookupCtx := q.Context
			if lookupCtx == "" {
				lookupCtx = defaultContext
			}
			url, err := s.LogoURL(gctx, q.Name, lookupCtx)
			if err != nil {
				return err
			}
			results[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(queries))
	for i, q := range queries {
		out[q.Name] = results[i]
	}
	return out, nil
}

func (s *LogoService) lookup(ctx context.Context, name, contextHint string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}

	if isSportsContext(contextHint) {
		if url := s.badgeLookup(ctx, name); url != "" {
			return url
		}
	}

	// Abbreviated labels search poorly; expand before the encyclopedia tier.
	searchName := name
	if looksAbbreviated(name) && s.oracle.Enabled() {
		if full, err := s.oracle.CanonicalName(ctx, name, contextHint); err == nil && full != "" {
			searchName = full
		}
	}

	query := searchName
	if contextHint != "" {
		query += " " + contextHint
	}
	url, err := s.encyclopedia.Thumbnail(ctx, query)
	if err != nil {
		s.logger.WarnContext(ctx, "encyclopedia lookup failed", "query", query, "error", err)
		return ""
	}
	return url
}

// badgeLookup tries the raw name, the club-affix-stripped name, then the
// expansion table.
func (s *LogoService) badgeLookup(ctx context.Context, name string) string {
	tried := map[string]bool{}
	for _, candidate := range []string{name, cleanTeamName(name)} {
		if candidate == "" || tried[candidate] {
			continue
		}
		tried[candidate] = true
		url, err := s.badges.TeamBadge(ctx, candidate)
		if err != nil {
			s.logger.WarnContext(ctx, "badge lookup failed", "name", candidate, "error", err)
			continue
		}
		if url != "" {
			return url
		}
	}

	if expanded, ok := expansions[strings.ToUpper(strings.TrimSpace(name))]; ok && !tried[expanded] {
		url, err := s.badges.TeamBadge(ctx, expanded)
		if err == nil && url != "" {
			return url
		}
	}
	return ""
}

func cacheKey(name, contextHint string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(contextHint))
}

func isSportsContext(contextHint string) bool {
	c := strings.ToLower(contextHint)
	if c == "" {
		return false
	}
	for _, s := range sportsContexts {
		if strings.Contains(c, s) {
			return true
		}
	}
	return false
}

// cleanTeamName strips club-form prefixes and suffixes so "FC Barcelona"
// and "Barcelona" hit the same badge entry.
func cleanTeamName(name string) string {
	name = clubPrefix.ReplaceAllString(name, "")
	name = clubSuffix.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// looksAbbreviated reports whether a label is likely a shorthand: short and
// fully uppercase, or a matchup containing "vs".
func looksAbbreviated(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)
	if strings.Contains(" "+lower+" ", " vs ") || strings.Contains(lower, " vs. ") {
		return true
	}
	return len(trimmed) <= 8 && trimmed == strings.ToUpper(trimmed) && trimmed != strings.ToLower(trimmed)
}
