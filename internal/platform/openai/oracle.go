package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/barhop/barhop/internal/domain"
)

// seriesCatalog is the fixed menu of series tickers the classifier may pick
// from, grouped the way a prompt reader scans them.
const seriesCatalog = `Sports:
- KXNFLGAME (NFL games), KXSB (Super Bowl)
- KXNBAGAME (NBA games), KXNCAAMGAME (college basketball)
- KXMLBGAME (MLB games), KXNHLGAME (NHL games)
- KXWCGAME (World Cup), KXUCLGAME (Champions League)
- KXEPLGAME (Premier League), KXLALIGAGAME (La Liga)
- KXSABORUNFRGAME (Ligue 1)
- KXUFCGAME (UFC fights), KXBOXGAME (boxing)
- KXGOLF (golf tournaments), KXTENNIS (tennis)
- KXF1GAME (Formula 1)

Entertainment:
- KXOSCARS (Academy Awards), KXGRAMMYS (Grammys)
- KXEMMYS (Emmys), KXGOLDENGLOBES (Golden Globes)
- KXTONYAWARDS (Tony Awards)

Crypto:
- KXBTC (Bitcoin), KXETH (Ethereum), KXSOL (Solana), KXXRP (XRP)

Politics:
- KXPRES (presidential), KXSENATE (Senate), KXHOUSE (House), KXGOV (governors)

Economics:
- KXINX (S&P 500), KXFED (Fed rates), KXECON (economic data)

Other:
- KXWEATHER (weather)`

var tickerPattern = regexp.MustCompile(`KX[A-Z0-9]+`)

// Oracle answers classification questions with a chat model. Every method
// fails soft: when the credential is missing or the model returns something
// unusable, callers get an empty result, never a hard failure they must
// special-case.
type Oracle struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOracle creates an Oracle. An empty apiKey yields a disabled oracle
// whose methods all return empty results.
func NewOracle(apiKey, model string, logger *slog.Logger) *Oracle {
	o := &Oracle{
		model:  model,
		logger: logger.With("component", "oracle"),
	}
	if o.model == "" {
		o.model = openai.GPT4oMini
	}
	if apiKey != "" {
		o.client = openai.NewClient(apiKey)
	}
	return o
}

// Enabled reports whether a credential was configured.
func (o *Oracle) Enabled() bool {
	return o.client != nil
}

// ClassifySeries asks the model to pick one series ticker from the fixed
// catalog for the given free text. Returns "" when the model declines or
// answers outside the catalog's ticker shape.
func (o *Oracle) ClassifySeries(ctx context.Context, freeText string) (string, error) {
	if !o.Enabled() {
		return "", nil
	}

	prompt := fmt.Sprintf(
		"You map event descriptions to prediction market series tickers.\n\n"+
			"Known series:\n%s\n\n"+
			"Event: %q\n\n"+
			"Reply with exactly one ticker from the list above, or NONE if nothing fits.",
		seriesCatalog, freeText)

	answer, err := o.complete(ctx, prompt)
	if err != nil {
		o.logger.WarnContext(ctx, "classify series failed", "error", err)
		return "", nil
	}

	if strings.Contains(strings.ToUpper(answer), "NONE") {
		return "", nil
	}
	return tickerPattern.FindString(strings.ToUpper(answer)), nil
}

// SuggestSeries asks for up to limit candidate series tickers, not limited
// to the fixed catalog. Malformed replies yield an empty slice.
func (o *Oracle) SuggestSeries(ctx context.Context, freeText string, limit int) ([]string, error) {
	if !o.Enabled() || limit <= 0 {
		return nil, nil
	}

	prompt := fmt.Sprintf(
		"Suggest up to %d prediction market series tickers (format KX...) that could "+
			"cover this event: %q\n\n"+
			"Reply with JSON only: {\"tickers\": [\"KX...\"]}",
		limit, freeText)

	answer, err := o.complete(ctx, prompt)
	if err != nil {
		o.logger.WarnContext(ctx, "suggest series failed", "error", err)
		return nil, nil
	}

	var parsed struct {
		Tickers []string `json:"tickers"`
	}
	if err := json.Unmarshal([]byte(extractJSON(answer)), &parsed); err != nil {
		o.logger.WarnContext(ctx, "suggest series returned non-JSON", "answer", answer)
		return nil, nil
	}

	out := make([]string, 0, limit)
	for _, t := range parsed.Tickers {
		ticker := tickerPattern.FindString(strings.ToUpper(strings.TrimSpace(t)))
		if ticker == "" {
			continue
		}
		out = append(out, ticker)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// SelectMarkets asks the model to pick the candidate tickers most relevant
// to the query. Tickers not present in candidates are dropped.
func (o *Oracle) SelectMarkets(ctx context.Context, query string, candidates []domain.Market, limit int) ([]string, error) {
	if !o.Enabled() || len(candidates) == 0 || limit <= 0 {
		return nil, nil
	}

	var sb strings.Builder
	for _, m := range candidates {
		fmt.Fprintf(&sb, "- %s: %s\n", m.Ticker, m.Title)
	}

	prompt := fmt.Sprintf(
		"Query: %q\n\nMarkets:\n%s\n"+
			"Pick up to %d tickers most relevant to the query.\n"+
			"Reply with JSON only: {\"tickers\": [\"...\"]}",
		query, sb.String(), limit)

	answer, err := o.complete(ctx, prompt)
	if err != nil {
		o.logger.WarnContext(ctx, "select markets failed", "error", err)
		return nil, nil
	}

	var parsed struct {
		Tickers []string `json:"tickers"`
	}
	if err := json.Unmarshal([]byte(extractJSON(answer)), &parsed); err != nil {
		return nil, nil
	}

	known := make(map[string]bool, len(candidates))
	for _, m := range candidates {
		known[m.Ticker] = true
	}

	out := make([]string, 0, limit)
	for _, t := range parsed.Tickers {
		t = strings.TrimSpace(t)
		if !known[t] {
			continue
		}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// CanonicalName expands an abbreviated entity label to its full name for
// image search. Returns "" when the model is unsure.
func (o *Oracle) CanonicalName(ctx context.Context, label, hint string) (string, error) {
	if !o.Enabled() {
		return "", nil
	}

	prompt := fmt.Sprintf(
		"Expand the abbreviation %q to its full canonical name", label)
	if hint != "" {
		prompt += fmt.Sprintf(" (context: %s)", hint)
	}
	prompt += ". Reply with the name only, or UNSURE."

	answer, err := o.complete(ctx, prompt)
	if err != nil {
		o.logger.WarnContext(ctx, "canonical name failed", "error", err)
		return "", nil
	}

	answer = strings.TrimSpace(strings.Trim(answer, `"`))
	if answer == "" || strings.EqualFold(answer, "UNSURE") || len(answer) > 80 {
		return "", nil
	}
	return answer, nil
}

func (o *Oracle) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// extractJSON trims code fences and surrounding prose so a JSON object
// embedded in a chatty reply still parses.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return s
	}
	return s[start : end+1]
}

var _ domain.Oracle = (*Oracle)(nil)
