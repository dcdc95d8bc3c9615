package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/barhop/barhop/internal/service"
)

// LogoResolver defines what the logo handler requires from the service layer.
type LogoResolver interface {
	LogoURL(ctx context.Context, name, contextHint string) (string, error)
	Logos(ctx context.Context, queries []service.LogoQuery, defaultContext string) (map[string]string, error)
}

// LogoHandler serves entity logo lookups.
type LogoHandler struct {
	logos  LogoResolver
	logger *slog.Logger
}

// NewLogoHandler creates a LogoHandler with the given service and logger.
func NewLogoHandler(logos LogoResolver, logger *slog.Logger) *LogoHandler {
	return &LogoHandler{
		logos:  logos,
		logger: logger,
	}
}

// GetLogo resolves a single entity name to an image URL. A miss is a 200
// with a null logoUrl, not an error.
// GET /api/logo/{query}?context=
func (h *LogoHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	query := pathParam(r, "query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing logo query")
		return
	}

	url, err := h.logos.LogoURL(r.Context(), query, r.URL.Query().Get("context"))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: logo lookup failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to resolve logo")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"logoUrl": nullableString(url),
	})
}

// batchQuery accepts either a bare string or a {name, context} object, so
// callers can mix the two forms in one request.
type batchQuery struct {
	service.LogoQuery
}

func (q *batchQuery) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		q.Name = name
		return nil
	}
	return json.Unmarshal(data, &q.LogoQuery)
}

type batchLogosRequest struct {
	Queries []batchQuery `json:"queries"`
	Context string       `json:"context"`
}

// BatchLogos resolves several entity names concurrently. Names that miss
// every tier map to null.
// POST /api/logos
func (h *LogoHandler) BatchLogos(w http.ResponseWriter, r *http.Request) {
	var req batchLogosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Queries) == 0 {
		writeError(w, http.StatusBadRequest, "missing logo queries")
		return
	}

	queries := make([]service.LogoQuery, 0, len(req.Queries))
	for _, q := range req.Queries {
		if q.Name == "" {
			continue
		}
		queries = append(queries, q.LogoQuery)
	}

	urls, err := h.logos.Logos(r.Context(), queries, req.Context)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: batch logo lookup failed",
			slog.Int("queries", len(queries)),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to resolve logos")
		return
	}

	logos := make(map[string]any, len(urls))
	for name, url := range urls {
		logos[name] = nullableString(url)
	}

	writeJSON(w, http.StatusOK, map[string]any{"logos": logos})
}
