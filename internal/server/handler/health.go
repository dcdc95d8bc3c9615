package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/barhop/barhop/internal/domain"
)

// EndpointProber checks upstream catalog endpoint reachability.
type EndpointProber interface {
	ProbeEndpoints(ctx context.Context, series string) []domain.EndpointStatus
}

// HealthHandler serves the health-check endpoint.
type HealthHandler struct {
	prober        EndpointProber
	oracleEnabled bool
	logger        *slog.Logger
}

// NewHealthHandler creates a HealthHandler with the provided prober and logger.
func NewHealthHandler(prober EndpointProber, oracleEnabled bool, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		prober:        prober,
		oracleEnabled: oracleEnabled,
		logger:        logger,
	}
}

// HealthCheck responds with component status. When a series is supplied it
// also probes every configured catalog endpoint with a minimal request.
// GET /api/health?series=KXNBAGAME
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"components": map[string]any{
			"oracle": h.oracleEnabled,
		},
	}

	if series := r.URL.Query().Get("series"); series != "" {
		endpoints := h.prober.ProbeEndpoints(r.Context(), series)
		resp["endpoints"] = endpoints
		for _, ep := range endpoints {
			if !ep.OK {
				resp["status"] = "degraded"
				break
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
