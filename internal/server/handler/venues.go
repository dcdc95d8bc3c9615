package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/barhop/barhop/internal/domain"
)

// VenueHandler serves the venue listing endpoints.
type VenueHandler struct {
	venues domain.VenueStore
	logger *slog.Logger
}

// NewVenueHandler creates a VenueHandler with the given store and logger.
func NewVenueHandler(venues domain.VenueStore, logger *slog.Logger) *VenueHandler {
	return &VenueHandler{
		venues: venues,
		logger: logger,
	}
}

// ListVenues returns all venues sorted by name.
// GET /api/venues
func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venues.ListVenues(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list venues failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list venues")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"venues": venues,
		"count":  len(venues),
	})
}

// GetVenue returns a single venue by its ID.
// GET /api/venues/{id}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing venue id")
		return
	}

	venue, err := h.venues.GetVenue(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "venue not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "handler: get venue failed",
			slog.String("venue_id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to get venue")
		return
	}

	writeJSON(w, http.StatusOK, venue)
}
