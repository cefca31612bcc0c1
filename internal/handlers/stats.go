package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jwebster45206/castle-clerk/internal/analytics"
)

const defaultRecentEvents = 20

// EventReader is implemented by sinks that can read back what they stored.
type EventReader interface {
	Totals(ctx context.Context) (map[string]int64, error)
	Recent(ctx context.Context, n int64) ([]analytics.Event, error)
}

type StatsResponse struct {
	Totals map[string]int64  `json:"totals"`
	Recent []analytics.Event `json:"recent"`
}

type StatsHandler struct {
	reader EventReader
	log    *slog.Logger
}

// NewStatsHandler serves analytics read back from reader. A nil reader
// makes the endpoint report 404.
func NewStatsHandler(reader EventReader, log *slog.Logger) *StatsHandler {
	return &StatsHandler{reader: reader, log: log}
}

func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/v1/stats", h.get)
}

func (h *StatsHandler) get(w http.ResponseWriter, r *http.Request) {
	if h.reader == nil {
		writeError(w, h.log, http.StatusNotFound, "Analytics storage is not configured")
		return
	}

	n := int64(defaultRecentEvents)
	if raw := r.URL.Query().Get("recent"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			writeError(w, h.log, http.StatusBadRequest, "recent must be a non-negative integer")
			return
		}
		n = min(v, analytics.MaxStoredEvents)
	}

	totals, err := h.reader.Totals(r.Context())
	if err != nil {
		h.log.Error("Failed to read analytics totals", "error", err)
		writeError(w, h.log, http.StatusInternalServerError, "Failed to read analytics")
		return
	}
	recent, err := h.reader.Recent(r.Context(), n)
	if err != nil {
		h.log.Error("Failed to read recent analytics", "error", err)
		writeError(w, h.log, http.StatusInternalServerError, "Failed to read analytics")
		return
	}

	writeJSON(w, h.log, http.StatusOK, StatsResponse{Totals: totals, Recent: recent})
}
