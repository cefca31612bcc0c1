package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/castle-clerk/internal/analytics"
	"github.com/jwebster45206/castle-clerk/internal/storage"
)

const (
	componentHealthy   = "healthy"
	componentUnhealthy = "unhealthy"
	componentDisabled  = "disabled"
)

type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Service    string                 `json:"service"`
	Components map[string]interface{} `json:"components"`
}

// SessionHealth reports the live session table.
type SessionHealth struct {
	Active    int    `json:"active"`
	Snapshots string `json:"snapshots"`
}

// HealthHandler reports the analytics sink, the live sessions and, when
// Redis is configured, the snapshot mirror.
type HealthHandler struct {
	sink      analytics.Sink
	store     storage.Store
	snapshots storage.Snapshots // optional
	logger    *slog.Logger
}

func NewHealthHandler(sink analytics.Sink, store storage.Store, snapshots storage.Snapshots, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		sink:      sink,
		store:     store,
		snapshots: snapshots,
		logger:    logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	h.logger.Debug("Health check requested",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	overallStatus := "healthy"

	analyticsStatus := componentHealthy
	if err := h.sink.Ping(ctx); err != nil {
		h.logger.Warn("Analytics health check failed", "error", err)
		analyticsStatus = componentUnhealthy
		overallStatus = "degraded"
	}

	snapshotStatus := componentDisabled
	if h.snapshots != nil {
		snapshotStatus = componentHealthy
		if err := h.snapshots.Ping(ctx); err != nil {
			h.logger.Warn("Snapshot store health check failed", "error", err)
			snapshotStatus = componentUnhealthy
			overallStatus = "degraded"
		}
	}

	response := HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Service:   "castle-clerk",
		Components: map[string]interface{}{
			"analytics": analyticsStatus,
			"sessions": SessionHealth{
				Active:    h.store.Len(),
				Snapshots: snapshotStatus,
			},
		},
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding health response",
			"error", err,
			"path", r.URL.Path)
	}
}
