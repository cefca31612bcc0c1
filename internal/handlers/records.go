package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jwebster45206/castle-clerk/pkg/records"
)

type RecordsHandler struct {
	log *slog.Logger
}

func NewRecordsHandler(log *slog.Logger) *RecordsHandler {
	return &RecordsHandler{log: log}
}

func (h *RecordsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/v1/records", h.list)
	r.Get("/v1/records/{id}", h.get)
}

func (h *RecordsHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, records.All())
}

func (h *RecordsHandler) get(w http.ResponseWriter, r *http.Request) {
	id := strings.ToUpper(chi.URLParam(r, "id"))
	rec, ok := records.Find(id)
	if !ok {
		writeError(w, h.log, http.StatusNotFound, "Record not found")
		return
	}
	writeJSON(w, h.log, http.StatusOK, rec)
}
