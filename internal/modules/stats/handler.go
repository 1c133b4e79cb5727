package stats

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes the public visit-tracking endpoint.
type Handler struct {
	repo Repository
	log  *zap.Logger
}

func NewHandler(repo Repository, log *zap.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/track_visit", h.trackVisit)
}

func (h *Handler) trackVisit(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.TrackVisit(r.Context()); err != nil {
		h.log.Error("track visit failed", zap.Error(err))
		respond(w, http.StatusInternalServerError, map[string]string{"error": "database error"})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
