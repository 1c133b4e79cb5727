package search

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes search HTTP endpoints.
type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/search", h.search)
	r.Get("/api/search/trending", h.trendingTerms)
	r.Get("/api/offers/trending", h.trendingOffers)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("product")

	results, err := h.service.Search(r.Context(), term)
	switch {
	case errors.Is(err, ErrMissingTerm):
		respondError(w, http.StatusBadRequest, "missing product")
	case err != nil:
		h.log.Error("search failed", zap.String("term", term), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "database error")
	default:
		respond(w, http.StatusOK, results)
	}
}

func (h *Handler) trendingTerms(w http.ResponseWriter, r *http.Request) {
	terms, err := h.service.TrendingTerms(r.Context())
	if err != nil {
		h.log.Error("trending terms failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	if terms == nil {
		terms = []*TrendingTerm{}
	}
	respond(w, http.StatusOK, terms)
}

func (h *Handler) trendingOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.TrendingOffers(r.Context())
	if err != nil {
		h.log.Error("trending offers failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	if offers == nil {
		offers = []*Candidate{}
	}
	respond(w, http.StatusOK, offers)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}
