package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/precofacil/precofacil-backend/internal/modules/store"
)

// Handler exposes administrative HTTP endpoints.
type Handler struct {
	service   Service
	tokens    *TokenManager
	secretKey string
	log       *zap.Logger
}

func NewHandler(service Service, tokens *TokenManager, secretKey string, log *zap.Logger) *Handler {
	return &Handler{service: service, tokens: tokens, secretKey: secretKey, log: log}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/admin", func(r chi.Router) {
		// The login exchange authenticates with the key in the body, so it
		// stays outside the guard.
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(h.secretKey, h.tokens, h.log))
			r.Get("/stats", h.stats)
			r.Get("/stores", h.listStores)
			r.Post("/stores", h.createStore)
			r.Put("/stores/{id}", h.updateStore)
			r.Delete("/stores/{id}", h.deleteStore)
			r.Patch("/stores/{id}/block", h.blockStore)
		})
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.Login(req.Key)
	switch {
	case errors.Is(err, ErrInvalidKey):
		respondError(w, http.StatusForbidden, "invalid key")
	case err != nil:
		h.log.Error("admin login failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "token signing failed")
	default:
		respond(w, http.StatusOK, map[string]interface{}{"success": true, "token": token})
	}
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Stats(r.Context())
	if err != nil {
		h.log.Error("admin stats failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	respond(w, http.StatusOK, counts)
}

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.ListStores(r.Context())
	if err != nil {
		h.log.Error("admin list stores failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	if stores == nil {
		stores = []*store.Store{}
	}
	respond(w, http.StatusOK, stores)
}

func (h *Handler) createStore(w http.ResponseWriter, r *http.Request) {
	var req StoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := h.service.CreateStore(r.Context(), req)
	switch {
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrDuplicateName):
		respondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.log.Error("create store failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "database error")
	default:
		respond(w, http.StatusOK, st)
	}
}

func (h *Handler) updateStore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	var req StoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.service.UpdateStore(r.Context(), id, req)
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "store not found")
	case err != nil:
		h.log.Error("update store failed", zap.Error(err), zap.Int64("store_id", id))
		respondError(w, http.StatusInternalServerError, "database error")
	default:
		respond(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func (h *Handler) deleteStore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	if err := h.service.DeleteStore(r.Context(), id); err != nil {
		h.log.Error("delete store failed", zap.Error(err), zap.Int64("store_id", id))
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) blockStore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	var req struct {
		IsBlocked bool `json:"is_blocked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetBlocked(r.Context(), id, req.IsBlocked); err != nil {
		h.log.Error("block store failed", zap.Error(err), zap.Int64("store_id", id))
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}
