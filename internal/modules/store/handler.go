package store

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/precofacil/precofacil-backend/internal/upload"
)

// Handler exposes store HTTP endpoints.
type Handler struct {
	service Service
	uploads *upload.Saver
	log     *zap.Logger
}

func NewHandler(service Service, uploads *upload.Saver, log *zap.Logger) *Handler {
	return &Handler{service: service, uploads: uploads, log: log}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/login", h.login)
	r.Get("/api/store/{id}", h.getStore)
	r.Get("/api/stores", h.listStores)
	r.Post("/api/merchant/logo", h.uploadLogo)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       int64  `json:"id"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.service.Login(r.Context(), req.ID, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, ErrBlocked):
		respondError(w, http.StatusForbidden, "access denied: this account is blocked")
	case err != nil:
		h.log.Error("login failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "database error")
	default:
		respond(w, http.StatusOK, profile)
	}
}

func (h *Handler) getStore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid store id")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		respondError(w, http.StatusNotFound, "store not found")
	case err != nil:
		h.log.Error("get store failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "database error")
	default:
		respond(w, http.StatusOK, profile)
	}
}

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.ListStores(r.Context())
	if err != nil {
		h.log.Error("list stores failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	if stores == nil {
		stores = []*Summary{}
	}
	respond(w, http.StatusOK, stores)
}

func (h *Handler) uploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := upload.ParseForm(r); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	id, err := strconv.ParseInt(r.FormValue("store_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing store_id")
		return
	}

	logoURL, err := h.uploads.SaveImage(r, "logo")
	if err != nil {
		h.log.Error("logo upload failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "upload failed")
		return
	}
	if logoURL == "" {
		respondError(w, http.StatusBadRequest, "missing logo file")
		return
	}

	if err := h.service.UpdateLogo(r.Context(), id, logoURL); err != nil {
		h.log.Error("logo update failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"success": true, "logo_url": logoURL})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}
