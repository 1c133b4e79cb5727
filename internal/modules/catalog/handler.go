package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/precofacil/precofacil-backend/internal/upload"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service Service
	uploads *upload.Saver
	log     *zap.Logger
}

func NewHandler(service Service, uploads *upload.Saver, log *zap.Logger) *Handler {
	return &Handler{service: service, uploads: uploads, log: log}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/merchant/products", func(r chi.Router) {
		r.Get("/", h.merchantListings)
		r.Post("/", h.publish)
	})
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request) {
	if err := upload.ParseForm(r); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	req := PublishRequest{
		ProductName: r.FormValue("product_name"),
		Category:    r.FormValue("category"),
	}
	req.StoreID, _ = strconv.ParseInt(r.FormValue("store_id"), 10, 64)
	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid price")
			return
		}
		req.Price = price
		req.HasPrice = true
	}
	if v := r.FormValue("promo_price"); v != "" {
		promo, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid promo_price")
			return
		}
		req.PromoPrice = &promo
	}

	imageURL, err := h.uploads.SaveImage(r, "image")
	if err != nil {
		h.log.Error("image upload failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "upload failed")
		return
	}
	req.ImageURL = imageURL

	err = h.service.Publish(r.Context(), req)
	switch {
	case errors.Is(err, ErrMissingFields):
		respondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.log.Error("publish failed", zap.Error(err), zap.Int64("store_id", req.StoreID))
		respondError(w, http.StatusInternalServerError, "database error")
	default:
		respond(w, http.StatusOK, map[string]interface{}{"success": true, "message": "product updated"})
	}
}

func (h *Handler) merchantListings(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(r.URL.Query().Get("store_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing store_id")
		return
	}

	listings, err := h.service.MerchantListings(r.Context(), storeID)
	if err != nil {
		h.log.Error("merchant listings failed", zap.Error(err), zap.Int64("store_id", storeID))
		respondError(w, http.StatusInternalServerError, "database error")
		return
	}
	if listings == nil {
		listings = []*MerchantListing{}
	}
	respond(w, http.StatusOK, listings)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}
