package catalog

import (
	"context"
	"errors"
	"time"
)

// promoWindow is how long a promotion runs from the moment it is published.
const promoWindow = 24 * time.Hour

// ErrMissingFields means a required publish field was absent.
var ErrMissingFields = errors.New("store_id, product_name and price are required")

// PublishRequest holds the data a store submits when publishing a price.
type PublishRequest struct {
	StoreID     int64
	ProductName string
	Price       float64
	HasPrice    bool
	Category    string
	PromoPrice  *float64
	ImageURL    string
}

// Service defines catalog business logic.
type Service interface {
	Publish(ctx context.Context, req PublishRequest) error
	MerchantListings(ctx context.Context, storeID int64) ([]*MerchantListing, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Publish creates or replaces the store's listing for the named product. A
// supplied promo price starts a promotion expiring exactly 24 hours from now;
// publishing without one clears any previous promotion.
func (s *service) Publish(ctx context.Context, req PublishRequest) error {
	if req.StoreID == 0 || req.ProductName == "" || !req.HasPrice {
		return ErrMissingFields
	}

	var promoExpiresAt *time.Time
	if req.PromoPrice != nil {
		t := s.now().Add(promoWindow)
		promoExpiresAt = &t
	}

	return s.repo.UpsertListing(ctx, req.StoreID, req.ProductName, req.Category,
		req.Price, req.PromoPrice, promoExpiresAt, req.ImageURL)
}

func (s *service) MerchantListings(ctx context.Context, storeID int64) ([]*MerchantListing, error) {
	return s.repo.MerchantListings(ctx, storeID)
}
