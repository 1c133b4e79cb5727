package catalog

import (
	"context"
	"time"
)

// Repository defines the interface for catalog data storage.
type Repository interface {
	// UpsertListing resolves the product by case-insensitive name (creating
	// it when absent), applies a last-writer-wins category update, and
	// inserts or replaces the store's listing — all in one transaction.
	UpsertListing(ctx context.Context, storeID int64, productName, category string,
		price float64, promoPrice *float64, promoExpiresAt *time.Time, imageURL string) error

	MerchantListings(ctx context.Context, storeID int64) ([]*MerchantListing, error)
}
