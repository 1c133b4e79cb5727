package catalog

import "time"

// Product is a canonical catalog entry shared across stores. It is created
// lazily the first time any store publishes a price under its name.
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Listing is one store's price entry for one product. A store holds at most
// one listing per product; republishing overwrites it.
type Listing struct {
	StoreID        int64      `json:"store_id"`
	ProductID      int64      `json:"product_id"`
	Price          float64    `json:"price"`
	PromoPrice     *float64   `json:"promo_price,omitempty"`
	PromoExpiresAt *time.Time `json:"promo_expires_at,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
}

// MerchantListing is one row of a store's own catalog view.
type MerchantListing struct {
	Name           string     `json:"name"`
	Category       string     `json:"category,omitempty"`
	Price          float64    `json:"price"`
	PromoPrice     *float64   `json:"promo_price,omitempty"`
	PromoExpiresAt *time.Time `json:"promo_expires_at,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	StoreName      string     `json:"store_name"`
}
