package search

import "time"

// Candidate is one visible listing joined with its product and store, the
// unit the matcher filters and the ranker orders. Blocked stores never make
// it this far; the repository filters them out.
type Candidate struct {
	StoreID        int64      `json:"store_id"`
	StoreName      string     `json:"store_name"`
	Rating         float64    `json:"rating"`
	ProductName    string     `json:"product_name"`
	Category       string     `json:"category,omitempty"`
	Price          float64    `json:"price"`
	PromoPrice     *float64   `json:"promo_price,omitempty"`
	PromoExpiresAt *time.Time `json:"promo_expires_at,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	LogoURL        string     `json:"logo_url,omitempty"`
	Street         string     `json:"street,omitempty"`
	Number         string     `json:"number,omitempty"`
	Neighborhood   string     `json:"neighborhood,omitempty"`
	Phone          string     `json:"phone,omitempty"`
}

// Result is a matched candidate with its match quality and the price that
// actually applies at evaluation time.
type Result struct {
	Candidate
	Similarity     float64 `json:"sim"`
	EffectivePrice float64 `json:"effective_price"`
}

// TrendingTerm is one entry of the most-searched-terms view.
type TrendingTerm struct {
	Term string `json:"term"`
}
