package store

// Store is a merchant with its own catalog of listings. User-facing text
// calls it a "loja".
type Store struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	PasswordHash string  `json:"-"`
	LogoURL      string  `json:"logo_url,omitempty"`
	Rating       float64 `json:"rating"`
	IsBlocked    bool    `json:"is_blocked"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Street       string  `json:"street,omitempty"`
	Number       string  `json:"number,omitempty"`
	Neighborhood string  `json:"neighborhood,omitempty"`
	Phone        string  `json:"phone,omitempty"`
}

// Profile is the public subset of a store exposed to shoppers.
type Profile struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	LogoURL      string `json:"logo_url,omitempty"`
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// Summary is one row of the public store directory. HasPromo flags stores
// with at least one active promotion.
type Summary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	LogoURL   string `json:"logo_url,omitempty"`
	IsBlocked bool   `json:"is_blocked"`
	HasPromo  bool   `json:"has_promo"`
}
