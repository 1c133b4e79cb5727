package search

import (
	"context"
	"database/sql"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL search repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const candidateColumns = `
	s.id AS store_id, s.name AS store_name, s.rating, p.name AS product_name, p.category,
	pr.price, pr.promo_price, pr.promo_expires_at, pr.image_url,
	s.logo_url, s.street, s.number, s.neighborhood, s.phone
`

func (r *postgresRepository) Candidates(ctx context.Context) ([]*Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM prices pr
		JOIN products p ON p.id = pr.product_id
		JOIN stores s ON s.id = pr.store_id
		WHERE s.is_blocked IS NULL OR s.is_blocked = FALSE
	`
	return r.queryCandidates(ctx, query)
}

func (r *postgresRepository) ActiveOffers(ctx context.Context, limit int) ([]*Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM prices pr
		JOIN products p ON p.id = pr.product_id
		JOIN stores s ON s.id = pr.store_id
		WHERE pr.promo_price IS NOT NULL
		  AND pr.promo_expires_at > NOW()
		  AND (s.is_blocked IS NULL OR s.is_blocked = FALSE)
		LIMIT $1
	`
	return r.queryCandidates(ctx, query, limit)
}

func (r *postgresRepository) queryCandidates(ctx context.Context, query string, args ...interface{}) ([]*Candidate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []*Candidate
	for rows.Next() {
		c, err := scanCandidate(rows.Scan)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func scanCandidate(scan func(...interface{}) error) (*Candidate, error) {
	c := &Candidate{}
	var category, image, logo, street, number, neighborhood, phone sql.NullString
	var promoPrice sql.NullFloat64
	var promoExpires sql.NullTime
	err := scan(&c.StoreID, &c.StoreName, &c.Rating, &c.ProductName, &category,
		&c.Price, &promoPrice, &promoExpires, &image,
		&logo, &street, &number, &neighborhood, &phone)
	if err != nil {
		return nil, err
	}
	c.Category = category.String
	c.ImageURL = image.String
	c.LogoURL = logo.String
	c.Street = street.String
	c.Number = number.String
	c.Neighborhood = neighborhood.String
	c.Phone = phone.String
	if promoPrice.Valid {
		c.PromoPrice = &promoPrice.Float64
	}
	if promoExpires.Valid {
		c.PromoExpiresAt = &promoExpires.Time
	}
	return c, nil
}

func (r *postgresRepository) RecordTerm(ctx context.Context, term string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO search_history (term, count)
		VALUES ($1, 1)
		ON CONFLICT (term) DO UPDATE SET count = search_history.count + 1`,
		term)
	return err
}

func (r *postgresRepository) TrendingTerms(ctx context.Context, limit int) ([]*TrendingTerm, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT term FROM search_history ORDER BY count DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []*TrendingTerm
	for rows.Next() {
		t := &TrendingTerm{}
		if err := rows.Scan(&t.Term); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}
