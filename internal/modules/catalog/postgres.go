package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) UpsertListing(ctx context.Context, storeID int64,
	productName, category string, price float64, promoPrice *float64,
	promoExpiresAt *time.Time, imageURL string) error {

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	productID, err := findOrCreateProduct(ctx, tx, productName, category)
	if err != nil {
		return err
	}

	// COALESCE keeps the previous image when no new one was uploaded; the
	// promo fields are always overwritten so a publish without a promotion
	// clears the old one.
	var image interface{}
	if imageURL != "" {
		image = imageURL
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO prices (store_id, product_id, price, image_url, promo_price, promo_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (store_id, product_id)
		DO UPDATE SET price = $3, image_url = COALESCE($4, prices.image_url),
		              promo_price = $5, promo_expires_at = $6`,
		storeID, productID, price, image, promoPrice, promoExpiresAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// findOrCreateProduct resolves the product id by case-insensitive name. The
// insert uses ON CONFLICT DO NOTHING against the lower(name) unique index so
// a concurrent first publish of the same name cannot abort the transaction;
// the loser of that race simply re-reads the winner's row.
func findOrCreateProduct(ctx context.Context, tx *sql.Tx, name, category string) (int64, error) {
	var productID int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM products WHERE lower(name) = lower($1)`, name).Scan(&productID)

	if errors.Is(err, sql.ErrNoRows) {
		var cat interface{}
		if category != "" {
			cat = category
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO products (name, category) VALUES ($1, $2)
			ON CONFLICT ((lower(name))) DO NOTHING
			RETURNING id`, name, cat).Scan(&productID)
		if errors.Is(err, sql.ErrNoRows) {
			err = tx.QueryRowContext(ctx,
				`SELECT id FROM products WHERE lower(name) = lower($1)`, name).Scan(&productID)
		}
		return productID, err
	}
	if err != nil {
		return 0, err
	}

	if category != "" {
		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET category = $1 WHERE id = $2`, category, productID); err != nil {
			return 0, err
		}
	}
	return productID, nil
}

func (r *postgresRepository) MerchantListings(ctx context.Context, storeID int64) ([]*MerchantListing, error) {
	query := `
		SELECT p.name, p.category, pr.price, pr.promo_price, pr.promo_expires_at, pr.image_url, s.name AS store_name
		FROM prices pr
		JOIN products p ON p.id = pr.product_id
		JOIN stores s ON s.id = pr.store_id
		WHERE pr.store_id = $1
		ORDER BY p.name
	`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*MerchantListing
	for rows.Next() {
		l := &MerchantListing{}
		var category, image sql.NullString
		var promoPrice sql.NullFloat64
		var promoExpires sql.NullTime
		err := rows.Scan(&l.Name, &category, &l.Price, &promoPrice, &promoExpires, &image, &l.StoreName)
		if err != nil {
			return nil, err
		}
		l.Category = category.String
		l.ImageURL = image.String
		if promoPrice.Valid {
			l.PromoPrice = &promoPrice.Float64
		}
		if promoExpires.Valid {
			l.PromoExpiresAt = &promoExpires.Time
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
