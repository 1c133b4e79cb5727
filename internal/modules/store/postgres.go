package store

import (
	"context"
	"database/sql"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL store repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, s *Store) error {
	query := `
		INSERT INTO stores (name, password, rating, lat, lon, street, number, neighborhood, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		s.Name, s.PasswordHash, s.Rating, s.Lat, s.Lon,
		s.Street, s.Number, s.Neighborhood, s.Phone,
	).Scan(&s.ID)
}

func scanStore(scan func(...interface{}) error) (*Store, error) {
	s := &Store{}
	var logo, street, number, neighborhood, phone sql.NullString
	err := scan(&s.ID, &s.Name, &s.PasswordHash, &logo, &s.Rating, &s.IsBlocked,
		&s.Lat, &s.Lon, &street, &number, &neighborhood, &phone)
	if err != nil {
		return nil, err
	}
	s.LogoURL = logo.String
	s.Street = street.String
	s.Number = number.String
	s.Neighborhood = neighborhood.String
	s.Phone = phone.String
	return s, nil
}

const storeColumns = `id, name, password, logo_url, rating, is_blocked, lat, lon, street, number, neighborhood, phone`

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Store, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
	return scanStore(row.Scan)
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*Store, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE name = $1`, name)
	return scanStore(row.Scan)
}

func (r *postgresRepository) List(ctx context.Context) ([]*Summary, error) {
	query := `
		SELECT s.id, s.name, s.logo_url, s.is_blocked,
		EXISTS (
			SELECT 1 FROM prices p
			WHERE p.store_id = s.id
			AND p.promo_price IS NOT NULL
			AND p.promo_expires_at > NOW()
		) AS has_promo
		FROM stores s
		ORDER BY s.name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*Summary
	for rows.Next() {
		sm := &Summary{}
		var logo sql.NullString
		if err := rows.Scan(&sm.ID, &sm.Name, &logo, &sm.IsBlocked, &sm.HasPromo); err != nil {
			return nil, err
		}
		sm.LogoURL = logo.String
		summaries = append(summaries, sm)
	}
	return summaries, rows.Err()
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]*Store, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+storeColumns+` FROM stores ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []*Store
	for rows.Next() {
		s, err := scanStore(rows.Scan)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, s *Store) error {
	query := `
		UPDATE stores
		SET name = $1, password = $2, street = $3, number = $4, neighborhood = $5, phone = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		s.Name, s.PasswordHash, s.Street, s.Number, s.Neighborhood, s.Phone, s.ID)
	return err
}

func (r *postgresRepository) UpdateLogo(ctx context.Context, id int64, logoURL string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE stores SET logo_url = $1 WHERE id = $2`, logoURL, id)
	return err
}

func (r *postgresRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE stores SET is_blocked = $1 WHERE id = $2`, blocked, id)
	return err
}

// Delete removes the store's listings before the store row itself, inside one
// transaction, so a crash cannot leave dangling prices.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM prices WHERE store_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}
