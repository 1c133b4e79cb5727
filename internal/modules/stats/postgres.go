package stats

import (
	"context"
	"database/sql"
	"errors"
)

const visitKey = "total_visits"

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL stats repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) TrackVisit(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO site_stats (stat_key, stat_value)
		VALUES ($1, 1)
		ON CONFLICT (stat_key)
		DO UPDATE SET stat_value = site_stats.stat_value + 1`,
		visitKey)
	return err
}

func (r *postgresRepository) Counts(ctx context.Context) (*Counts, error) {
	c := &Counts{}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stores`).Scan(&c.Stores); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&c.Products); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prices`).Scan(&c.Prices); err != nil {
		return nil, err
	}

	err := r.db.QueryRowContext(ctx,
		`SELECT stat_value FROM site_stats WHERE stat_key = $1`, visitKey).Scan(&c.Visits)
	if errors.Is(err, sql.ErrNoRows) {
		// No visit has been tracked yet.
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
