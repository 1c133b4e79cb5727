package database

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/precofacil/precofacil-backend/internal/config"
)

// Open connects to Postgres and verifies the connection.
func Open(cfg *config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate guarantees the schema. Statements are idempotent so the service can
// run them on every start against an existing database.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stores (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			logo_url TEXT,
			rating NUMERIC(2, 1) DEFAULT 5.0,
			is_blocked BOOLEAN DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS search_history (
			term TEXT PRIMARY KEY,
			count INTEGER DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS site_stats (
			stat_key VARCHAR(255) PRIMARY KEY,
			stat_value BIGINT DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS prices (
			store_id INTEGER REFERENCES stores(id) ON DELETE CASCADE,
			product_id INTEGER REFERENCES products(id) ON DELETE CASCADE,
			price NUMERIC NOT NULL,
			image_url TEXT,
			PRIMARY KEY (store_id, product_id)
		)`,
		`ALTER TABLE stores ADD COLUMN IF NOT EXISTS lat FLOAT DEFAULT 0.0`,
		`ALTER TABLE stores ADD COLUMN IF NOT EXISTS lon FLOAT DEFAULT 0.0`,
		`ALTER TABLE stores ADD COLUMN IF NOT EXISTS street TEXT`,
		`ALTER TABLE stores ADD COLUMN IF NOT EXISTS number TEXT`,
		`ALTER TABLE stores ADD COLUMN IF NOT EXISTS neighborhood TEXT`,
		`ALTER TABLE stores ADD COLUMN IF NOT EXISTS phone TEXT`,
		`ALTER TABLE products ADD COLUMN IF NOT EXISTS category TEXT`,
		`ALTER TABLE prices ADD COLUMN IF NOT EXISTS promo_price NUMERIC`,
		`ALTER TABLE prices ADD COLUMN IF NOT EXISTS promo_expires_at TIMESTAMP`,
		// Concurrent first publishes of the same product name must collide at
		// the storage layer, regardless of letter case.
		`CREATE UNIQUE INDEX IF NOT EXISTS products_name_lower_idx ON products (lower(name))`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
