package store

import "context"

// Repository defines the interface for store data storage.
type Repository interface {
	Create(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, id int64) (*Store, error)
	GetByName(ctx context.Context, name string) (*Store, error)
	List(ctx context.Context) ([]*Summary, error)
	ListAll(ctx context.Context) ([]*Store, error)
	Update(ctx context.Context, s *Store) error
	UpdateLogo(ctx context.Context, id int64, logoURL string) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	Delete(ctx context.Context, id int64) error
}
