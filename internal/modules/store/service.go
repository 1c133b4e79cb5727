package store

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotFound means the referenced store does not exist.
	ErrNotFound = errors.New("store not found")
	// ErrInvalidCredentials means the id/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrBlocked means the store authenticated but is blocked.
	ErrBlocked = errors.New("store is blocked")
)

// Service defines store business logic.
type Service interface {
	Login(ctx context.Context, id int64, password string) (*Profile, error)
	GetProfile(ctx context.Context, id int64) (*Profile, error)
	ListStores(ctx context.Context) ([]*Summary, error)
	UpdateLogo(ctx context.Context, id int64, logoURL string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Login verifies the store credential. The stored value is a bcrypt hash and
// the comparison is constant-time.
func (s *service) Login(ctx context.Context, id int64, password string) (*Profile, error) {
	st, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if st.IsBlocked {
		return nil, ErrBlocked
	}
	return profileOf(st), nil
}

func (s *service) GetProfile(ctx context.Context, id int64) (*Profile, error) {
	st, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return profileOf(st), nil
}

func (s *service) ListStores(ctx context.Context) ([]*Summary, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateLogo(ctx context.Context, id int64, logoURL string) error {
	return s.repo.UpdateLogo(ctx, id, logoURL)
}

func profileOf(st *Store) *Profile {
	return &Profile{
		ID:           st.ID,
		Name:         st.Name,
		LogoURL:      st.LogoURL,
		Street:       st.Street,
		Number:       st.Number,
		Neighborhood: st.Neighborhood,
		Phone:        st.Phone,
	}
}
