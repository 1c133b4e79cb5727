package admin

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/precofacil/precofacil-backend/internal/modules/stats"
	"github.com/precofacil/precofacil-backend/internal/modules/store"
)

var (
	// ErrInvalidKey means the supplied admin key did not match.
	ErrInvalidKey = errors.New("invalid admin key")
	// ErrMissingFields means name or password was absent on store creation.
	ErrMissingFields = errors.New("name and password are required")
	// ErrDuplicateName means a store with that name already exists.
	ErrDuplicateName = errors.New("a store with this name already exists")
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// StoreRequest holds the fields of an admin store create/update.
type StoreRequest struct {
	Name         string `json:"name"`
	Password     string `json:"password"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	Phone        string `json:"phone"`
}

// Service defines administrative business logic.
type Service interface {
	Login(key string) (string, error)
	Stats(ctx context.Context) (*stats.Counts, error)
	ListStores(ctx context.Context) ([]*store.Store, error)
	CreateStore(ctx context.Context, req StoreRequest) (*store.Store, error)
	UpdateStore(ctx context.Context, id int64, req StoreRequest) error
	DeleteStore(ctx context.Context, id int64) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
}

type service struct {
	stores    store.Repository
	stats     stats.Repository
	tokens    *TokenManager
	secretKey string
	now       func() time.Time
}

func NewService(stores store.Repository, statsRepo stats.Repository,
	tokens *TokenManager, secretKey string) Service {
	return &service{
		stores:    stores,
		stats:     statsRepo,
		tokens:    tokens,
		secretKey: secretKey,
		now:       time.Now,
	}
}

// Login exchanges the shared secret for a short-lived signed token.
func (s *service) Login(key string) (string, error) {
	if key == "" || s.secretKey == "" ||
		subtle.ConstantTimeCompare([]byte(key), []byte(s.secretKey)) != 1 {
		return "", ErrInvalidKey
	}
	return s.tokens.Issue(s.now())
}

func (s *service) Stats(ctx context.Context) (*stats.Counts, error) {
	return s.stats.Counts(ctx)
}

func (s *service) ListStores(ctx context.Context) ([]*store.Store, error) {
	return s.stores.ListAll(ctx)
}

func (s *service) CreateStore(ctx context.Context, req StoreRequest) (*store.Store, error) {
	if req.Name == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	_, err := s.stores.GetByName(ctx, req.Name)
	if err == nil {
		return nil, ErrDuplicateName
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	st := &store.Store{
		Name:         req.Name,
		PasswordHash: string(hash),
		Rating:       5.0,
		Street:       req.Street,
		Number:       req.Number,
		Neighborhood: req.Neighborhood,
		Phone:        req.Phone,
	}
	if err := s.stores.Create(ctx, st); err != nil {
		// Backstop for two concurrent creates of the same name.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return st, nil
}

// UpdateStore overwrites the profile fields. The credential is re-hashed
// only when a new one is supplied.
func (s *service) UpdateStore(ctx context.Context, id int64, req StoreRequest) error {
	st, err := s.stores.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}

	st.Name = req.Name
	st.Street = req.Street
	st.Number = req.Number
	st.Neighborhood = req.Neighborhood
	st.Phone = req.Phone
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		st.PasswordHash = string(hash)
	}
	return s.stores.Update(ctx, st)
}

func (s *service) DeleteStore(ctx context.Context, id int64) error {
	return s.stores.Delete(ctx, id)
}

func (s *service) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	return s.stores.SetBlocked(ctx, id, blocked)
}
