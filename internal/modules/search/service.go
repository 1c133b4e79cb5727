package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	trendingTermLimit  = 5
	trendingOfferLimit = 10
)

// ErrMissingTerm means the query term was empty; no search is executed.
var ErrMissingTerm = errors.New("missing product term")

// Service defines search business logic.
type Service interface {
	Search(ctx context.Context, term string) ([]*Result, error)
	TrendingTerms(ctx context.Context) ([]*TrendingTerm, error)
	TrendingOffers(ctx context.Context) ([]*Candidate, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log, now: time.Now}
}

// Search runs the query term through normalization, candidate matching,
// price resolution and ranking. A listing matches when the normalized product
// name contains the normalized term, or trigram similarity exceeds the
// threshold. Substring matches score 1.0; the rest keep their trigram score.
func (s *service) Search(ctx context.Context, term string) ([]*Result, error) {
	if term == "" {
		return nil, ErrMissingTerm
	}

	// Tally the raw term (lower-cased only). Best-effort: a failed write
	// must not fail the search.
	if err := s.repo.RecordTerm(ctx, strings.ToLower(term)); err != nil {
		s.log.Warn("failed to record search term", zap.String("term", term), zap.Error(err))
	}

	candidates, err := s.repo.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	query := Normalize(term)
	results := make([]*Result, 0, len(candidates))
	for _, c := range candidates {
		name := Normalize(c.ProductName)
		score := Similarity(name, query)
		if containsMatch(name, query) {
			score = 1.0
		} else if !similarityMatch(name, query) {
			continue
		}
		results = append(results, &Result{
			Candidate:      *c,
			Similarity:     score,
			EffectivePrice: effectivePrice(c, now),
		})
	}

	rank(results)
	return results, nil
}

func (s *service) TrendingTerms(ctx context.Context) ([]*TrendingTerm, error) {
	return s.repo.TrendingTerms(ctx, trendingTermLimit)
}

func (s *service) TrendingOffers(ctx context.Context) ([]*Candidate, error) {
	return s.repo.ActiveOffers(ctx, trendingOfferLimit)
}
