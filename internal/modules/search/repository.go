package search

import "context"

// Repository defines the interface for search data storage.
type Repository interface {
	// Candidates returns every listing of an unblocked store, joined with
	// product and store data. The blocked flag is re-read on every call so
	// blocking a store takes effect on the next query.
	Candidates(ctx context.Context) ([]*Candidate, error)

	// RecordTerm increments the tally for a search term, creating it at 1.
	// The increment is a single conditional-upsert statement so concurrent
	// searches cannot lose updates.
	RecordTerm(ctx context.Context, term string) error

	TrendingTerms(ctx context.Context, limit int) ([]*TrendingTerm, error)

	// ActiveOffers returns listings with a currently active promotion from
	// unblocked stores, in storage order.
	ActiveOffers(ctx context.Context, limit int) ([]*Candidate, error)
}
