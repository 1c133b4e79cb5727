package stats

import "context"

// Repository defines the interface for site statistics storage.
type Repository interface {
	// TrackVisit increments the visit counter in a single upsert statement,
	// so concurrent page loads cannot lose increments.
	TrackVisit(ctx context.Context) error

	Counts(ctx context.Context) (*Counts, error)
}
