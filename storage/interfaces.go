package storage

import (
	"context"

	"listing-monitor/models"
)

// SnapshotStore keeps the current listing snapshot keyed by URL.
type SnapshotStore interface {
	// ListAll returns every stored listing, most recently seen first.
	ListAll(ctx context.Context) ([]models.PersistedListing, error)
	// Clear removes every stored listing.
	Clear(ctx context.Context) error
	// Upsert inserts the listing or updates its price, refreshing its
	// last-seen time. Each call is atomic on its own.
	Upsert(ctx context.Context, url, price string) error
	Close() error
}

// CandidateWriter records the raw candidates of a scrape cycle.
type CandidateWriter interface {
	WriteCandidates(listings []models.CandidateListing) error
	Close() error
}
