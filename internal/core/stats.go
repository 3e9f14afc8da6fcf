package core

import "context"

// StatsProvider is what commands see of the data layer: a refreshable,
// queryable snapshot of case statistics.
type StatsProvider interface {
	// EnsureFresh refreshes the snapshot if the refresh window has passed.
	// A failure leaves stale data in place; callers warn rather than abort.
	EnsureFresh(ctx context.Context) error
	// Lookup runs the match chain for a free-text location query.
	Lookup(ctx context.Context, query string) []Match
}
