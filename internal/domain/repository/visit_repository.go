package repository

import "context"

// VisitRepository remembers which vendor storefronts have already been
// visited, deduplicating the upstream visit-tracking side effect.
type VisitRepository interface {
	// Seen reports whether the vendor has been visited before.
	Seen(ctx context.Context, vendorID int64) (bool, error)

	// MarkSeen records a visit. Marking an already-seen vendor is a no-op.
	MarkSeen(ctx context.Context, vendorID int64) error

	// All returns every visited vendor id.
	All(ctx context.Context) ([]int64, error)
}
