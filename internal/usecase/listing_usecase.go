package usecase

import (
	"context"

	"shoplocal/internal/domain/entity"
)

// ListingUsecase defines the interface for listing-related business
// operations over the marketplace directory.
type ListingUsecase interface {
	// GetUserListings returns the caller's listings, filtered by author from
	// one fetched page. Listings beyond the first page are not reported.
	GetUserListings(ctx context.Context, userID int64) ([]entity.Listing, error)

	// GetUserListingStats derives counts and the average rating from the same
	// single-page fetch.
	GetUserListingStats(ctx context.Context, userID int64) (*entity.ListingStats, error)
}
