package impl

import (
	"context"
	"log/slog"
	"math"

	"shoplocal/config"
	deliverycontext "shoplocal/internal/delivery/context"
	"shoplocal/internal/domain/entity"
	"shoplocal/internal/domain/service"
	"shoplocal/internal/usecase"

	"go.uber.org/fx"
)

const defaultListingPageSize = 20

// listingService implements the ListingUsecase interface.
type listingService struct {
	listings service.ListingGateway
	pageSize int
	logger   *slog.Logger
}

// ListingServiceParams holds dependencies for listingService, injected by Fx.
type ListingServiceParams struct {
	fx.In

	ListingGateway service.ListingGateway
	Config         *config.Config
	Logger         *slog.Logger
}

// NewListingService is the constructor for listingService.
func NewListingService(params ListingServiceParams) usecase.ListingUsecase {
	pageSize := defaultListingPageSize
	if params.Config != nil && params.Config.Listings != nil && params.Config.Listings.PageSize > 0 {
		pageSize = params.Config.Listings.PageSize
	}

	return &listingService{
		listings: params.ListingGateway,
		pageSize: pageSize,
		logger:   params.Logger,
	}
}

func (srv *listingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetUserListings returns the caller's listings from the first directory
// page. The directory route has no author query parameter, so filtering
// happens here; authors with listings beyond one page see a truncated set.
func (srv *listingService) GetUserListings(ctx context.Context, userID int64) ([]entity.Listing, error) {
	page, err := srv.listings.Places(ctx, 1, srv.pageSize)
	if err != nil {
		return nil, err
	}

	mine := make([]entity.Listing, 0)
	for _, listing := range page {
		if listing.AuthorID == userID {
			mine = append(mine, listing)
		}
	}

	srv.log(ctx).Debug("Filtered user listings",
		slog.Int64("userID", userID),
		slog.Int("fetched", len(page)),
		slog.Int("matched", len(mine)),
	)

	return mine, nil
}

// GetUserListingStats derives counts and the average rating from the same
// single-page fetch that backs GetUserListings.
func (srv *listingService) GetUserListingStats(ctx context.Context, userID int64) (*entity.ListingStats, error) {
	mine, err := srv.GetUserListings(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &entity.ListingStats{Total: len(mine)}

	var ratingSum float64
	var rated int
	for _, listing := range mine {
		if listing.Claimed {
			stats.Claimed++
		}
		if listing.Published() {
			stats.Published++
		} else {
			stats.Pending++
		}
		if listing.Rating > 0 {
			ratingSum += listing.Rating
			rated++
		}
	}

	if rated > 0 {
		// One decimal is all the storefront dashboard displays.
		stats.AverageRating = math.Round(ratingSum/float64(rated)*10) / 10
	}

	return stats, nil
}
