// Package service defines the outbound-service contracts the usecases depend
// on. Implementations live under internal/infra.
package service

import (
	"context"

	"shoplocal/internal/domain/entity"
)

// RegisterInput carries the fields the upstream registration route accepts.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// AuthGateway is the upstream authentication surface: the custom login and
// registration routes plus the social-login exchange.
type AuthGateway interface {
	// Login exchanges credentials for the upstream user record. Known upstream
	// error codes are mapped to domain errors.
	Login(ctx context.Context, identifier, secret string) (*entity.User, error)

	// Register creates an account. It does not establish a session by itself.
	Register(ctx context.Context, input *RegisterInput) error

	// SocialLogin exchanges a provider authorization code for a user record.
	SocialLogin(ctx context.Context, provider, code string) (*entity.User, error)
}

// ListingGateway reads GeoDirectory place records.
type ListingGateway interface {
	// Places fetches one page of listings, already normalized.
	Places(ctx context.Context, page, perPage int) ([]entity.Listing, error)

	// Place fetches a single listing by id.
	Place(ctx context.Context, id int64) (*entity.Listing, error)
}

// VendorGateway reads the vendor directory and posts visit events.
type VendorGateway interface {
	VendorsNearby(ctx context.Context, lat, lng, radiusKm float64) ([]entity.Vendor, error)
	VendorBySlug(ctx context.Context, slug string) (*entity.Vendor, error)

	// RecordVisit posts the visit-tracking side effect. Best-effort; callers
	// dedupe locally before calling.
	RecordVisit(ctx context.Context, vendorID int64) error
}

// ProfileGateway updates the upstream user record using stored HTTP Basic
// credentials. Used only by the best-effort profile sync path.
type ProfileGateway interface {
	UpdateUser(ctx context.Context, userID int64, patch *entity.UserPatch, basicAuth string) error
}
