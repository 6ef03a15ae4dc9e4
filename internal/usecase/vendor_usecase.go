package usecase

import (
	"context"

	"shoplocal/internal/domain/entity"
)

// NearbyInput defines the query for the vendors-nearby directory. Zero
// coordinates mean "no position"; the upstream default ordering is kept.
type NearbyInput struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// VisitOutput reports whether a visit was the first from this device.
type VisitOutput struct {
	FirstVisit bool `json:"first_visit"`
}

// VendorUsecase defines the interface for vendor-directory operations.
type VendorUsecase interface {
	// VendorsNearby returns vendors, distance-annotated and sorted when the
	// caller supplied a position.
	VendorsNearby(ctx context.Context, input NearbyInput) ([]entity.Vendor, error)

	// VendorBySlug returns one storefront with its products.
	VendorBySlug(ctx context.Context, slug string) (*entity.Vendor, error)

	// RecordVisit tracks a storefront visit, deduplicated per device. Only
	// the first visit reaches the upstream tracker and the event bus.
	RecordVisit(ctx context.Context, vendorID int64, vendorSlug string) (*VisitOutput, error)

	// StorefrontQR renders a shareable QR code PNG for the storefront.
	StorefrontQR(ctx context.Context, slug string) ([]byte, error)
}
