package impl

import (
	"context"
	"log/slog"
	"sort"
	"time"

	deliverycontext "shoplocal/internal/delivery/context"
	"shoplocal/internal/domain/entity"
	domainerrors "shoplocal/internal/domain/errors"
	"shoplocal/internal/domain/repository"
	"shoplocal/internal/domain/service"
	"shoplocal/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"go.uber.org/fx"
)

// vendorService implements the VendorUsecase interface.
type vendorService struct {
	vendors   service.VendorGateway
	visits    repository.VisitRepository
	publisher service.EventPublisher
	qrcodes   service.QRCodeService
	logger    *slog.Logger
}

// VendorServiceParams holds dependencies for vendorService, injected by Fx.
type VendorServiceParams struct {
	fx.In

	VendorGateway  service.VendorGateway
	VisitRepo      repository.VisitRepository
	EventPublisher service.EventPublisher
	QRCodeService  service.QRCodeService
	Logger         *slog.Logger
}

// NewVendorService is the constructor for vendorService.
func NewVendorService(params VendorServiceParams) usecase.VendorUsecase {
	return &vendorService{
		vendors:   params.VendorGateway,
		visits:    params.VisitRepo,
		publisher: params.EventPublisher,
		qrcodes:   params.QRCodeService,
		logger:    params.Logger,
	}
}

func (srv *vendorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// VendorsNearby returns the vendor directory. When the caller supplied a
// position, vendors with known coordinates are annotated with their
// great-circle distance and sorted nearest first; vendors without
// coordinates keep the upstream order after them.
func (srv *vendorService) VendorsNearby(ctx context.Context, input usecase.NearbyInput) ([]entity.Vendor, error) {
	vendors, err := srv.vendors.VendorsNearby(ctx, input.Latitude, input.Longitude, input.RadiusKm)
	if err != nil {
		return nil, err
	}

	if input.Latitude == 0 && input.Longitude == 0 {
		return vendors, nil
	}

	origin := orb.Point{input.Longitude, input.Latitude}
	for i := range vendors {
		if vendors[i].HasCoordinates() {
			point := orb.Point{vendors[i].Longitude, vendors[i].Latitude}
			vendors[i].DistanceKm = geo.DistanceHaversine(origin, point) / 1000
		}
	}

	sort.SliceStable(vendors, func(i, j int) bool {
		vi, vj := &vendors[i], &vendors[j]
		if vi.HasCoordinates() != vj.HasCoordinates() {
			return vi.HasCoordinates()
		}

		return vi.DistanceKm < vj.DistanceKm
	})

	return vendors, nil
}

// VendorBySlug returns one storefront with its products.
func (srv *vendorService) VendorBySlug(ctx context.Context, slug string) (*entity.Vendor, error) {
	if slug == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("vendor slug is required")
	}

	return srv.vendors.VendorBySlug(ctx, slug)
}

// RecordVisit tracks a storefront visit, deduplicated per device. Repeat
// visits short-circuit locally; the first visit hits the upstream tracker
// best-effort and emits an event. Tracker failures never fail the visit.
func (srv *vendorService) RecordVisit(ctx context.Context, vendorID int64, vendorSlug string) (*usecase.VisitOutput, error) {
	if vendorID <= 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("vendor id is required")
	}

	seen, err := srv.visits.Seen(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if seen {
		return &usecase.VisitOutput{FirstVisit: false}, nil
	}

	if err := srv.visits.MarkSeen(ctx, vendorID); err != nil {
		return nil, err
	}

	if err := srv.vendors.RecordVisit(ctx, vendorID); err != nil {
		srv.log(ctx).Warn("Upstream visit tracking failed",
			slog.Int64("vendorID", vendorID),
			slog.Any("error", err),
		)
	}

	event := &service.VendorVisitEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		VendorID:   vendorID,
		VendorSlug: vendorSlug,
		VisitedAt:  time.Now().UTC(),
	}
	if err := srv.publisher.PublishVendorVisit(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish visit event",
			slog.Int64("vendorID", vendorID),
			slog.Any("error", err),
		)
	}

	return &usecase.VisitOutput{FirstVisit: true}, nil
}

// StorefrontQR renders a shareable QR code PNG for the storefront.
func (srv *vendorService) StorefrontQR(_ context.Context, slug string) ([]byte, error) {
	if slug == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("vendor slug is required")
	}

	return srv.qrcodes.StorefrontPNG(slug)
}
