package wordpress

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"shoplocal/internal/domain/entity"
	domainerrors "shoplocal/internal/domain/errors"
	"shoplocal/internal/domain/service"
)

// listingGateway implements service.ListingGateway against the GeoDirectory
// places routes.
type listingGateway struct {
	client *Client
	logger *slog.Logger
}

// NewListingGateway creates the listing gateway.
func NewListingGateway(client *Client, logger *slog.Logger) service.ListingGateway {
	return &listingGateway{client: client, logger: logger}
}

func (g *listingGateway) Places(ctx context.Context, page, perPage int) ([]entity.Listing, error) {
	route := g.client.route(g.client.cfg.Namespaces.GeoDir, "places")

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	// _embed pulls featured media inline so image resolution never needs a
	// second request per listing.
	query.Set("_embed", "wp:featuredmedia")

	var raws []rawListing
	if err := g.client.get(ctx, route, query, &raws); err != nil {
		return nil, mapCatalogError(err, nil)
	}

	listings := make([]entity.Listing, 0, len(raws))
	for i := range raws {
		listings = append(listings, toListing(&raws[i]))
	}

	return listings, nil
}

func (g *listingGateway) Place(ctx context.Context, id int64) (*entity.Listing, error) {
	route := g.client.route(g.client.cfg.Namespaces.GeoDir, "places/"+strconv.FormatInt(id, 10))

	query := url.Values{}
	query.Set("_embed", "wp:featuredmedia")

	var raw rawListing
	if err := g.client.get(ctx, route, query, &raw); err != nil {
		return nil, mapCatalogError(err, domainerrors.ErrListingNotFound)
	}

	listing := toListing(&raw)

	return &listing, nil
}

// mapCatalogError translates upstream read failures. notFound, when non-nil,
// replaces 404-class upstream codes; everything else degrades to the generic
// upstream errors.
func mapCatalogError(err error, notFound domainerrors.AppError) error {
	apiErr, ok := err.(*APIError)
	if !ok {
		return domainerrors.ErrUpstreamUnavailable.WrapMessage(err.Error())
	}

	if notFound != nil && (apiErr.Status == 404 || apiErr.Code == "rest_post_invalid_id" || apiErr.Code == "rest_no_route") {
		return notFound
	}

	return domainerrors.NewUpstreamError(apiErr.Code, apiErr.Message)
}
