package wordpress

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"

	"shoplocal/internal/domain/entity"
	domainerrors "shoplocal/internal/domain/errors"
	"shoplocal/internal/domain/service"
)

// rawVendor is the vendor-by-username and vendors-nearby payload shape. The
// store address and social blocks arrive as loose string maps.
type rawVendor struct {
	ID       int64           `json:"id"`
	StoreID  int64           `json:"store_id"`
	Name     flexString      `json:"store_name"`
	AltName  flexString      `json:"name"`
	Slug     string          `json:"slug"`
	Username string          `json:"username"`
	Logo     string          `json:"gravatar"`
	AltLogo  string          `json:"logo"`
	Banner   string          `json:"banner"`
	Bio      flexString      `json:"bio"`
	Rating   rawVendorRating `json:"rating"`

	Address struct {
		City  string `json:"city"`
		State string `json:"state"`
	} `json:"address"`

	Latitude  flexFloat `json:"latitude"`
	Longitude flexFloat `json:"longitude"`

	Policies map[string]string `json:"policies"`
	Social   map[string]string `json:"social"`

	Products []rawProduct `json:"products"`
}

// rawVendorRating tolerates both the Dokan object form
// {"rating": "4.5", "count": 12} and a bare number.
type rawVendorRating struct {
	value float64
}

func (r *rawVendorRating) UnmarshalJSON(data []byte) error {
	var bare flexFloat
	if err := bare.UnmarshalJSON(data); err == nil && bare != 0 {
		r.value = float64(bare)

		return nil
	}

	var obj struct {
		Rating flexFloat `json:"rating"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		r.value = float64(obj.Rating)
	}

	return nil
}

// toVendor collapses the alternate vendor fields into the canonical Vendor.
func (r *rawVendor) toVendor() entity.Vendor {
	id := r.ID
	if id == 0 {
		id = r.StoreID
	}

	name := string(r.Name)
	if name == "" {
		name = string(r.AltName)
	}

	slug := r.Slug
	if slug == "" {
		slug = r.Username
	}

	logo := r.Logo
	if logo == "" {
		logo = r.AltLogo
	}

	products := make([]entity.Product, 0, len(r.Products))
	for i := range r.Products {
		products = append(products, toProduct(&r.Products[i]))
	}

	return entity.Vendor{
		ID:        id,
		Name:      name,
		Slug:      slug,
		Logo:      logo,
		Banner:    r.Banner,
		Bio:       string(r.Bio),
		Rating:    r.Rating.value,
		Location:  resolveLocation(r.Address.City, r.Address.State),
		Latitude:  float64(r.Latitude),
		Longitude: float64(r.Longitude),
		Policies:  r.Policies,
		Social:    r.Social,
		Products:  products,
	}
}

// vendorGateway implements service.VendorGateway against the marketplace
// plugin routes.
type vendorGateway struct {
	client *Client
	logger *slog.Logger
}

// NewVendorGateway creates the vendor gateway.
func NewVendorGateway(client *Client, logger *slog.Logger) service.VendorGateway {
	return &vendorGateway{client: client, logger: logger}
}

func (g *vendorGateway) VendorsNearby(ctx context.Context, lat, lng, radiusKm float64) ([]entity.Vendor, error) {
	route := g.client.route(g.client.cfg.Namespaces.Custom, "vendors-nearby")

	query := url.Values{}
	if lat != 0 || lng != 0 {
		query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
		query.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	}
	if radiusKm > 0 {
		query.Set("radius", strconv.FormatFloat(radiusKm, 'f', -1, 64))
	}

	var raws []rawVendor
	if err := g.client.get(ctx, route, query, &raws); err != nil {
		return nil, mapCatalogError(err, nil)
	}

	vendors := make([]entity.Vendor, 0, len(raws))
	for i := range raws {
		vendors = append(vendors, raws[i].toVendor())
	}

	return vendors, nil
}

func (g *vendorGateway) VendorBySlug(ctx context.Context, slug string) (*entity.Vendor, error) {
	route := g.client.route(g.client.cfg.Namespaces.Custom, "vendor-by-username/"+url.PathEscape(slug))

	var raw rawVendor
	if err := g.client.get(ctx, route, nil, &raw); err != nil {
		return nil, mapCatalogError(err, domainerrors.ErrVendorNotFound)
	}

	vendor := raw.toVendor()
	if vendor.ID == 0 && vendor.Slug == "" {
		return nil, domainerrors.ErrVendorNotFound
	}

	return &vendor, nil
}

func (g *vendorGateway) RecordVisit(ctx context.Context, vendorID int64) error {
	route := g.client.route(g.client.cfg.Namespaces.Custom, "visit/"+strconv.FormatInt(vendorID, 10))

	if err := g.client.post(ctx, route, nil, nil, ""); err != nil {
		return mapCatalogError(err, domainerrors.ErrVendorNotFound)
	}

	return nil
}
