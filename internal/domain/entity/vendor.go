package entity

// Vendor is a storefront: metadata plus its product set, fetched together in
// one upstream call.
type Vendor struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Logo     string  `json:"logo,omitempty"`
	Banner   string  `json:"banner,omitempty"`
	Bio      string  `json:"bio,omitempty"`
	Rating   float64 `json:"rating"`
	Location string  `json:"location"`

	// Coordinates are optional; zero lat/lng means "unknown", which keeps the
	// vendor out of distance sorting.
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	// DistanceKm is filled in by nearby queries when coordinates are known.
	DistanceKm float64 `json:"distance_km,omitempty"`

	Policies map[string]string `json:"policies,omitempty"`
	Social   map[string]string `json:"social,omitempty"`

	Products []Product `json:"products,omitempty"`
}

// HasCoordinates reports whether the vendor carries a usable position.
func (v *Vendor) HasCoordinates() bool {
	return v.Latitude != 0 || v.Longitude != 0
}
