package entity

// Listing is the canonical subset of a GeoDirectory place record. The raw
// upstream payload carries dozens of fields in several legacy shapes; only
// these survive normalization.
type Listing struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Logo     string  `json:"logo,omitempty"`
	Rating   float64 `json:"rating"`
	Location string  `json:"location"`
	Claimed  bool    `json:"claimed"`
	Status   string  `json:"status"`
	AuthorID int64   `json:"author_id"`
}

// Published reports whether the listing is publicly visible upstream.
func (l *Listing) Published() bool {
	return l.Status == "publish"
}

// ListingStats are derived purely from an already-fetched set of listings;
// there is no upstream stats endpoint.
type ListingStats struct {
	Total         int     `json:"total"`
	Claimed       int     `json:"claimed"`
	Published     int     `json:"published"`
	Pending       int     `json:"pending"`
	AverageRating float64 `json:"average_rating"`
}
