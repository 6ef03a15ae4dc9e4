package entity

// Product is the canonical subset of a Dokan/WooCommerce product record.
// A product belongs to exactly one vendor.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	Image       string  `json:"image,omitempty"`
}
