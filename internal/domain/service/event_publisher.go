package service

import (
	"context"
	"time"
)

// VendorVisitEvent is emitted the first time a vendor storefront is visited
// from this client. Downstream consumers aggregate foot-traffic analytics.
type VendorVisitEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	VendorID   int64     `json:"vendor_id"`
	VendorSlug string    `json:"vendor_slug,omitempty"`
	VisitedAt  time.Time `json:"visited_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishVendorVisit publishes a first-visit event for async processing
	PublishVendorVisit(ctx context.Context, event *VendorVisitEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
