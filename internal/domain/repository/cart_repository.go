package repository

import (
	"context"

	"shoplocal/internal/domain/entity"
)

// CartRepository persists the device cart. An empty cart is a valid state;
// Load never fails just because nothing was saved yet.
type CartRepository interface {
	Load(ctx context.Context) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	Clear(ctx context.Context) error
}
