package usecase

import (
	"context"

	"shoplocal/internal/domain/entity"
)

// AddCartItemInput defines a product added to the cart.
type AddCartItemInput struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity" validate:"gte=0"`
}

// CartTotalsOutput is the display view of the cart price breakdown, rounded
// to two decimals.
type CartTotalsOutput struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CartUsecase defines the interface for cart operations. The cart lives in
// the device-local store and survives restarts.
type CartUsecase interface {
	// Get returns the current cart.
	Get(ctx context.Context) (*entity.Cart, error)

	// AddItem adds a product, merging quantities for repeat adds.
	AddItem(ctx context.Context, input AddCartItemInput) (*entity.Cart, error)

	// IncrementItem raises an item's quantity by one.
	IncrementItem(ctx context.Context, productID int64) (*entity.Cart, error)

	// DecrementItem lowers an item's quantity by one, floored at one.
	DecrementItem(ctx context.Context, productID int64) (*entity.Cart, error)

	// RemoveItem drops an item entirely.
	RemoveItem(ctx context.Context, productID int64) (*entity.Cart, error)

	// Totals prices the current cart for display.
	Totals(ctx context.Context) (*CartTotalsOutput, error)

	// Clear empties the cart.
	Clear(ctx context.Context) error
}
