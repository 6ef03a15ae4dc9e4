package impl

import (
	"context"
	"log/slog"
	"sync"

	"shoplocal/config"
	deliverycontext "shoplocal/internal/delivery/context"
	"shoplocal/internal/domain/entity"
	domainerrors "shoplocal/internal/domain/errors"
	"shoplocal/internal/domain/repository"
	"shoplocal/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface. Mutations go through a
// load-modify-save cycle under a mutex so concurrent requests cannot
// interleave partial carts.
type cartService struct {
	mu       sync.Mutex
	cartRepo repository.CartRepository
	pricing  entity.CartPricing
	logger   *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo repository.CartRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	pricing := entity.CartPricing{FreeShippingOver: 500, ShippingFee: 25, TaxRate: 0.08}
	if params.Config != nil && params.Config.Cart != nil {
		pricing = entity.CartPricing{
			FreeShippingOver: params.Config.Cart.FreeShippingOver,
			ShippingFee:      params.Config.Cart.ShippingFee,
			TaxRate:          params.Config.Cart.TaxRate,
		}
	}

	return &cartService{
		cartRepo: params.CartRepo,
		pricing:  pricing,
		logger:   params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Get returns the current cart.
func (srv *cartService) Get(ctx context.Context) (*entity.Cart, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.cartRepo.Load(ctx)
}

// AddItem adds a product, merging quantities for repeat adds.
func (srv *cartService) AddItem(ctx context.Context, input usecase.AddCartItemInput) (*entity.Cart, error) {
	if input.ProductID <= 0 || input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("product id and name are required")
	}
	if input.Price < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price cannot be negative")
	}

	cart, err := srv.mutate(ctx, func(cart *entity.Cart) error {
		cart.Add(entity.CartItem{
			ProductID: input.ProductID,
			Name:      input.Name,
			Price:     input.Price,
			Image:     input.Image,
			Quantity:  input.Quantity,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Cart item added",
		slog.Int64("productID", input.ProductID),
		slog.Int("lines", len(cart.Items)),
	)

	return cart, nil
}

// IncrementItem raises an item's quantity by one.
func (srv *cartService) IncrementItem(ctx context.Context, productID int64) (*entity.Cart, error) {
	return srv.mutate(ctx, func(cart *entity.Cart) error {
		if !cart.Increment(productID) {
			return domainerrors.ErrCartItemNotFound
		}

		return nil
	})
}

// DecrementItem lowers an item's quantity by one, floored at one.
func (srv *cartService) DecrementItem(ctx context.Context, productID int64) (*entity.Cart, error) {
	return srv.mutate(ctx, func(cart *entity.Cart) error {
		if !cart.Decrement(productID) {
			return domainerrors.ErrCartItemNotFound
		}

		return nil
	})
}

// RemoveItem drops an item entirely.
func (srv *cartService) RemoveItem(ctx context.Context, productID int64) (*entity.Cart, error) {
	return srv.mutate(ctx, func(cart *entity.Cart) error {
		if !cart.Remove(productID) {
			return domainerrors.ErrCartItemNotFound
		}

		return nil
	})
}

// Totals prices the current cart for display, rounded to two decimals.
func (srv *cartService) Totals(ctx context.Context) (*usecase.CartTotalsOutput, error) {
	cart, err := srv.Get(ctx)
	if err != nil {
		return nil, err
	}

	totals := cart.Totals(srv.pricing)

	return &usecase.CartTotalsOutput{
		Subtotal: entity.Round2(totals.Subtotal),
		Shipping: entity.Round2(totals.Shipping),
		Tax:      entity.Round2(totals.Tax),
		Total:    entity.Round2(totals.Total),
	}, nil
}

// Clear empties the cart.
func (srv *cartService) Clear(ctx context.Context) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.cartRepo.Clear(ctx)
}

// mutate runs a load-modify-save cycle under the mutex.
func (srv *cartService) mutate(ctx context.Context, apply func(*entity.Cart) error) (*entity.Cart, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	cart, err := srv.cartRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := apply(cart); err != nil {
		return nil, err
	}

	if err := srv.cartRepo.Save(ctx, cart); err != nil {
		return nil, errors.Wrap(err, "failed to persist cart")
	}

	return cart, nil
}
