package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"shoplocal/internal/delivery/http/response"
	domainerrors "shoplocal/internal/domain/errors"
	"shoplocal/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler serves the device-local shopping cart.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

// Get returns the current cart.
func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart retrieved successfully")
}

// AddItem adds a product to the cart, merging quantities on repeat adds.
func (h *CartHandler) AddItem(c echo.Context) error {
	var input usecase.AddCartItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}

	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	cart, err := h.uc.AddItem(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item added to cart")
}

// Increment raises an item's quantity by one.
func (h *CartHandler) Increment(c echo.Context) error {
	productID, err := cartProductID(c)
	if err != nil {
		return err
	}

	cart, err := h.uc.IncrementItem(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item quantity updated")
}

// Decrement lowers an item's quantity by one, floored at one.
func (h *CartHandler) Decrement(c echo.Context) error {
	productID, err := cartProductID(c)
	if err != nil {
		return err
	}

	cart, err := h.uc.DecrementItem(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item quantity updated")
}

// Remove drops an item from the cart entirely.
func (h *CartHandler) Remove(c echo.Context) error {
	productID, err := cartProductID(c)
	if err != nil {
		return err
	}

	cart, err := h.uc.RemoveItem(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item removed from cart")
}

// Totals prices the cart for display, rounded to two decimals.
func (h *CartHandler) Totals(c echo.Context) error {
	totals, err := h.uc.Totals(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, totals, "Cart totals computed")
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.uc.Clear(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Cart cleared"}, "Cart cleared")
}

func cartProductID(c echo.Context) (int64, error) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WithDetails("product id must be numeric")
	}

	return productID, nil
}
