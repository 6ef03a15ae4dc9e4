package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "shoplocal/internal/delivery/context"
	"shoplocal/internal/delivery/http/response"
	domainerrors "shoplocal/internal/domain/errors"
	"shoplocal/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ListingHandler serves the signed-in user's marketplace listings.
type ListingHandler struct {
	uc     usecase.ListingUsecase
	logger *slog.Logger
}

// NewListingHandler is the constructor for ListingHandler, injected by Fx.
func NewListingHandler(uc usecase.ListingUsecase, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		uc:     uc,
		logger: logger,
	}
}

// Mine returns the caller's own listings.
func (h *ListingHandler) Mine(c echo.Context) error {
	session := deliverycontext.GetSession(c)
	if !session.Authenticated() {
		return domainerrors.ErrNotAuthenticated
	}

	listings, err := h.uc.GetUserListings(c.Request().Context(), session.User.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listings, "Listings retrieved successfully")
}

// MineStats returns counts and the average rating over the caller's listings.
func (h *ListingHandler) MineStats(c echo.Context) error {
	session := deliverycontext.GetSession(c)
	if !session.Authenticated() {
		return domainerrors.ErrNotAuthenticated
	}

	stats, err := h.uc.GetUserListingStats(c.Request().Context(), session.User.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "Listing stats retrieved successfully")
}
