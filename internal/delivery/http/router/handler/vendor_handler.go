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

// VendorHandler serves the vendor directory and storefront endpoints.
type VendorHandler struct {
	uc     usecase.VendorUsecase
	logger *slog.Logger
}

// NewVendorHandler is the constructor for VendorHandler, injected by Fx.
func NewVendorHandler(uc usecase.VendorUsecase, logger *slog.Logger) *VendorHandler {
	return &VendorHandler{
		uc:     uc,
		logger: logger,
	}
}

// Nearby returns the vendor directory, distance-sorted when the caller
// supplies lat/lng query parameters.
func (h *VendorHandler) Nearby(c echo.Context) error {
	input := usecase.NearbyInput{
		Latitude:  queryFloat(c, "lat"),
		Longitude: queryFloat(c, "lng"),
		RadiusKm:  queryFloat(c, "radius_km"),
	}

	vendors, err := h.uc.VendorsNearby(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, vendors, "Vendors retrieved successfully")
}

// BySlug returns one storefront with its products.
func (h *VendorHandler) BySlug(c echo.Context) error {
	vendor, err := h.uc.VendorBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, vendor, "Vendor retrieved successfully")
}

// visitRequest carries the optional storefront slug for event attribution.
type visitRequest struct {
	Slug string `json:"slug"`
}

// RecordVisit tracks a storefront visit, deduplicated per device.
func (h *VendorHandler) RecordVisit(c echo.Context) error {
	vendorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("vendor id must be numeric")
	}

	var req visitRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid visit input")
	}

	output, err := h.uc.RecordVisit(c.Request().Context(), vendorID, req.Slug)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Visit recorded")
}

// QRCode renders a shareable QR code PNG linking to the storefront.
func (h *VendorHandler) QRCode(c echo.Context) error {
	png, err := h.uc.StorefrontQR(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// queryFloat parses a float query parameter, treating absent or malformed
// values as zero.
func queryFloat(c echo.Context, name string) float64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}

	return value
}
