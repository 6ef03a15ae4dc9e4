package handler

import (
	"log/slog"
	"net/http"

	"shoplocal/internal/delivery/http/response"
	"shoplocal/internal/domain/entity"
	"shoplocal/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionHandler exposes the current session and local profile updates.
type SessionHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		uc:     uc,
		logger: logger,
	}
}

// Current returns the session snapshot, including the hydration state.
func (h *SessionHandler) Current(c echo.Context) error {
	state := h.uc.Current(c.Request().Context())

	return response.Success(c, http.StatusOK, state, "Session retrieved successfully")
}

// UpdateUser merges a partial profile patch into the local snapshot only.
func (h *SessionHandler) UpdateUser(c echo.Context) error {
	var patch entity.UserPatch
	if err := c.Bind(&patch); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile patch")
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), &patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile updated locally")
}

// UpdateProfile merges a partial profile patch locally and best-effort syncs
// it to the upstream server. The sync outcome is reported, never an error.
func (h *SessionHandler) UpdateProfile(c echo.Context) error {
	var patch entity.UserPatch
	if err := c.Bind(&patch); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile patch")
	}

	output, err := h.uc.UpdateUserProfile(c.Request().Context(), &patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Profile updated")
}
