// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"shoplocal/internal/delivery/http/response"
	"shoplocal/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for sign-in and sign-out handlers.
type AuthHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.SessionUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Login handles the credential sign-in request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	session, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, session, "Login successful")
}

// Register handles account creation. A successful registration signs the new
// account in, so the response carries a live session.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	session, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, session, "Account registered successfully")
}

// SocialLogin handles the social-provider sign-in request.
func (h *AuthHandler) SocialLogin(c echo.Context) error {
	var input usecase.SocialLoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid social login input")
	}

	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	session, err := h.uc.LoginWithSocial(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, session, "Login successful")
}

// Logout clears the device session. Always succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.uc.Logout(c.Request().Context())

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}
