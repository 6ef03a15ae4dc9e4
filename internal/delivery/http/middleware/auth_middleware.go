package middleware

import (
	"strings"

	deliverycontext "shoplocal/internal/delivery/context"
	domainerrors "shoplocal/internal/domain/errors"
	"shoplocal/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware validates the opaque session token minted at login.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate checks the Bearer token against the current session and stores
// the session on the request context for handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrNotAuthenticated.WrapMessage("Authorization header is missing")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token == "" {
			return domainerrors.ErrNotAuthenticated.WrapMessage("invalid token format, must be Bearer token")
		}

		state := m.sessions.Current(c.Request().Context())
		if state.Session == nil || !state.Session.Authenticated() {
			return domainerrors.ErrNotAuthenticated
		}
		if state.Session.Token != token {
			return domainerrors.ErrNotAuthenticated.WrapMessage("unknown session token")
		}

		deliverycontext.SetSession(c, state.Session)

		return next(c)
	}
}
