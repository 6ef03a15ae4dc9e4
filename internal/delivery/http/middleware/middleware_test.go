package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "shoplocal/internal/delivery/context"
	"shoplocal/internal/domain/entity"
	domainerrors "shoplocal/internal/domain/errors"
	"shoplocal/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type staticSessionUsecase struct {
	usecase.SessionUsecase

	state *usecase.SessionState
}

func (s *staticSessionUsecase) Current(_ context.Context) *usecase.SessionState {
	return s.state
}

func authenticatedState(token string) *usecase.SessionState {
	return &usecase.SessionState{
		State: usecase.AuthStateAuthenticated,
		Session: &entity.Session{
			Token: token,
			User:  &entity.User{ID: 7, Username: "bob"},
		},
	}
}

func newAuthContext(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/listings/mine", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_Authenticate_AcceptsMatchingToken(t *testing.T) {
	m := NewAuthMiddleware(&staticSessionUsecase{state: authenticatedState("token-1")})

	c, _ := newAuthContext("Bearer token-1")
	called := false
	err := m.Authenticate(func(c echo.Context) error {
		called = true

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)

	session := deliverycontext.GetSession(c)
	require.NotNil(t, session)
	assert.Equal(t, int64(7), session.User.ID)
}

func TestAuthMiddleware_Authenticate_RejectsWrongToken(t *testing.T) {
	m := NewAuthMiddleware(&staticSessionUsecase{state: authenticatedState("token-1")})

	c, _ := newAuthContext("Bearer token-2")
	err := m.Authenticate(func(c echo.Context) error {
		t.Fatal("handler must not run")

		return nil
	})(c)

	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
}

func TestAuthMiddleware_Authenticate_RejectsMissingHeader(t *testing.T) {
	m := NewAuthMiddleware(&staticSessionUsecase{state: authenticatedState("token-1")})

	c, _ := newAuthContext("")
	err := m.Authenticate(func(c echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
}

func TestAuthMiddleware_Authenticate_RejectsNonBearerScheme(t *testing.T) {
	m := NewAuthMiddleware(&staticSessionUsecase{state: authenticatedState("token-1")})

	c, _ := newAuthContext("Basic dXNlcjpwYXNz")
	err := m.Authenticate(func(c echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
}

func TestAuthMiddleware_Authenticate_RejectsSignedOutSession(t *testing.T) {
	m := NewAuthMiddleware(&staticSessionUsecase{state: &usecase.SessionState{State: usecase.AuthStateUnauthenticated}})

	c, _ := newAuthContext("Bearer token-1")
	err := m.Authenticate(func(c echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
}

func TestRequestIDMiddleware_Process_GeneratesAndEchoesID(t *testing.T) {
	m := NewRequestIDMiddleware(discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var inHandler string
	err := m.Process(func(c echo.Context) error {
		inHandler = deliverycontext.GetRequestIDFromContext(c.Request().Context())

		return nil
	})(c)

	require.NoError(t, err)
	assert.NotEmpty(t, inHandler)
	assert.Equal(t, inHandler, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDMiddleware_Process_KeepsCallerID(t *testing.T) {
	m := NewRequestIDMiddleware(discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := m.Process(func(c echo.Context) error { return nil })(c)

	require.NoError(t, err)
	assert.Equal(t, "req-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "req-123", deliverycontext.GetRequestID(c))
}

func TestErrorMiddleware_RendersTypedError(t *testing.T) {
	m := NewErrorMiddleware(discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/vendors/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m.HandleHTTPError(domainerrors.ErrVendorNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), "VENDOR_NOT_FOUND")
}

func TestErrorMiddleware_HidesInternalDetails(t *testing.T) {
	m := NewErrorMiddleware(discardLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m.HandleHTTPError(assert.AnError, c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
