package wordpress

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shoplocal/config"
	"shoplocal/internal/domain/entity"
	domainerrors "shoplocal/internal/domain/errors"
	"shoplocal/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.WordPress = &config.WordPressConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}
	cfg.WordPress.Namespaces.Core = "wp/v2"
	cfg.WordPress.Namespaces.GeoDir = "geodir/v2"
	cfg.WordPress.Namespaces.Auth = "shoplocal-api/v1"
	cfg.WordPress.Namespaces.Custom = "custom-api/v1"

	client, err := NewClient(ClientParams{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return client
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthGateway_Login_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wp-json/shoplocal-api/v1/login", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id": 7, "email": "bob@example.com", "display_name": "Bob", "role": "vendor"}`))
	})

	gateway := NewAuthGateway(newTestClient(t, handler), discardLogger())

	user, err := gateway.Login(context.Background(), "bob", "hunter2")

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, entity.RoleVendor, user.Role)
}

func TestAuthGateway_Login_EnvelopeAndRolesArray(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user": {"ID": 3, "user_email": "ann@example.com", "user_nicename": "ann", "roles": ["customer"]}}`))
	})

	gateway := NewAuthGateway(newTestClient(t, handler), discardLogger())

	user, err := gateway.Login(context.Background(), "ann", "pw")

	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "ann", user.Username)
	assert.Equal(t, "ann", user.DisplayName)
	assert.Equal(t, entity.RoleCustomer, user.Role)
}

func TestAuthGateway_Login_UnknownRoleDefaultsToCustomer(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"user_id": 5, "email": "x@example.com", "role": "shop_manager"}`))
	})

	gateway := NewAuthGateway(newTestClient(t, handler), discardLogger())

	user, err := gateway.Login(context.Background(), "x", "pw")

	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, user.Role)
}

func TestAuthGateway_Login_InvalidUsername(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code": "invalid_username", "message": "Unknown username.", "data": {"status": 403}}`))
	})

	gateway := NewAuthGateway(newTestClient(t, handler), discardLogger())

	_, err := gateway.Login(context.Background(), "nobody", "pw")

	assert.ErrorIs(t, err, domainerrors.ErrInvalidUsername)
}

func TestAuthGateway_Login_RouteMissing(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": "rest_no_route", "message": "No route was found.", "data": {"status": 404}}`))
	})

	gateway := NewAuthGateway(newTestClient(t, handler), discardLogger())

	_, err := gateway.Login(context.Background(), "bob", "pw")

	assert.ErrorIs(t, err, domainerrors.ErrLoginRouteMissing)
}

func TestAuthGateway_Login_UnknownCodePassesMessageThrough(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"code": "weird_code", "message": "Something exotic happened."}`))
	})

	gateway := NewAuthGateway(newTestClient(t, handler), discardLogger())

	_, err := gateway.Login(context.Background(), "bob", "pw")

	require.Error(t, err)
	appErr, ok := err.(domainerrors.AppError)
	require.True(t, ok)
	assert.Equal(t, "UPSTREAM_ERROR", appErr.ErrorCode())
	assert.Equal(t, "Something exotic happened.", appErr.Message())
	assert.Equal(t, "weird_code", appErr.Details())
}

func TestAuthGateway_Register_ExistingUsername(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code": "existing_user_login", "message": "Sorry, that username already exists!"}`))
	})

	gateway := NewAuthGateway(newTestClient(t, handler), discardLogger())

	err := gateway.Register(context.Background(), &service.RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "pw",
	})

	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestAuthGateway_SocialLogin_PostsProviderAndCode(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/custom-api/v1/social-login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "google", body["provider"])
		assert.Equal(t, "auth-code", body["code"])

		_, _ = w.Write([]byte(`{"user": {"id": 9, "email": "sue@example.com", "username": "sue"}}`))
	})

	gateway := NewAuthGateway(newTestClient(t, handler), discardLogger())

	user, err := gateway.SocialLogin(context.Background(), "Google", "auth-code")

	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)
	assert.Equal(t, "sue", user.Username)
}

func TestAuthGateway_SocialLogin_RouteMissing(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": "rest_no_route", "message": "No route was found."}`))
	})

	gateway := NewAuthGateway(newTestClient(t, handler), discardLogger())

	_, err := gateway.SocialLogin(context.Background(), "google", "auth-code")

	assert.ErrorIs(t, err, domainerrors.ErrSocialLoginUnavailable)
}

func TestListingGateway_Places_PaginationAndEmbed(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/geodir/v2/places", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))
		assert.Equal(t, "wp:featuredmedia", r.URL.Query().Get("_embed"))

		_, _ = w.Write([]byte(`[
			{"id": 1, "title": {"rendered": "One"}, "featured_image": {"thumbnail": "a.jpg"}, "images": [{"src": "b.jpg"}]},
			{"id": 2, "title": "Two", "city": "Salem"}
		]`))
	})

	gateway := NewListingGateway(newTestClient(t, handler), discardLogger())

	listings, err := gateway.Places(context.Background(), 2, 20)

	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "a.jpg", listings[0].Logo)
	assert.Equal(t, "Salem", listings[1].Location)
	assert.Empty(t, listings[1].Logo)
}

func TestListingGateway_Place_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": "rest_post_invalid_id", "message": "Invalid post ID."}`))
	})

	gateway := NewListingGateway(newTestClient(t, handler), discardLogger())

	_, err := gateway.Place(context.Background(), 999)

	assert.ErrorIs(t, err, domainerrors.ErrListingNotFound)
}

func TestVendorGateway_VendorBySlug_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/custom-api/v1/vendor-by-username/corner-bakery", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"store_id": 12,
			"store_name": "Corner Bakery",
			"username": "corner-bakery",
			"rating": {"rating": "4.5", "count": 12},
			"address": {"city": "Portland", "state": "OR"},
			"latitude": "45.52",
			"longitude": "-122.68",
			"products": [{"id": 42, "name": "Sourdough Loaf", "price": "12.50"}]
		}`))
	})

	gateway := NewVendorGateway(newTestClient(t, handler), discardLogger())

	vendor, err := gateway.VendorBySlug(context.Background(), "corner-bakery")

	require.NoError(t, err)
	assert.Equal(t, int64(12), vendor.ID)
	assert.Equal(t, "Corner Bakery", vendor.Name)
	assert.Equal(t, "corner-bakery", vendor.Slug)
	assert.InDelta(t, 4.5, vendor.Rating, 0.0001)
	assert.Equal(t, "Portland, OR", vendor.Location)
	assert.True(t, vendor.HasCoordinates())
	require.Len(t, vendor.Products, 1)
	assert.InDelta(t, 12.50, vendor.Products[0].Price, 0.0001)
}

func TestVendorGateway_VendorBySlug_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": "vendor_not_found", "message": "No vendor.", "data": {"status": 404}}`))
	})

	gateway := NewVendorGateway(newTestClient(t, handler), discardLogger())

	_, err := gateway.VendorBySlug(context.Background(), "ghost")

	assert.ErrorIs(t, err, domainerrors.ErrVendorNotFound)
}

func TestVendorGateway_RecordVisit_PostsToVisitRoute(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	gateway := NewVendorGateway(newTestClient(t, handler), discardLogger())

	err := gateway.RecordVisit(context.Background(), 12)

	require.NoError(t, err)
	assert.Equal(t, "/wp-json/custom-api/v1/visit/12", gotPath)
}

func TestProfileGateway_UpdateUser_SendsBasicAuthAndMeta(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/users/7", r.URL.Path)
		assert.Equal(t, "Basic Ym9iOmh1bnRlcjI=", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"id": 7}`))
	})

	gateway := NewProfileGateway(newTestClient(t, handler), discardLogger())

	phone := "555-0100"
	err := gateway.UpdateUser(context.Background(), 7, &entity.UserPatch{Phone: &phone}, "Ym9iOmh1bnRlcjI=")

	require.NoError(t, err)
}

func TestProfileGateway_UpdateUser_RejectedCredentials(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code": "rest_cannot_edit", "message": "Sorry."}`))
	})

	gateway := NewProfileGateway(newTestClient(t, handler), discardLogger())

	phone := "555-0100"
	err := gateway.UpdateUser(context.Background(), 7, &entity.UserPatch{Phone: &phone}, "bad")

	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
}

func TestProfileGateway_UpdateUser_EmptyPatchSkipsRequest(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected for an empty patch")
	})

	gateway := NewProfileGateway(newTestClient(t, handler), discardLogger())

	err := gateway.UpdateUser(context.Background(), 7, &entity.UserPatch{}, "creds")

	require.NoError(t, err)
}

func TestClient_TransportFailureSurfacesUpstreamUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	cfg := &config.Config{}
	cfg.WordPress = &config.WordPressConfig{BaseURL: server.URL, Timeout: time.Second}
	cfg.WordPress.Namespaces.GeoDir = "geodir/v2"

	client, err := NewClient(ClientParams{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)

	gateway := NewListingGateway(client, discardLogger())

	_, err = gateway.Places(context.Background(), 1, 20)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamUnavailable)
}
