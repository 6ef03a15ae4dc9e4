package wordpress

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"shoplocal/internal/domain/entity"
	domainerrors "shoplocal/internal/domain/errors"
	"shoplocal/internal/domain/service"

	"github.com/pkg/errors"
)

// rawAuthUser is the union of the user shapes returned by the auth plugin's
// login route, the social-exchange route, and core wp/v2. Alternate field
// names for the same attribute are collapsed by toUser.
type rawAuthUser struct {
	UserID int64 `json:"user_id"`
	ID     int64 `json:"id"`
	AltID  int64 `json:"ID"`

	Email     string `json:"email"`
	UserEmail string `json:"user_email"`

	Username     string `json:"username"`
	UserLogin    string `json:"user_login"`
	UserNicename string `json:"user_nicename"`

	DisplayName flexString `json:"display_name"`
	Name        flexString `json:"name"`

	Role  string   `json:"role"`
	Roles []string `json:"roles"`

	AvatarURL string `json:"avatar_url"`
}

// toUser collapses the alternate auth payload fields into the canonical User.
func (r *rawAuthUser) toUser() *entity.User {
	id := r.UserID
	if id == 0 {
		id = r.ID
	}
	if id == 0 {
		id = r.AltID
	}

	email := r.Email
	if email == "" {
		email = r.UserEmail
	}

	username := r.Username
	if username == "" {
		username = r.UserLogin
	}
	if username == "" {
		username = r.UserNicename
	}

	display := string(r.DisplayName)
	if display == "" {
		display = string(r.Name)
	}
	if display == "" {
		display = username
	}

	role := r.Role
	if role == "" && len(r.Roles) > 0 {
		role = r.Roles[0]
	}

	return &entity.User{
		ID:          id,
		Username:    username,
		Email:       email,
		DisplayName: display,
		Role:        entity.RoleFromString(role),
		Avatar:      r.AvatarURL,
	}
}

// authGateway implements service.AuthGateway against the custom auth routes.
type authGateway struct {
	client *Client
	logger *slog.Logger
}

// NewAuthGateway creates the auth gateway.
func NewAuthGateway(client *Client, logger *slog.Logger) service.AuthGateway {
	return &authGateway{client: client, logger: logger}
}

// loginResponse is the envelope some deployments put around the user record.
// Older plugin versions return the user fields at the top level instead, so
// both shapes are probed.
type loginResponse struct {
	User *rawAuthUser `json:"user"`
}

func (g *authGateway) Login(ctx context.Context, identifier, secret string) (*entity.User, error) {
	route := g.client.route(g.client.cfg.Namespaces.Auth, "login")

	body := map[string]string{
		"username": identifier,
		"password": secret,
	}

	var raw json.RawMessage
	if err := g.client.post(ctx, route, body, &raw, ""); err != nil {
		return nil, mapAuthError(err)
	}

	user, err := decodeAuthUser(raw)
	if err != nil {
		g.logger.Warn("unparsable login response", slog.Any("error", err))

		return nil, domainerrors.ErrUpstreamMalformed
	}

	return user, nil
}

func (g *authGateway) Register(ctx context.Context, input *service.RegisterInput) error {
	route := g.client.route(g.client.cfg.Namespaces.Auth, "register")

	body := map[string]string{
		"username":     input.Username,
		"email":        input.Email,
		"password":     input.Password,
		"display_name": input.DisplayName,
	}

	if err := g.client.post(ctx, route, body, nil, ""); err != nil {
		mapped := mapAuthError(err)
		if appErr, ok := mapped.(domainerrors.AppError); ok && appErr.ErrorCode() == "UPSTREAM_ERROR" {
			// Unknown registration failures collapse to one fixed message.
			return domainerrors.ErrRegistrationFailed.WithDetails(appErr.Details())
		}

		return mapped
	}

	return nil
}

func (g *authGateway) SocialLogin(ctx context.Context, provider, code string) (*entity.User, error) {
	route := g.client.route(g.client.cfg.Namespaces.Custom, "social-login")

	body := map[string]string{"provider": strings.ToLower(provider), "code": code}

	var raw json.RawMessage
	if err := g.client.post(ctx, route, body, &raw, ""); err != nil {
		apiErr, ok := err.(*APIError)
		if ok && apiErr.Code == "rest_no_route" {
			return nil, domainerrors.ErrSocialLoginUnavailable
		}

		return nil, mapAuthError(err)
	}

	user, err := decodeAuthUser(raw)
	if err != nil {
		return nil, domainerrors.ErrUpstreamMalformed
	}

	return user, nil
}

// decodeAuthUser accepts both the {"user": {...}} envelope and a bare user
// object, rejecting payloads that carry no usable identity.
func decodeAuthUser(raw json.RawMessage) (*entity.User, error) {
	var envelope loginResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.User != nil {
		user := envelope.User.toUser()
		if user.ID != 0 {
			return user, nil
		}
	}

	var bare rawAuthUser
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, errors.Wrap(err, "failed to decode auth user")
	}

	user := bare.toUser()
	if user.ID == 0 {
		return nil, errors.New("auth response carries no user id")
	}

	return user, nil
}
