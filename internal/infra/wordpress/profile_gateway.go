package wordpress

import (
	"context"
	"log/slog"
	"strconv"

	"shoplocal/internal/domain/entity"
	domainerrors "shoplocal/internal/domain/errors"
	"shoplocal/internal/domain/service"
)

// profileGateway implements service.ProfileGateway against core wp/v2 users.
// WordPress accepts POST for partial user updates, so no extra verb plumbing
// is needed on the shared client.
type profileGateway struct {
	client *Client
	logger *slog.Logger
}

// NewProfileGateway creates the profile gateway.
func NewProfileGateway(client *Client, logger *slog.Logger) service.ProfileGateway {
	return &profileGateway{client: client, logger: logger}
}

func (g *profileGateway) UpdateUser(ctx context.Context, userID int64, patch *entity.UserPatch, basicAuth string) error {
	if patch.Empty() {
		return nil
	}

	route := g.client.route(g.client.cfg.Namespaces.Core, "users/"+strconv.FormatInt(userID, 10))

	body := map[string]any{}
	if patch.Email != nil {
		body["email"] = *patch.Email
	}
	if patch.DisplayName != nil {
		body["name"] = *patch.DisplayName
	}

	// Non-core fields ride along as user meta, which the marketplace plugin
	// registers on the users route.
	meta := map[string]string{}
	if patch.Phone != nil {
		meta["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		meta["address"] = *patch.Address
	}
	if patch.Company != nil {
		meta["company"] = *patch.Company
	}
	if patch.Avatar != nil {
		meta["avatar_url"] = *patch.Avatar
	}
	if len(meta) > 0 {
		body["meta"] = meta
	}

	if err := g.client.post(ctx, route, body, nil, basicAuth); err != nil {
		apiErr, ok := err.(*APIError)
		if !ok {
			return domainerrors.ErrUpstreamUnavailable.WrapMessage(err.Error())
		}
		if apiErr.Status == 401 || apiErr.Status == 403 {
			return domainerrors.ErrNotAuthenticated
		}

		return domainerrors.NewUpstreamError(apiErr.Code, apiErr.Message)
	}

	return nil
}
