package wordpress

import (
	domainerrors "shoplocal/internal/domain/errors"
)

// mapAuthError translates a structured upstream error into the typed domain
// error the delivery layer knows how to render. Codes outside the known set
// pass through as an UpstreamError carrying the verbatim upstream message.
func mapAuthError(err error) error {
	apiErr, ok := err.(*APIError)
	if !ok {
		return domainerrors.ErrUpstreamUnavailable.WrapMessage(err.Error())
	}

	switch apiErr.Code {
	case "invalid_username":
		return domainerrors.ErrInvalidUsername
	case "incorrect_password":
		return domainerrors.ErrIncorrectPassword
	case "invalid_credentials", "invalid_email":
		return domainerrors.ErrInvalidCredentials
	case "rest_no_route":
		return domainerrors.ErrLoginRouteMissing
	case "existing_user_login":
		return domainerrors.ErrUsernameTaken
	case "existing_user_email":
		return domainerrors.ErrEmailTaken
	default:
		return domainerrors.NewUpstreamError(apiErr.Code, apiErr.Message)
	}
}
