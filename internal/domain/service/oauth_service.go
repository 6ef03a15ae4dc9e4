package service

import "context"

// OAuthUser is the identity asserted by a social provider's ID token.
type OAuthUser struct {
	ID            string
	Email         string
	Name          string
	Provider      string
	AvatarURL     string
	EmailVerified bool
}

// OAuthVerifier validates a provider ID token locally before the upstream
// social-login exchange. Optional: a nil verifier skips local validation.
type OAuthVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
}
