package entity

// LoginMethod records how the current session was established.
type LoginMethod string

const (
	// LoginMethodPassword is a username/password login against the custom auth route.
	LoginMethodPassword LoginMethod = "password"
	// LoginMethodSocial is a social-provider login exchange.
	LoginMethodSocial LoginMethod = "social"
)

// Session is the device-local auth session: a client-minted opaque token plus
// the mirrored user. The token gates local state only; it is not a credential
// issued by the upstream server.
type Session struct {
	Token          string      `json:"token"`
	User           *User       `json:"user"`
	LoginMethod    LoginMethod `json:"login_method"`
	SocialProvider string      `json:"social_provider,omitempty"`
}

// Authenticated reports whether the session represents a signed-in user.
// A token without a user (or the reverse) counts as unauthenticated.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}
