package service

// TokenMinter mints the opaque client-side session token. The token gates
// local UI state only; it is never validated by the upstream server and
// carries no claims.
type TokenMinter interface {
	Mint() string
}
