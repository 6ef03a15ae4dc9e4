// Package auth provides concrete implementations for session-related domain
// services: token minting and credential sealing.
package auth

import (
	"github.com/google/uuid"

	"shoplocal/internal/domain/service"
)

// uuidTokenMinter mints opaque session tokens from random UUIDs.
type uuidTokenMinter struct{}

// NewTokenMinter is the constructor for uuidTokenMinter.
func NewTokenMinter() service.TokenMinter {
	return &uuidTokenMinter{}
}

// Mint returns a fresh opaque token.
func (m *uuidTokenMinter) Mint() string {
	return uuid.NewString()
}
