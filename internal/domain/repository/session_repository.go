// Package repository defines the persistence contracts for the device-local
// store. The store mirrors what the original web client kept in browser local
// storage: the session, sealed Basic credentials, cart, and visited vendors.
package repository

import (
	"context"

	"shoplocal/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrSessionNotFound is returned when no session has been persisted.
var ErrSessionNotFound = errors.New("session not found")

// ErrCredentialsNotFound is returned when no Basic credentials are stored,
// e.g. after a social login.
var ErrCredentialsNotFound = errors.New("stored credentials not found")

// SessionRepository persists the single device session.
type SessionRepository interface {
	// Load returns the persisted session, or ErrSessionNotFound.
	Load(ctx context.Context) (*entity.Session, error)

	// Save persists the session, replacing any previous one.
	Save(ctx context.Context, session *entity.Session) error

	// Clear removes the session and any stored credentials unconditionally.
	Clear(ctx context.Context) error

	// SaveCredentials stores the sealed Basic credentials used by the
	// best-effort profile sync path.
	SaveCredentials(ctx context.Context, sealed []byte) error

	// LoadCredentials returns the sealed credentials, or ErrCredentialsNotFound.
	LoadCredentials(ctx context.Context) ([]byte, error)
}
