// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"shoplocal/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required to sign in with credentials. The
// identifier may be a username or an email address.
type LoginInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Secret     string `json:"secret" validate:"required"`
}

// SocialLoginInput defines the data required for a social-provider sign-in.
type SocialLoginInput struct {
	Provider string `json:"provider" validate:"required"`
	Code     string `json:"code" validate:"required"`
}

// RegisterInput defines the data required to create a new account.
type RegisterInput struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Secret      string `json:"secret" validate:"required"`
	DisplayName string `json:"display_name"`
}

// --- Output DTOs ---

// AuthState is the coarse session state exposed to the delivery layer.
type AuthState string

const (
	// AuthStateUnknown means hydration has not completed yet.
	AuthStateUnknown AuthState = "unknown"
	// AuthStateUnauthenticated means no signed-in user.
	AuthStateUnauthenticated AuthState = "unauthenticated"
	// AuthStateAuthenticated means a user is signed in.
	AuthStateAuthenticated AuthState = "authenticated"
)

// SessionState is the full session snapshot for the delivery layer.
type SessionState struct {
	State   AuthState       `json:"state"`
	Session *entity.Session `json:"session,omitempty"`
}

// SyncState reports whether a profile update reached the upstream server.
type SyncState string

const (
	// SyncStateSynced means the update was committed locally and remotely.
	SyncStateSynced SyncState = "synced"
	// SyncStateLocalOnly means the update was committed locally but the
	// remote sync did not happen (no credentials, or the request failed).
	SyncStateLocalOnly SyncState = "local_only"
)

// UpdateProfileOutput returns the merged user plus the sync outcome.
type UpdateProfileOutput struct {
	User      *entity.User `json:"user"`
	SyncState SyncState    `json:"sync_state"`
}

// SessionUsecase defines the interface for session-related business
// operations. This is the contract the delivery layer depends on.
type SessionUsecase interface {
	// Loading reports whether startup hydration is still in progress.
	Loading() bool

	// Current returns the session snapshot.
	Current(ctx context.Context) *SessionState

	// Login signs in with credentials and establishes the device session.
	Login(ctx context.Context, input LoginInput) (*entity.Session, error)

	// LoginWithSocial signs in via a social provider exchange.
	LoginWithSocial(ctx context.Context, input SocialLoginInput) (*entity.Session, error)

	// Register creates an account and signs in with the same credentials.
	Register(ctx context.Context, input RegisterInput) (*entity.Session, error)

	// Logout clears the session unconditionally. It never fails and makes no
	// remote call.
	Logout(ctx context.Context)

	// UpdateUser merges the patch into the local user snapshot only.
	UpdateUser(ctx context.Context, patch *entity.UserPatch) (*entity.User, error)

	// UpdateUserProfile merges locally and best-effort syncs upstream.
	UpdateUserProfile(ctx context.Context, patch *entity.UserPatch) (*UpdateProfileOutput, error)
}
