// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"
	"sync"

	"shoplocal/config"
	deliverycontext "shoplocal/internal/delivery/context"
	"shoplocal/internal/domain/entity"
	domainerrors "shoplocal/internal/domain/errors"
	"shoplocal/internal/domain/lifecycle"
	"shoplocal/internal/domain/repository"
	"shoplocal/internal/domain/service"
	"shoplocal/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface. All session
// mutations are serialized by a mutex; concurrent logins resolve to whichever
// write lands last.
type sessionService struct {
	mu      sync.Mutex
	session *entity.Session
	loading bool

	sessionRepo repository.SessionRepository
	cartRepo    repository.CartRepository
	authGateway service.AuthGateway
	profiles    service.ProfileGateway
	minter      service.TokenMinter
	sealer      service.CredentialSealer
	verifier    service.OAuthVerifier

	allowMockSocialLogin bool
	logger               *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	SessionRepo    repository.SessionRepository
	CartRepo       repository.CartRepository
	AuthGateway    service.AuthGateway
	ProfileGateway service.ProfileGateway
	TokenMinter    service.TokenMinter
	Sealer         service.CredentialSealer
	Verifier       service.OAuthVerifier `optional:"true"`
	Config         *config.Config
	Logger         *slog.Logger
}

// NewSessionService is the constructor for sessionService. It hydrates the
// persisted session synchronously so callers never observe a half-initialized
// state: Loading() is already false by the time the constructor returns.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	allowMock := false
	if params.Config != nil && params.Config.Auth != nil {
		allowMock = params.Config.Auth.AllowMockSocialLogin
	}

	srv := &sessionService{
		loading:              true,
		sessionRepo:          params.SessionRepo,
		cartRepo:             params.CartRepo,
		authGateway:          params.AuthGateway,
		profiles:             params.ProfileGateway,
		minter:               params.TokenMinter,
		sealer:               params.Sealer,
		verifier:             params.Verifier,
		allowMockSocialLogin: allowMock,
		logger:               params.Logger,
	}

	srv.hydrate()

	return srv
}

// hydrate loads the persisted session. A missing or partial session hydrates
// as signed out; hydration failures never block startup.
func (srv *sessionService) hydrate() {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	defer func() {
		srv.mu.Lock()
		srv.loading = false
		srv.mu.Unlock()
	}()

	stored, err := srv.sessionRepo.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			srv.logger.Warn("Failed to hydrate session", slog.Any("error", err))
		}

		return
	}

	if !stored.Authenticated() {
		srv.logger.Warn("Discarding partial persisted session")

		return
	}

	srv.mu.Lock()
	srv.session = stored
	srv.mu.Unlock()

	srv.logger.Info("Session hydrated",
		slog.Int64("userID", stored.User.ID),
		slog.String("loginMethod", string(stored.LoginMethod)),
	)
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Loading reports whether startup hydration is still in progress.
func (srv *sessionService) Loading() bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.loading
}

// Current returns the session snapshot.
func (srv *sessionService) Current(_ context.Context) *usecase.SessionState {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	switch {
	case srv.loading:
		return &usecase.SessionState{State: usecase.AuthStateUnknown}
	case srv.session.Authenticated():
		return &usecase.SessionState{State: usecase.AuthStateAuthenticated, Session: srv.session}
	default:
		return &usecase.SessionState{State: usecase.AuthStateUnauthenticated}
	}
}

// Login signs in with credentials and establishes the device session.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (*entity.Session, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Secret == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("identifier and secret are required")
	}

	user, err := srv.authGateway.Login(ctx, identifier, input.Secret)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		Token:       srv.minter.Mint(),
		User:        user,
		LoginMethod: entity.LoginMethodPassword,
	}

	if err := srv.commitSession(ctx, session); err != nil {
		return nil, err
	}

	// Basic credentials power the best-effort profile sync. Sealing failure
	// costs only that path, never the login.
	sealed, err := srv.sealer.Seal([]byte(identifier + ":" + input.Secret))
	if err != nil {
		srv.log(ctx).Warn("Failed to seal credentials", slog.Any("error", err))
	} else if err := srv.sessionRepo.SaveCredentials(ctx, sealed); err != nil {
		srv.log(ctx).Warn("Failed to store credentials", slog.Any("error", err))
	}

	srv.log(ctx).Info("Login succeeded", slog.Int64("userID", user.ID))

	return session, nil
}

// LoginWithSocial signs in via a social provider exchange.
func (srv *sessionService) LoginWithSocial(ctx context.Context, input usecase.SocialLoginInput) (*entity.Session, error) {
	provider := strings.ToLower(strings.TrimSpace(input.Provider))
	if provider == "" || input.Code == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("provider and code are required")
	}

	// Google tokens can be validated locally before the upstream exchange,
	// rejecting garbage without a round trip.
	if provider == "google" && srv.verifier != nil {
		if _, err := srv.verifier.VerifyIDToken(ctx, input.Code); err != nil {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("social token rejected")
		}
	}

	user, err := srv.authGateway.SocialLogin(ctx, provider, input.Code)
	if err != nil {
		// Demo mode mirrors the legacy client: any failed exchange, missing
		// route or transport failure alike, yields the placeholder identity.
		if !srv.allowMockSocialLogin {
			return nil, err
		}

		srv.log(ctx).Warn("Social login exchange failed, using offline placeholder user",
			slog.String("provider", provider),
			slog.Any("error", err),
		)
		user = mockSocialUser(provider)
	}

	session := &entity.Session{
		Token:          srv.minter.Mint(),
		User:           user,
		LoginMethod:    entity.LoginMethodSocial,
		SocialProvider: provider,
	}

	if err := srv.commitSession(ctx, session); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Social login succeeded",
		slog.String("provider", provider),
		slog.Int64("userID", user.ID),
	)

	return session, nil
}

// Register creates an account and signs in with the same credentials.
func (srv *sessionService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.Session, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || input.Secret == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username, email, and secret are required")
	}

	err := srv.authGateway.Register(ctx, &service.RegisterInput{
		Username:    username,
		Email:       email,
		Password:    input.Secret,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		return nil, err
	}

	return srv.Login(ctx, usecase.LoginInput{Identifier: username, Secret: input.Secret})
}

// Logout clears the session unconditionally, no remote call. Store failures
// are logged but the in-memory sign-out always happens.
func (srv *sessionService) Logout(ctx context.Context) {
	srv.mu.Lock()
	srv.session = nil
	srv.mu.Unlock()

	if err := srv.sessionRepo.Clear(ctx); err != nil {
		srv.log(ctx).Warn("Failed to clear persisted session", slog.Any("error", err))
	}
	if err := srv.cartRepo.Clear(ctx); err != nil {
		srv.log(ctx).Warn("Failed to clear cart on logout", slog.Any("error", err))
	}

	srv.log(ctx).Info("Logged out")
}

// UpdateUser merges the patch into the local user snapshot only.
func (srv *sessionService) UpdateUser(ctx context.Context, patch *entity.UserPatch) (*entity.User, error) {
	return srv.applyPatch(ctx, patch)
}

// UpdateUserProfile merges locally and best-effort syncs upstream. The local
// commit always wins: a remote failure downgrades the result to LocalOnly
// instead of rolling anything back.
func (srv *sessionService) UpdateUserProfile(ctx context.Context, patch *entity.UserPatch) (*usecase.UpdateProfileOutput, error) {
	user, err := srv.applyPatch(ctx, patch)
	if err != nil {
		return nil, err
	}

	basicAuth, ok := srv.basicAuth(ctx)
	if !ok {
		return &usecase.UpdateProfileOutput{User: user, SyncState: usecase.SyncStateLocalOnly}, nil
	}

	if err := srv.profiles.UpdateUser(ctx, user.ID, patch, basicAuth); err != nil {
		srv.log(ctx).Warn("Profile sync failed, keeping local changes",
			slog.Int64("userID", user.ID),
			slog.Any("error", err),
		)

		return &usecase.UpdateProfileOutput{User: user, SyncState: usecase.SyncStateLocalOnly}, nil
	}

	return &usecase.UpdateProfileOutput{User: user, SyncState: usecase.SyncStateSynced}, nil
}

// commitSession installs the session in memory and persists it.
func (srv *sessionService) commitSession(ctx context.Context, session *entity.Session) error {
	srv.mu.Lock()
	srv.session = session
	srv.mu.Unlock()

	if err := srv.sessionRepo.Save(ctx, session); err != nil {
		return errors.Wrap(err, "failed to persist session")
	}

	return nil
}

// applyPatch merges the patch into the current user and persists the session.
func (srv *sessionService) applyPatch(ctx context.Context, patch *entity.UserPatch) (*entity.User, error) {
	if patch.Empty() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("no profile fields to update")
	}

	srv.mu.Lock()
	if !srv.session.Authenticated() {
		srv.mu.Unlock()

		return nil, domainerrors.ErrNotAuthenticated
	}

	updated := *srv.session.User
	patch.Apply(&updated)
	srv.session.User = &updated
	session := srv.session
	srv.mu.Unlock()

	if err := srv.sessionRepo.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to persist updated user")
	}

	return &updated, nil
}

// basicAuth unseals the stored credentials into a ready Basic token. Social
// sessions have none, which is the normal LocalOnly case.
func (srv *sessionService) basicAuth(ctx context.Context) (string, bool) {
	sealed, err := srv.sessionRepo.LoadCredentials(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrCredentialsNotFound) {
			srv.log(ctx).Warn("Failed to load stored credentials", slog.Any("error", err))
		}

		return "", false
	}

	plain, err := srv.sealer.Open(sealed)
	if err != nil {
		srv.log(ctx).Warn("Failed to unseal stored credentials", slog.Any("error", err))

		return "", false
	}

	return base64.StdEncoding.EncodeToString(plain), true
}

// mockSocialUser fabricates the placeholder identity used when the social
// route is absent and the offline demo mode is enabled. The id is negative so
// it can never collide with an upstream user id.
func mockSocialUser(provider string) *entity.User {
	return &entity.User{
		ID:          -1,
		Username:    provider + "-user",
		Email:       provider + "user@example.com",
		DisplayName: strings.ToUpper(provider[:1]) + provider[1:] + " User",
		Role:        entity.RoleCustomer,
	}
}
