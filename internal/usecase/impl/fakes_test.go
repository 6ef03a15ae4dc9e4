package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"shoplocal/internal/domain/entity"
	"shoplocal/internal/domain/repository"
	"shoplocal/internal/domain/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSessionRepo is an in-memory SessionRepository with error injection.
type fakeSessionRepo struct {
	mu      sync.Mutex
	session *entity.Session
	sealed  []byte

	loadErr  error
	saveErr  error
	clearErr error
}

func (f *fakeSessionRepo) Load(context.Context) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.session == nil {
		return nil, repository.ErrSessionNotFound
	}

	return f.session, nil
}

func (f *fakeSessionRepo) Save(_ context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}
	f.session = session

	return nil
}

func (f *fakeSessionRepo) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.clearErr != nil {
		return f.clearErr
	}
	f.session = nil
	f.sealed = nil

	return nil
}

func (f *fakeSessionRepo) SaveCredentials(_ context.Context, sealed []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sealed = sealed

	return nil
}

func (f *fakeSessionRepo) LoadCredentials(context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sealed == nil {
		return nil, repository.ErrCredentialsNotFound
	}

	return f.sealed, nil
}

// fakeCartRepo is an in-memory CartRepository.
type fakeCartRepo struct {
	mu      sync.Mutex
	items   []entity.CartItem
	loadErr error
	saveErr error
}

func (f *fakeCartRepo) Load(context.Context) (*entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loadErr != nil {
		return nil, f.loadErr
	}
	items := make([]entity.CartItem, len(f.items))
	copy(items, f.items)

	return &entity.Cart{Items: items}, nil
}

func (f *fakeCartRepo) Save(_ context.Context, cart *entity.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}
	f.items = make([]entity.CartItem, len(cart.Items))
	copy(f.items, cart.Items)

	return nil
}

func (f *fakeCartRepo) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil

	return nil
}

// fakeVisitRepo is an in-memory VisitRepository.
type fakeVisitRepo struct {
	mu   sync.Mutex
	seen map[int64]bool
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{seen: make(map[int64]bool)}
}

func (f *fakeVisitRepo) Seen(_ context.Context, vendorID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.seen[vendorID], nil
}

func (f *fakeVisitRepo) MarkSeen(_ context.Context, vendorID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen[vendorID] = true

	return nil
}

func (f *fakeVisitRepo) All(context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]int64, 0, len(f.seen))
	for id := range f.seen {
		ids = append(ids, id)
	}

	return ids, nil
}

// fakeAuthGateway dispatches to function fields.
type fakeAuthGateway struct {
	loginFn    func(ctx context.Context, identifier, secret string) (*entity.User, error)
	registerFn func(ctx context.Context, input *service.RegisterInput) error
	socialFn   func(ctx context.Context, provider, code string) (*entity.User, error)
}

func (f *fakeAuthGateway) Login(ctx context.Context, identifier, secret string) (*entity.User, error) {
	return f.loginFn(ctx, identifier, secret)
}

func (f *fakeAuthGateway) Register(ctx context.Context, input *service.RegisterInput) error {
	return f.registerFn(ctx, input)
}

func (f *fakeAuthGateway) SocialLogin(ctx context.Context, provider, code string) (*entity.User, error) {
	return f.socialFn(ctx, provider, code)
}

// fakeProfileGateway records remote update attempts.
type fakeProfileGateway struct {
	mu        sync.Mutex
	calls     int
	lastAuth  string
	updateErr error
}

func (f *fakeProfileGateway) UpdateUser(_ context.Context, _ int64, _ *entity.UserPatch, basicAuth string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastAuth = basicAuth

	return f.updateErr
}

// fakeVendorGateway dispatches to function fields.
type fakeVendorGateway struct {
	nearbyFn func(ctx context.Context, lat, lng, radiusKm float64) ([]entity.Vendor, error)
	bySlugFn func(ctx context.Context, slug string) (*entity.Vendor, error)
	visitErr error
	visits   []int64
}

func (f *fakeVendorGateway) VendorsNearby(ctx context.Context, lat, lng, radiusKm float64) ([]entity.Vendor, error) {
	return f.nearbyFn(ctx, lat, lng, radiusKm)
}

func (f *fakeVendorGateway) VendorBySlug(ctx context.Context, slug string) (*entity.Vendor, error) {
	return f.bySlugFn(ctx, slug)
}

func (f *fakeVendorGateway) RecordVisit(_ context.Context, vendorID int64) error {
	f.visits = append(f.visits, vendorID)

	return f.visitErr
}

// fakeListingGateway serves a fixed page.
type fakeListingGateway struct {
	page []entity.Listing
	err  error
}

func (f *fakeListingGateway) Places(context.Context, int, int) ([]entity.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.page, nil
}

func (f *fakeListingGateway) Place(context.Context, int64) (*entity.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.page) == 0 {
		return nil, nil
	}

	return &f.page[0], nil
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []*service.VendorVisitEvent
	err    error
}

func (f *fakePublisher) PublishVendorVisit(_ context.Context, event *service.VendorVisitEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)

	return f.err
}

func (f *fakePublisher) Close() error { return nil }

// fakeQRService returns a fixed payload.
type fakeQRService struct {
	png []byte
	err error
}

func (f *fakeQRService) StorefrontPNG(string) ([]byte, error) {
	return f.png, f.err
}

// seqTokenMinter mints deterministic tokens.
type seqTokenMinter struct {
	mu sync.Mutex
	n  int
}

func (m *seqTokenMinter) Mint() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++

	return fmt.Sprintf("token-%d", m.n)
}

// failingSealer mimics disabled credential storage.
type failingSealer struct{}

func (failingSealer) Seal([]byte) ([]byte, error) {
	return nil, fmt.Errorf("credential storage disabled")
}

func (failingSealer) Open([]byte) ([]byte, error) {
	return nil, fmt.Errorf("credential storage disabled")
}

// reverseSealer is a trivially invertible CredentialSealer for tests.
type reverseSealer struct{}

func (reverseSealer) Seal(plain []byte) ([]byte, error) {
	return reverseBytes(plain), nil
}

func (reverseSealer) Open(sealed []byte) ([]byte, error) {
	return reverseBytes(sealed), nil
}

func reverseBytes(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[len(in)-1-i] = b
	}

	return out
}

// fakeVerifier accepts or rejects every token.
type fakeVerifier struct {
	user *service.OAuthUser
	err  error
}

func (f *fakeVerifier) VerifyIDToken(context.Context, string) (*service.OAuthUser, error) {
	return f.user, f.err
}
