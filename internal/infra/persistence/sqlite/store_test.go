package sqlite

import (
	"context"
	"testing"

	"shoplocal/internal/domain/entity"
	"shoplocal/internal/domain/repository"
	"shoplocal/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.SessionModel{},
		&model.CredentialModel{},
		&model.VisitModel{},
		&model.CartItemModel{},
	))

	return db
}

func TestSessionRepository_LoadEmptyStore(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	_, err := repo.Load(context.Background())

	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_SaveAndLoadRoundTrip(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	ctx := context.Background()

	session := &entity.Session{
		Token: "tok-1",
		User: &entity.User{
			ID:          7,
			Username:    "bob",
			Email:       "bob@example.com",
			DisplayName: "Bob",
			Role:        entity.RoleVendor,
			Phone:       "555-0100",
		},
		LoginMethod: entity.LoginMethodPassword,
	}

	require.NoError(t, repo.Save(ctx, session))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", loaded.Token)
	assert.Equal(t, session.User, loaded.User)
	assert.Equal(t, entity.LoginMethodPassword, loaded.LoginMethod)
	assert.True(t, loaded.Authenticated())
}

func TestSessionRepository_SaveReplacesPreviousSession(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	ctx := context.Background()

	first := &entity.Session{Token: "tok-1", User: &entity.User{ID: 1, Username: "a"}, LoginMethod: entity.LoginMethodPassword}
	second := &entity.Session{Token: "tok-2", User: &entity.User{ID: 2, Username: "b"}, LoginMethod: entity.LoginMethodSocial, SocialProvider: "google"}

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", loaded.Token)
	assert.Equal(t, int64(2), loaded.User.ID)
	assert.Equal(t, "google", loaded.SocialProvider)
}

func TestSessionRepository_ClearRemovesSessionAndCredentials(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	ctx := context.Background()

	session := &entity.Session{Token: "tok", User: &entity.User{ID: 1}, LoginMethod: entity.LoginMethodPassword}
	require.NoError(t, repo.Save(ctx, session))
	require.NoError(t, repo.SaveCredentials(ctx, []byte("sealed")))

	require.NoError(t, repo.Clear(ctx))

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	_, err = repo.LoadCredentials(ctx)
	assert.ErrorIs(t, err, repository.ErrCredentialsNotFound)
}

func TestSessionRepository_ClearEmptyStoreIsNoop(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	assert.NoError(t, repo.Clear(context.Background()))
}

func TestSessionRepository_CredentialsRoundTrip(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveCredentials(ctx, []byte("sealed-1")))
	require.NoError(t, repo.SaveCredentials(ctx, []byte("sealed-2")))

	sealed, err := repo.LoadCredentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed-2"), sealed)
}

func TestVisitRepository_MarkSeenIsIdempotent(t *testing.T) {
	repo := NewVisitRepository(newTestDB(t))
	ctx := context.Background()

	seen, err := repo.Seen(ctx, 12)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, repo.MarkSeen(ctx, 12))
	require.NoError(t, repo.MarkSeen(ctx, 12))
	require.NoError(t, repo.MarkSeen(ctx, 34))

	seen, err = repo.Seen(ctx, 12)
	require.NoError(t, err)
	assert.True(t, seen)

	ids, err := repo.All(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{12, 34}, ids)
}

func TestCartRepository_LoadEmptyStoreYieldsEmptyCart(t *testing.T) {
	repo := NewCartRepository(newTestDB(t))

	cart, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartRepository_SaveAndLoadPreservesOrder(t *testing.T) {
	repo := NewCartRepository(newTestDB(t))
	ctx := context.Background()

	cart := &entity.Cart{Items: []entity.CartItem{
		{ProductID: 42, Name: "Sourdough Loaf", Price: 12.50, Quantity: 2},
		{ProductID: 7, Name: "Honey Jar", Price: 8, Quantity: 1},
	}}

	require.NoError(t, repo.Save(ctx, cart))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, int64(42), loaded.Items[0].ProductID)
	assert.Equal(t, int64(7), loaded.Items[1].ProductID)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
}

func TestCartRepository_SaveEmptyCartClearsStore(t *testing.T) {
	repo := NewCartRepository(newTestDB(t))
	ctx := context.Background()

	cart := &entity.Cart{Items: []entity.CartItem{{ProductID: 1, Name: "A", Price: 1, Quantity: 1}}}
	require.NoError(t, repo.Save(ctx, cart))

	require.NoError(t, repo.Save(ctx, &entity.Cart{}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
}

func TestCartRepository_ClearDropsAllLines(t *testing.T) {
	repo := NewCartRepository(newTestDB(t))
	ctx := context.Background()

	cart := &entity.Cart{Items: []entity.CartItem{{ProductID: 1, Name: "A", Price: 1, Quantity: 3}}}
	require.NoError(t, repo.Save(ctx, cart))

	require.NoError(t, repo.Clear(ctx))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
}
