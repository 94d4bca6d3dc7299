package relation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	relationRepo "pena.web.id/penablog/internal/modules/relation/repository"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/pkg/apperror"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Profile{}, &entity.Settings{},
		&entity.Subscription{}, &entity.Block{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	user := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Active:       true,
		Profile:      &entity.Profile{DisplayName: username},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newService(db *gorm.DB) RelationService {
	return NewRelationService(relationRepo.NewRelationRepository(db), userRepo.NewUserRepository(db))
}

func TestToggleSubscription(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle on then off", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")

		on, err := svc.ToggleSubscription(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, on)

		off, err := svc.ToggleSubscription(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, off)

		var count int64
		db.Model(&entity.Subscription{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("self subscription rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")

		_, err := svc.ToggleSubscription(ctx, alice.ID, alice.ID)
		assert.ErrorIs(t, err, apperror.ErrBadRequest)
	})

	t.Run("suspended actor rejected without side effects", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		require.NoError(t, db.Model(&entity.User{}).Where("id = ?", alice.ID).Update("suspended", true).Error)

		_, err := svc.ToggleSubscription(ctx, alice.ID, bob.ID)
		assert.ErrorIs(t, err, apperror.ErrForbidden)

		var count int64
		db.Model(&entity.Subscription{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("blocked pair rejected either direction", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		require.NoError(t, db.Create(&entity.Block{BlockerID: bob.ID, BlockedID: alice.ID}).Error)

		_, err := svc.ToggleSubscription(ctx, alice.ID, bob.ID)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("unknown target is not found", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		ghost := createUser(t, db, "ghost")
		require.NoError(t, db.Delete(&entity.User{}, "id = ?", ghost.ID).Error)

		_, err := svc.ToggleSubscription(ctx, alice.ID, ghost.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestToggleBlock(t *testing.T) {
	ctx := context.Background()

	t.Run("blocking removes subscriptions both directions", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")

		require.NoError(t, db.Create(&entity.Subscription{SubscriberID: alice.ID, SubscribedID: bob.ID}).Error)
		require.NoError(t, db.Create(&entity.Subscription{SubscriberID: bob.ID, SubscribedID: alice.ID}).Error)

		on, err := svc.ToggleBlock(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, on)

		var subs int64
		db.Model(&entity.Subscription{}).Count(&subs)
		assert.Zero(t, subs)
	})

	t.Run("toggle off removes the block", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")

		_, err := svc.ToggleBlock(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		off, err := svc.ToggleBlock(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, off)

		var blocks int64
		db.Model(&entity.Block{}).Count(&blocks)
		assert.Zero(t, blocks)
	})

	t.Run("self block rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")

		_, err := svc.ToggleBlock(ctx, alice.ID, alice.ID)
		assert.ErrorIs(t, err, apperror.ErrBadRequest)
	})
}
