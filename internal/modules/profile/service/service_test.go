package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	postRepo "pena.web.id/penablog/internal/modules/post/repository"
	profileRepo "pena.web.id/penablog/internal/modules/profile/repository"
	relationRepo "pena.web.id/penablog/internal/modules/relation/repository"
	"pena.web.id/penablog/pkg/apperror"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Profile{}, &entity.Settings{},
		&entity.Category{}, &entity.Post{}, &entity.PostTag{},
		&entity.Comment{}, &entity.Like{},
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

func publish(t *testing.T, db *gorm.DB, author *entity.User, title string, ago time.Duration) *entity.Post {
	t.Helper()
	publishedAt := time.Now().Add(-ago)
	post := &entity.Post{Title: title, Slug: title, UserID: author.ID, Published: true, PublishedAt: &publishedAt}
	require.NoError(t, db.Create(post).Error)
	return post
}

func newService(db *gorm.DB) ProfileService {
	return NewProfileService(
		profileRepo.NewProfileRepository(db),
		postRepo.NewPostRepository(db),
		relationRepo.NewRelationRepository(db),
	)
}

func TestGetByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("stats and latest posts", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		fan := createUser(t, db, "fan")
		require.NoError(t, db.Create(&entity.Subscription{SubscriberID: fan.ID, SubscribedID: alice.ID}).Error)

		publish(t, db, alice, "older", 2*time.Hour)
		publish(t, db, alice, "newer", time.Hour)
		// Drafts do not count toward the published total.
		require.NoError(t, db.Create(&entity.Post{Title: "draft", Slug: "draft", UserID: alice.ID}).Error)

		view, err := svc.GetByUsername(ctx, "alice", nil)
		require.NoError(t, err)
		assert.EqualValues(t, 2, view.Stats.Posts)
		assert.EqualValues(t, 1, view.Stats.Subscribers)
		assert.EqualValues(t, 0, view.Stats.Subscribing)
		require.Len(t, view.LatestPosts, 2)
		assert.Equal(t, "newer", view.LatestPosts[0].Title)
		assert.False(t, view.IsMe)
		assert.False(t, view.IsFollowing)
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		createUser(t, db, "alice")

		view, err := svc.GetByUsername(ctx, "ALICE", nil)
		require.NoError(t, err)
		assert.Equal(t, "alice", view.Username)
	})

	t.Run("viewer relation flags", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		require.NoError(t, db.Create(&entity.Subscription{SubscriberID: bob.ID, SubscribedID: alice.ID}).Error)

		view, err := svc.GetByUsername(ctx, "alice", &bob.ID)
		require.NoError(t, err)
		assert.False(t, view.IsMe)
		assert.True(t, view.IsFollowing)

		own, err := svc.GetByUsername(ctx, "alice", &alice.ID)
		require.NoError(t, err)
		assert.True(t, own.IsMe)
		assert.False(t, own.IsFollowing)
	})

	t.Run("block hides the post list but keeps real stats", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		publish(t, db, alice, "hidden-from-bob", time.Hour)
		require.NoError(t, db.Create(&entity.Block{BlockerID: alice.ID, BlockedID: bob.ID}).Error)

		view, err := svc.GetByUsername(ctx, "alice", &bob.ID)
		require.NoError(t, err)
		assert.True(t, view.IsBlocked)
		assert.False(t, view.IsFollowing)
		assert.EqualValues(t, 1, view.Stats.Posts)
		assert.Empty(t, view.LatestPosts)
	})

	t.Run("suspended profile reads as absent", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		require.NoError(t, db.Model(&entity.User{}).Where("id = ?", alice.ID).Update("suspended", true).Error)

		_, err := svc.GetByUsername(ctx, "alice", nil)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
