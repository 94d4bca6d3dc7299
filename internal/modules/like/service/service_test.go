package like

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	commentRepo "pena.web.id/penablog/internal/modules/comment/repository"
	likeRepo "pena.web.id/penablog/internal/modules/like/repository"
	postRepo "pena.web.id/penablog/internal/modules/post/repository"
	relationRepo "pena.web.id/penablog/internal/modules/relation/repository"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/pkg/apperror"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Profile{}, &entity.Settings{},
		&entity.Post{}, &entity.PostTag{}, &entity.Comment{},
		&entity.Like{}, &entity.CommentLike{}, &entity.Block{},
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

func createPost(t *testing.T, db *gorm.DB, author *entity.User, published bool) *entity.Post {
	t.Helper()
	post := &entity.Post{Title: "a post", Slug: "a-post-" + author.Username, UserID: author.ID, Published: published}
	require.NoError(t, db.Create(post).Error)
	return post
}

func newService(db *gorm.DB) LikeService {
	return NewLikeService(
		likeRepo.NewLikeRepository(db),
		postRepo.NewPostRepository(db),
		commentRepo.NewCommentRepository(db),
		userRepo.NewUserRepository(db),
		relationRepo.NewRelationRepository(db),
	)
}

func TestTogglePostLike(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle on then off", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		post := createPost(t, db, alice, true)

		on, err := svc.TogglePostLike(ctx, bob.ID, post.ID)
		require.NoError(t, err)
		assert.True(t, on)

		off, err := svc.TogglePostLike(ctx, bob.ID, post.ID)
		require.NoError(t, err)
		assert.False(t, off)

		var count int64
		db.Model(&entity.Like{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("invisible post reads as not found", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		draft := createPost(t, db, alice, false)

		_, err := svc.TogglePostLike(ctx, bob.ID, draft.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("blocked pair reads as not found", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		post := createPost(t, db, alice, true)
		require.NoError(t, db.Create(&entity.Block{BlockerID: bob.ID, BlockedID: alice.ID}).Error)

		_, err := svc.TogglePostLike(ctx, bob.ID, post.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("suspended actor is forbidden", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		post := createPost(t, db, alice, true)
		require.NoError(t, db.Model(&entity.User{}).Where("id = ?", bob.ID).Update("suspended", true).Error)

		_, err := svc.TogglePostLike(ctx, bob.ID, post.ID)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestToggleCommentLike(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle on then off", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		post := createPost(t, db, alice, true)
		comment := &entity.Comment{Content: "hi", UserID: alice.ID, PostID: post.ID}
		require.NoError(t, db.Create(comment).Error)

		on, err := svc.ToggleCommentLike(ctx, bob.ID, comment.ID)
		require.NoError(t, err)
		assert.True(t, on)

		off, err := svc.ToggleCommentLike(ctx, bob.ID, comment.ID)
		require.NoError(t, err)
		assert.False(t, off)
	})

	t.Run("deleted comment reads as not found", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		post := createPost(t, db, alice, true)
		comment := &entity.Comment{Content: "gone", UserID: alice.ID, PostID: post.ID, IsDeleted: true}
		require.NoError(t, db.Create(comment).Error)

		_, err := svc.ToggleCommentLike(ctx, bob.ID, comment.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
