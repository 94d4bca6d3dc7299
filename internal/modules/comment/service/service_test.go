package comment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	commentRepo "pena.web.id/penablog/internal/modules/comment/repository"
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
	post := &entity.Post{
		Title:     "a post",
		Slug:      "a-post-" + author.Username,
		UserID:    author.ID,
		Published: published,
		Content:   datatypes.JSON([]byte(`{"blocks":[{"type":"paragraph","data":{"text":"body"}}]}`)),
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func newService(db *gorm.DB) CommentService {
	return NewCommentService(
		commentRepo.NewCommentRepository(db),
		postRepo.NewPostRepository(db),
		userRepo.NewUserRepository(db),
		relationRepo.NewRelationRepository(db),
		nil,
	)
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates on a visible post", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		post := createPost(t, db, alice, true)

		comment, err := svc.Create(ctx, bob.ID, post.ID, "  nice write-up  ")
		require.NoError(t, err)
		assert.Equal(t, "nice write-up", comment.Content)
		assert.False(t, comment.IsEdited)
	})

	t.Run("strips markup and rejects empty result", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		post := createPost(t, db, alice, true)

		_, err := svc.Create(ctx, alice.ID, post.ID, "<script>alert(1)</script>")
		assert.ErrorIs(t, err, apperror.ErrBadRequest)
	})

	t.Run("hidden post reads as not found", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		draft := createPost(t, db, alice, false)

		_, err := svc.Create(ctx, bob.ID, draft.ID, "hello")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("blocked commenter gets not found", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		post := createPost(t, db, alice, true)
		require.NoError(t, db.Create(&entity.Block{BlockerID: alice.ID, BlockedID: bob.ID}).Error)

		_, err := svc.Create(ctx, bob.ID, post.ID, "hello")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("suspended commenter is forbidden", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		post := createPost(t, db, alice, true)
		require.NoError(t, db.Model(&entity.User{}).Where("id = ?", bob.ID).Update("suspended", true).Error)

		_, err := svc.Create(ctx, bob.ID, post.ID, "hello")
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestUpdateComment(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice, true)

	comment, err := svc.Create(ctx, bob.ID, post.ID, "first draft")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, bob.ID, comment.ID, "second draft")
	require.NoError(t, err)
	assert.Equal(t, "second draft", updated.Content)
	assert.True(t, updated.IsEdited)

	var stored entity.Comment
	require.NoError(t, db.First(&stored, "id = ?", comment.ID).Error)
	assert.True(t, stored.IsEdited)

	_, err = svc.Update(ctx, alice.ID, comment.ID, "hijack")
	assert.ErrorIs(t, err, apperror.ErrNotFound, "only the author can edit")
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, true)

	comment, err := svc.Create(ctx, alice.ID, post.ID, "to be removed")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, alice.ID, comment.ID))

	var stored entity.Comment
	require.NoError(t, db.First(&stored, "id = ?", comment.ID).Error)
	assert.True(t, stored.IsDeleted, "delete is soft on the user surface")
}
