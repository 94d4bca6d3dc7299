package visibility

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pena.web.id/penablog/internal/entity"
)

func TestPostVisible(t *testing.T) {
	author := uuid.New()
	other := uuid.New()

	published := &entity.Post{UserID: author, Published: true}
	draft := &entity.Post{UserID: author, Published: false}
	trashed := &entity.Post{UserID: author, Published: true, IsDeleted: true}
	suspended := &entity.Post{UserID: author, Published: true, Suspended: true}

	t.Run("anonymous sees published", func(t *testing.T) {
		assert.True(t, PostVisible(nil, published, false, false))
	})

	t.Run("anonymous never sees drafts", func(t *testing.T) {
		assert.False(t, PostVisible(nil, draft, false, false))
	})

	t.Run("owner sees own draft", func(t *testing.T) {
		assert.True(t, PostVisible(&author, draft, false, false))
	})

	t.Run("non-owner never sees drafts", func(t *testing.T) {
		assert.False(t, PostVisible(&other, draft, false, false))
	})

	t.Run("trashed is hidden from everyone including owner", func(t *testing.T) {
		assert.False(t, PostVisible(nil, trashed, false, false))
		assert.False(t, PostVisible(&author, trashed, false, false))
	})

	t.Run("suspended post hidden except from owner", func(t *testing.T) {
		assert.False(t, PostVisible(&other, suspended, false, false))
		assert.True(t, PostVisible(&author, suspended, false, false))
	})

	t.Run("suspended author hides posts from everyone", func(t *testing.T) {
		assert.False(t, PostVisible(nil, published, true, false))
		assert.False(t, PostVisible(&author, published, true, false))
	})

	t.Run("block hides posts both directions", func(t *testing.T) {
		assert.False(t, PostVisible(&other, published, false, true))
	})

	t.Run("block never hides own posts", func(t *testing.T) {
		assert.True(t, PostVisible(&author, published, false, true))
	})
}

func TestCommentVisible(t *testing.T) {
	comment := &entity.Comment{}
	deleted := &entity.Comment{IsDeleted: true}

	assert.True(t, CommentVisible(comment, false, false))
	assert.False(t, CommentVisible(deleted, false, false))
	assert.False(t, CommentVisible(comment, true, false))
	assert.False(t, CommentVisible(comment, false, true))
}
