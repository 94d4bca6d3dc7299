package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	categoryDto "pena.web.id/penablog/internal/modules/category/dto"
	categoryRepo "pena.web.id/penablog/internal/modules/category/repository"
	"pena.web.id/penablog/pkg/apperror"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Profile{}, &entity.Settings{},
		&entity.Category{}, &entity.Post{},
	))
	return db
}

func newService(db *gorm.DB) CategoryService {
	return NewCategoryService(categoryRepo.NewCategoryRepository(db))
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	created, err := svc.Create(ctx, categoryDto.CategoryRequest{Name: "Software Engineering"})
	require.NoError(t, err)
	assert.Equal(t, "software-engineering", created.Slug)

	_, err = svc.Create(ctx, categoryDto.CategoryRequest{Name: "Software Engineering"})
	assert.ErrorIs(t, err, apperror.ErrConflict, "same name slugs to the same value")
}

func TestListCategoriesCounts(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	author := &entity.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Active: true}
	require.NoError(t, db.Create(author).Error)

	tech, err := svc.Create(ctx, categoryDto.CategoryRequest{Name: "Tech"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, categoryDto.CategoryRequest{Name: "Art"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&entity.Post{
		Title: "live", Slug: "live", UserID: author.ID, Published: true, CategoryID: &tech.ID,
	}).Error)
	require.NoError(t, db.Create(&entity.Post{
		Title: "draft", Slug: "draft", UserID: author.ID, CategoryID: &tech.ID,
	}).Error)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Art", list[0].Name, "alphabetical order")
	assert.Equal(t, "Tech", list[1].Name)
	assert.EqualValues(t, 1, list[1].PostsCount, "drafts do not count")
}

func TestDeleteCategoryDetachesPosts(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	author := &entity.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Active: true}
	require.NoError(t, db.Create(author).Error)

	tech, err := svc.Create(ctx, categoryDto.CategoryRequest{Name: "Tech"})
	require.NoError(t, err)
	post := &entity.Post{Title: "p", Slug: "p", UserID: author.ID, Published: true, CategoryID: &tech.ID}
	require.NoError(t, db.Create(post).Error)

	require.NoError(t, svc.Delete(ctx, tech.ID))

	var got entity.Post
	require.NoError(t, db.First(&got, "id = ?", post.ID).Error)
	assert.Nil(t, got.CategoryID, "posts fall back to uncategorized")

	err = svc.Delete(ctx, tech.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
