package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
)

// CategoryWithCount is a category annotated with how many live published
// posts it holds.
type CategoryWithCount struct {
	entity.Category
	PostsCount int64 `json:"posts_count"`
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	ListWithCounts(ctx context.Context) ([]CategoryWithCount, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListWithCounts(ctx context.Context) ([]CategoryWithCount, error) {
	var rows []CategoryWithCount
	err := r.db.WithContext(ctx).Model(&entity.Category{}).
		Select(`categories.*,
			(SELECT COUNT(*) FROM posts
				JOIN users ON users.id = posts.user_id
				WHERE posts.category_id = categories.id
				AND posts.published = true
				AND posts.is_deleted = false
				AND posts.suspended = false
				AND users.suspended = false) AS posts_count`).
		Order("categories.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Model(&entity.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"slug":        category.Slug,
			"description": category.Description,
			"color_light": category.ColorLight,
			"color_dark":  category.ColorDark,
		}).Error
}

// Delete detaches posts first so they fall back to uncategorized.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Post{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Category{}, "id = ?", id).Error
	})
}
