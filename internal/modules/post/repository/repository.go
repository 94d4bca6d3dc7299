package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	"pena.web.id/penablog/internal/visibility"
)

// PostPatch is an explicit field-level update for a post row. PublishedAt
// is only ever set on the first unpublished-to-published transition.
type PostPatch struct {
	Title          *string
	Slug           *string
	Summary        *string
	CategoryID     *uuid.UUID
	CoverImageURL  *string
	CoverImagePath *string
	ClearCover     bool
	Published      *bool
	PublishedAt    *time.Time
	IsDeleted      *bool
	Suspended      *bool
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	ReplaceTags(ctx context.Context, postID uuid.UUID, tags []string) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	// FindOwned fetches a post only when it belongs to userID; a
	// mismatch reads as not found.
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Post, error)
	FindVisibleBySlug(ctx context.Context, slug string, viewer *uuid.UUID) (*entity.Post, error)
	FindAuthorBySlug(ctx context.Context, slug string, userID uuid.UUID) (*entity.Post, error)
	ListByAuthor(ctx context.Context, userID uuid.UUID) ([]entity.Post, error)
	Update(ctx context.Context, id uuid.UUID, patch PostPatch) error
	UpdateContent(ctx context.Context, id uuid.UUID, content datatypes.JSON, readTime int) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	LikeCounts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	CommentCounts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// ReplaceTags swaps the full tag set of a post.
func (r *postRepository) ReplaceTags(ctx context.Context, postID uuid.UUID, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&entity.PostTag{}).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		rows := make([]entity.PostTag, 0, len(tags))
		seen := map[string]bool{}
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			key := strings.ToLower(tag)
			if tag == "" || seen[key] {
				continue
			}
			seen[key] = true
			rows = append(rows, entity.PostTag{PostID: postID, Name: tag})
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Category").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindVisibleBySlug(ctx context.Context, slug string, viewer *uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Category").
		Preload("Author").
		Preload("Author.Profile").
		Scopes(visibility.VisiblePosts(viewer)).
		Where("posts.slug = ?", slug).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindAuthorBySlug(ctx context.Context, slug string, userID uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Category").
		Preload("Author").
		Preload("Author.Profile").
		Where("slug = ? AND user_id = ? AND is_deleted = ?", slug, userID, false).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByAuthor returns every post of the author, trashed ones included;
// this feeds the author dashboard, not any public surface.
func (r *postRepository) ListByAuthor(ctx context.Context, userID uuid.UUID) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Category").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, id uuid.UUID, patch PostPatch) error {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Slug != nil {
		updates["slug"] = *patch.Slug
	}
	if patch.Summary != nil {
		updates["summary"] = *patch.Summary
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}
	if patch.ClearCover {
		updates["cover_image_url"] = nil
		updates["cover_image_path"] = nil
	} else {
		if patch.CoverImageURL != nil {
			updates["cover_image_url"] = *patch.CoverImageURL
		}
		if patch.CoverImagePath != nil {
			updates["cover_image_path"] = *patch.CoverImagePath
		}
	}
	if patch.Published != nil {
		updates["published"] = *patch.Published
	}
	if patch.PublishedAt != nil {
		updates["published_at"] = *patch.PublishedAt
	}
	if patch.IsDeleted != nil {
		updates["is_deleted"] = *patch.IsDeleted
	}
	if patch.Suspended != nil {
		updates["suspended"] = *patch.Suspended
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&entity.Post{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *postRepository) UpdateContent(ctx context.Context, id uuid.UUID, content datatypes.JSON, readTime int) error {
	return r.db.WithContext(ctx).Model(&entity.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "read_time": readTime}).Error
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&entity.Like{}, &entity.PostTag{}} {
			if err := tx.Where("post_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Post{}, "id = ?", id).Error
	})
}

func (r *postRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

type countRow struct {
	PostID uuid.UUID
	Total  int64
}

func (r *postRepository) LikeCounts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.groupCount(ctx, &entity.Like{}, postIDs)
}

func (r *postRepository) CommentCounts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []countRow
	if len(postIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	err := r.db.WithContext(ctx).Model(&entity.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ? AND is_deleted = ?", postIDs, false).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows), nil
}

func (r *postRepository) groupCount(ctx context.Context, model interface{}, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []countRow
	if len(postIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	err := r.db.WithContext(ctx).Model(model).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows), nil
}

func countsToMap(rows []countRow) map[uuid.UUID]int64 {
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts
}
