package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
)

// CommentRow is a comment annotated for display.
type CommentRow struct {
	ID                uuid.UUID
	Content           string
	IsEdited          bool
	CreatedAt         time.Time
	UserID            uuid.UUID
	AuthorUsername    string
	AuthorDisplayName string
	AuthorAvatarURL   *string
	LikesCount        int64
	IsLiked           bool
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Comment, error)
	// ListVisibleByPost filters out deleted comments, suspended
	// commenters and commenters blocked relative to the viewer.
	ListVisibleByPost(ctx context.Context, postID uuid.UUID, viewer *uuid.UUID) ([]CommentRow, error)
	Update(ctx context.Context, id uuid.UUID, content string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListVisibleByPost(ctx context.Context, postID uuid.UUID, viewer *uuid.UUID) ([]CommentRow, error) {
	query := r.db.WithContext(ctx).Model(&entity.Comment{}).
		Joins("JOIN users ON users.id = comments.user_id").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("comments.post_id = ?", postID).
		Where("comments.is_deleted = ?", false).
		Where("users.suspended = ?", false).
		Order("comments.created_at ASC")

	selectExpr := `comments.id, comments.content, comments.is_edited, comments.created_at, comments.user_id,
		users.username AS author_username,
		profiles.display_name AS author_display_name,
		profiles.avatar_url AS author_avatar_url,
		(SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) AS likes_count`

	if viewer != nil {
		query = query.Where(
			"comments.user_id = ? OR NOT EXISTS (SELECT 1 FROM blocks WHERE (blocks.blocker_id = ? AND blocks.blocked_id = comments.user_id) OR (blocks.blocker_id = comments.user_id AND blocks.blocked_id = ?))",
			*viewer, *viewer, *viewer,
		)
		query = query.Select(
			selectExpr+`, EXISTS (SELECT 1 FROM comment_likes WHERE comment_likes.comment_id = comments.id AND comment_likes.user_id = ?) AS is_liked`,
			*viewer,
		)
	} else {
		query = query.Select(selectExpr + `, ? AS is_liked`, false)
	}

	var rows []CommentRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *commentRepository) Update(ctx context.Context, id uuid.UUID, content string) error {
	return r.db.WithContext(ctx).Model(&entity.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "is_edited": true}).Error
}

func (r *commentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Comment{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (r *commentRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&entity.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Comment{}, "id = ?", id).Error
	})
}
