package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
)

type LikeRepository interface {
	HasPostLike(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	CreatePostLike(ctx context.Context, userID, postID uuid.UUID) error
	DeletePostLike(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	HasCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
	CreateCommentLike(ctx context.Context, userID, commentID uuid.UUID) error
	DeleteCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) HasPostLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) CreatePostLike(ctx context.Context, userID, postID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entity.Like{UserID: userID, PostID: postID}).Error
}

func (r *likeRepository) DeletePostLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&entity.Like{})
	return result.RowsAffected > 0, result.Error
}

func (r *likeRepository) HasCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) CreateCommentLike(ctx context.Context, userID, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entity.CommentLike{UserID: userID, CommentID: commentID}).Error
}

func (r *likeRepository) DeleteCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&entity.CommentLike{})
	return result.RowsAffected > 0, result.Error
}
