package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
)

type ProfileRepository interface {
	// FindActiveByUsername only matches active, non-suspended accounts;
	// everything else reads as not found.
	FindActiveByUsername(ctx context.Context, username string) (*entity.User, error)
	CountPublishedPosts(ctx context.Context, userID uuid.UUID) (int64, error)
	LatestPublishedPosts(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Post, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindActiveByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("LOWER(username) = LOWER(?)", username).
		Where("active = ? AND suspended = ?", true, false).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *profileRepository) CountPublishedPosts(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Post{}).
		Where("user_id = ? AND published = ? AND is_deleted = ? AND suspended = ?",
			userID, true, false, false).
		Count(&count).Error
	return count, err
}

func (r *profileRepository) LatestPublishedPosts(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Category").
		Where("user_id = ? AND published = ? AND is_deleted = ? AND suspended = ?",
			userID, true, false, false).
		Order("published_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
