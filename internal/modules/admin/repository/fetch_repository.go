package repository

import (
	"context"

	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
)

// FetchRepository backs the admin dashboard listings. These queries skip
// the visibility rules on purpose: moderation needs to see everything.
type FetchRepository interface {
	ListUsers(ctx context.Context, query string, page, limit int) ([]entity.User, int64, error)
	ListPosts(ctx context.Context, query string, page, limit int) ([]entity.Post, int64, error)
}

type fetchRepository struct {
	db *gorm.DB
}

func NewFetchRepository(db *gorm.DB) FetchRepository {
	return &fetchRepository{db: db}
}

func (r *fetchRepository) ListUsers(ctx context.Context, query string, page, limit int) ([]entity.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.User{})
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	err := q.
		Preload("Profile").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

func (r *fetchRepository) ListPosts(ctx context.Context, query string, page, limit int) ([]entity.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Post{})
	if query != "" {
		q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+query+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []entity.Post
	err := q.
		Preload("Author").
		Preload("Category").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}
