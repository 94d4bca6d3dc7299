package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
)

type LogRepository interface {
	Create(ctx context.Context, log *entity.Log) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Log, error)
	List(ctx context.Context, page, limit int) ([]entity.Log, int64, error)
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) error
}

type logRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) Create(ctx context.Context, log *entity.Log) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *logRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Log, error) {
	var log entity.Log
	if err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("id = ?", id).
		First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *logRepository) List(ctx context.Context, page, limit int) ([]entity.Log, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Log{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []entity.Log
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error
	return logs, total, err
}

func (r *logRepository) UpdateDescription(ctx context.Context, id uuid.UUID, description string) error {
	return r.db.WithContext(ctx).Model(&entity.Log{}).
		Where("id = ?", id).
		Update("description", description).Error
}
