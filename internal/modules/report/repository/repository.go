package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)
	// List pages reports newest first; status filters when non-empty.
	List(ctx context.Context, status entity.ReportStatus, page, limit int) ([]entity.Report, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReportStatus) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	var report entity.Report
	if err := r.db.WithContext(ctx).
		Preload("Reporter").
		Preload("ReportedUser").
		Preload("Post").
		Preload("Comment").
		Where("id = ?", id).
		First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, status entity.ReportStatus, page, limit int) ([]entity.Report, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []entity.Report
	err := query.
		Preload("Reporter").
		Preload("ReportedUser").
		Preload("Post").
		Preload("Comment").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reports).Error
	return reports, total, err
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReportStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Report{}).
		Where("id = ?", id).
		Update("status", status).Error
}
