package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
)

// AdminPatch is an explicit field-level update for an admin row.
type AdminPatch struct {
	Name       *string
	Number     *string
	Email      *string
	AvatarURL  *string
	AvatarPath *string
	Password   *string
}

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)
	// FindByUsername matches soft-deleted admins too; login rejects them
	// with a distinct message.
	FindByUsername(ctx context.Context, username string) (*entity.Admin, error)
	// CountCreatedOn feeds the daily sequence in generated admin codes.
	CountCreatedOn(ctx context.Context, day time.Time) (int64, error)
	List(ctx context.Context) ([]entity.Admin, error)
	Update(ctx context.Context, id uuid.UUID, patch AdminPatch) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	var admin entity.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	var admin entity.Admin
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) CountCreatedOn(ctx context.Context, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Admin{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *adminRepository) List(ctx context.Context) ([]entity.Admin, error) {
	var admins []entity.Admin
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at ASC").
		Find(&admins).Error
	return admins, err
}

func (r *adminRepository) Update(ctx context.Context, id uuid.UUID, patch AdminPatch) error {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Number != nil {
		updates["number"] = *patch.Number
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.AvatarURL != nil {
		updates["avatar_url"] = *patch.AvatarURL
	}
	if patch.AvatarPath != nil {
		updates["avatar_path"] = *patch.AvatarPath
	}
	if patch.Password != nil {
		updates["password_hash"] = *patch.Password
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&entity.Admin{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *adminRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Admin{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}
