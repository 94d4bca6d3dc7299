package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
)

// ProfilePatch is an explicit field-level update; nil pointers leave the
// column untouched, Clear* flags null it out.
type ProfilePatch struct {
	DisplayName      *string
	AvatarURL        *string
	AvatarPath       *string
	CoverImageURL    *string
	CoverImagePath   *string
	Bio              *string
	ClearBio         bool
	Nationality      *string
	ClearNationality bool
	Socials          datatypes.JSON
}

type SettingsPatch struct {
	Theme      *string
	FontSize   *string
	LineHeight *string
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) error
	GetSettings(ctx context.Context, userID uuid.UUID) (*entity.Settings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, patch SettingsPatch) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	// User, profile and settings rows are created together or not at all.
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Settings").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Settings").
		Where("LOWER(username) = LOWER(?)", username).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Update("email", email).Error
}

func (r *userRepository) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Update("username", username).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *userRepository) SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Update("suspended", suspended).Error
}

func (r *userRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) error {
	updates := map[string]interface{}{}
	if patch.DisplayName != nil {
		updates["display_name"] = *patch.DisplayName
	}
	if patch.AvatarURL != nil {
		updates["avatar_url"] = *patch.AvatarURL
	}
	if patch.AvatarPath != nil {
		updates["avatar_path"] = *patch.AvatarPath
	}
	if patch.CoverImageURL != nil {
		updates["cover_image_url"] = *patch.CoverImageURL
	}
	if patch.CoverImagePath != nil {
		updates["cover_image_path"] = *patch.CoverImagePath
	}
	if patch.ClearBio {
		updates["bio"] = nil
	} else if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.ClearNationality {
		updates["nationality"] = nil
	} else if patch.Nationality != nil {
		updates["nationality"] = *patch.Nationality
	}
	if patch.Socials != nil {
		updates["socials"] = patch.Socials
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&entity.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

func (r *userRepository) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.Settings, error) {
	var settings entity.Settings
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *userRepository) UpdateSettings(ctx context.Context, userID uuid.UUID, patch SettingsPatch) error {
	updates := map[string]interface{}{}
	if patch.Theme != nil {
		updates["theme"] = *patch.Theme
	}
	if patch.FontSize != nil {
		updates["font_size"] = *patch.FontSize
	}
	if patch.LineHeight != nil {
		updates["line_height"] = *patch.LineHeight
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Model(&entity.Settings{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}
