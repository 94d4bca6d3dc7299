package dto

import (
	"time"

	"github.com/google/uuid"

	"pena.web.id/penablog/internal/entity"
)

type SignupRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50,alphanum"`
	Email       string `json:"email" binding:"required,email,max=100"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateEmailRequest struct {
	Email string `json:"email" binding:"required,email,max=100"`
}

type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,alphanum"`
}

type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

type UpdateCoverRequest struct {
	Cover string `json:"cover" binding:"required"`
}

type UpdateBioRequest struct {
	Bio *string `json:"bio" binding:"omitempty,max=500"`
}

type UpdateNationalityRequest struct {
	Nationality *string `json:"nationality" binding:"omitempty,max=100"`
}

type UpdateDisplayNameRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
}

type UpdateSocialsRequest struct {
	Socials []entity.SocialLink `json:"socials" binding:"required,max=10,dive"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

type UpdateSettingsRequest struct {
	Theme      *string `json:"theme" binding:"omitempty,oneof=light dark system"`
	FontSize   *string `json:"font_size" binding:"omitempty,oneof=small medium large"`
	LineHeight *string `json:"line_height" binding:"omitempty,oneof=compact normal relaxed"`
}

type SettingsResponse struct {
	Theme         string `json:"theme"`
	FontSize      string `json:"font_size"`
	LineHeight    string `json:"line_height"`
	Notifications bool   `json:"notifications"`
}

type ProfileResponse struct {
	DisplayName   string              `json:"display_name"`
	AvatarURL     *string             `json:"avatar_url,omitempty"`
	CoverImageURL *string             `json:"cover_image_url,omitempty"`
	Bio           *string             `json:"bio,omitempty"`
	Nationality   *string             `json:"nationality,omitempty"`
	Socials       []entity.SocialLink `json:"socials,omitempty"`
}

type UserResponse struct {
	ID        uuid.UUID         `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Active    bool              `json:"active"`
	Suspended bool              `json:"suspended"`
	CreatedAt time.Time         `json:"created_at"`
	Profile   *ProfileResponse  `json:"profile,omitempty"`
	Settings  *SettingsResponse `json:"settings,omitempty"`
}

type LoginResponse struct {
	User UserResponse `json:"user"`
}
