package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateAdminRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Number   string `json:"number" binding:"max=30"`
}

type UpdateAdminRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Number *string `json:"number" binding:"omitempty,max=30"`
}

type UpdateLogRequest struct {
	Description string `json:"description" binding:"required,max=1000"`
}

type AdminResponse struct {
	ID           uuid.UUID `json:"id"`
	AdminID      string    `json:"admin_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Number       string    `json:"number"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	CreatedAt    time.Time `json:"created_at"`
}
