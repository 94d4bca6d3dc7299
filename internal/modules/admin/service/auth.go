package admin

import (
	"context"

	"pena.web.id/penablog/internal/entity"
	adminDto "pena.web.id/penablog/internal/modules/admin/dto"
	adminRepo "pena.web.id/penablog/internal/modules/admin/repository"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/password"
	"pena.web.id/penablog/pkg/token"
)

type AdminAuthService interface {
	Login(ctx context.Context, req adminDto.AdminLoginRequest) (*adminDto.AdminResponse, string, error)
}

type adminAuthService struct {
	admins adminRepo.AdminRepository
}

func NewAdminAuthService(admins adminRepo.AdminRepository) AdminAuthService {
	return &adminAuthService{admins: admins}
}

func (s *adminAuthService) Login(ctx context.Context, req adminDto.AdminLoginRequest) (*adminDto.AdminResponse, string, error) {
	admin, err := s.admins.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", apperror.Forbidden("invalid username or password")
	}
	if admin.IsDeleted {
		return nil, "", apperror.Forbidden("this admin account has been removed")
	}

	if err := password.Compare(req.Password, admin.PasswordHash); err != nil {
		return nil, "", err
	}

	signed, err := token.Sign(admin.ID, token.RoleAdmin, token.AdminTTL)
	if err != nil {
		return nil, "", err
	}

	return toAdminResponse(admin), signed, nil
}

func toAdminResponse(admin *entity.Admin) *adminDto.AdminResponse {
	return &adminDto.AdminResponse{
		ID:           admin.ID,
		AdminID:      admin.AdminID,
		Username:     admin.Username,
		Email:        admin.Email,
		Name:         admin.Name,
		Number:       admin.Number,
		AvatarURL:    admin.AvatarURL,
		IsSuperAdmin: admin.IsSuperAdmin,
		CreatedAt:    admin.CreatedAt,
	}
}
