package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"pena.web.id/penablog/internal/entity"
	adminDto "pena.web.id/penablog/internal/modules/admin/dto"
	adminRepo "pena.web.id/penablog/internal/modules/admin/repository"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/password"
)

type AdminService interface {
	Me(ctx context.Context, adminID uuid.UUID) (*adminDto.AdminResponse, error)
	List(ctx context.Context) ([]adminDto.AdminResponse, error)
	// Create registers a new admin and writes one audit log entry.
	Create(ctx context.Context, actorID uuid.UUID, req adminDto.CreateAdminRequest) (*adminDto.AdminResponse, error)
	Update(ctx context.Context, adminID uuid.UUID, req adminDto.UpdateAdminRequest) (*adminDto.AdminResponse, error)
	SoftDelete(ctx context.Context, actorID, adminID uuid.UUID) error
}

type adminService struct {
	admins adminRepo.AdminRepository
	logs   adminRepo.LogRepository
}

func NewAdminService(admins adminRepo.AdminRepository, logs adminRepo.LogRepository) AdminService {
	return &adminService{admins: admins, logs: logs}
}

func (s *adminService) Me(ctx context.Context, adminID uuid.UUID) (*adminDto.AdminResponse, error) {
	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return nil, apperror.FromDB(err, "admin not found")
	}
	return toAdminResponse(admin), nil
}

func (s *adminService) List(ctx context.Context) ([]adminDto.AdminResponse, error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]adminDto.AdminResponse, len(admins))
	for i := range admins {
		out[i] = *toAdminResponse(&admins[i])
	}
	return out, nil
}

// generateAdminCode builds the human-readable admin identifier: the
// creation date plus a zero-padded daily sequence, e.g. ADM-20260829-0003.
func (s *adminService) generateAdminCode(ctx context.Context, now time.Time) (string, error) {
	count, err := s.admins.CountCreatedOn(ctx, now)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ADM-%s-%04d", now.Format("20060102"), count+1), nil
}

func (s *adminService) Create(ctx context.Context, actorID uuid.UUID, req adminDto.CreateAdminRequest) (*adminDto.AdminResponse, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	code, err := s.generateAdminCode(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	admin := &entity.Admin{
		AdminID:      code,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Number:       req.Number,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if apperror.IsDuplicate(err) {
			return nil, apperror.Conflict("username or email already in use")
		}
		return nil, err
	}

	if err := s.logs.Create(ctx, &entity.Log{
		ActorID:     actorID,
		Action:      entity.LogCreateAdmin,
		Description: fmt.Sprintf("created admin %s", admin.Username),
		Meta:        datatypes.JSONMap{"admin_id": admin.ID.String(), "admin_code": admin.AdminID},
	}); err != nil {
		return nil, err
	}

	return toAdminResponse(admin), nil
}

func (s *adminService) Update(ctx context.Context, adminID uuid.UUID, req adminDto.UpdateAdminRequest) (*adminDto.AdminResponse, error) {
	if _, err := s.admins.FindByID(ctx, adminID); err != nil {
		return nil, apperror.FromDB(err, "admin not found")
	}

	patch := adminRepo.AdminPatch{
		Name:   req.Name,
		Email:  req.Email,
		Number: req.Number,
	}
	if err := s.admins.Update(ctx, adminID, patch); err != nil {
		if apperror.IsDuplicate(err) {
			return nil, apperror.Conflict("email already in use")
		}
		return nil, err
	}

	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return nil, apperror.FromDB(err, "admin not found")
	}
	return toAdminResponse(admin), nil
}

func (s *adminService) SoftDelete(ctx context.Context, actorID, adminID uuid.UUID) error {
	if actorID == adminID {
		return apperror.BadRequest("you cannot delete your own admin account")
	}

	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return apperror.FromDB(err, "admin not found")
	}
	if admin.IsDeleted {
		return apperror.NotFound("admin not found")
	}
	if admin.IsSuperAdmin {
		return apperror.Forbidden("super admin accounts cannot be deleted")
	}

	if err := s.admins.SoftDelete(ctx, adminID); err != nil {
		return err
	}

	return s.logs.Create(ctx, &entity.Log{
		ActorID:     actorID,
		Action:      entity.LogDeleteAdmin,
		Description: fmt.Sprintf("deleted admin %s", admin.Username),
		Meta:        datatypes.JSONMap{"admin_id": admin.ID.String(), "admin_code": admin.AdminID},
	})
}
