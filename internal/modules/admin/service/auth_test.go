package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	adminDto "pena.web.id/penablog/internal/modules/admin/dto"
	adminRepo "pena.web.id/penablog/internal/modules/admin/repository"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/password"
)

func newAuthService(db *gorm.DB) AdminAuthService {
	return NewAdminAuthService(adminRepo.NewAdminRepository(db))
}

func createAdminWithPassword(t *testing.T, db *gorm.DB, username, plain string) *entity.Admin {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	admin := &entity.Admin{
		AdminID:      "ADM-20260101-" + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Name:         username,
	}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("correct password signs a session", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)
		createAdminWithPassword(t, db, "mod", "hunter2secret")

		resp, signed, err := svc.Login(ctx, adminDto.AdminLoginRequest{Username: "mod", Password: "hunter2secret"})
		require.NoError(t, err)
		assert.Equal(t, "mod", resp.Username)
		assert.NotEmpty(t, signed)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)
		createAdminWithPassword(t, db, "mod", "hunter2secret")

		_, _, err := svc.Login(ctx, adminDto.AdminLoginRequest{Username: "mod", Password: "wrong"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("unknown account fails the same way", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)

		_, _, err := svc.Login(ctx, adminDto.AdminLoginRequest{Username: "ghost", Password: "hunter2secret"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("removed admin cannot sign in", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAuthService(db)
		admin := createAdminWithPassword(t, db, "mod", "hunter2secret")
		require.NoError(t, db.Model(&entity.Admin{}).Where("id = ?", admin.ID).Update("is_deleted", true).Error)

		_, _, err := svc.Login(ctx, adminDto.AdminLoginRequest{Username: "mod", Password: "hunter2secret"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}
