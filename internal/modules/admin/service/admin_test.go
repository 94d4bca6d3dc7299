package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	adminDto "pena.web.id/penablog/internal/modules/admin/dto"
	adminRepo "pena.web.id/penablog/internal/modules/admin/repository"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/password"
)

func newAdminService(db *gorm.DB) AdminService {
	return NewAdminService(adminRepo.NewAdminRepository(db), adminRepo.NewLogRepository(db))
}

func createRequest(username string) adminDto.CreateAdminRequest {
	return adminDto.CreateAdminRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "hunter2hunter2",
		Name:     username,
		Number:   "0800000000",
	}
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newAdminService(db)
	super := createAdmin(t, db, "root", true)

	first, err := svc.Create(ctx, super.ID, createRequest("mod1"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, super.ID, createRequest("mod2"))
	require.NoError(t, err)

	today := time.Now().Format("20060102")
	// The seeded super admin was created today too, so sequencing starts at 2.
	assert.Equal(t, fmt.Sprintf("ADM-%s-0002", today), first.AdminID)
	assert.Equal(t, fmt.Sprintf("ADM-%s-0003", today), second.AdminID)

	var stored entity.Admin
	require.NoError(t, db.First(&stored, "id = ?", first.ID).Error)
	require.NoError(t, password.Compare("hunter2hunter2", stored.PasswordHash))

	assert.EqualValues(t, 2, countLogs(t, db, entity.LogCreateAdmin))
}

func TestCreateAdminDuplicate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newAdminService(db)
	super := createAdmin(t, db, "root", true)

	_, err := svc.Create(ctx, super.ID, createRequest("mod"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, super.ID, createRequest("mod"))
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.EqualValues(t, 1, countLogs(t, db, entity.LogCreateAdmin), "failed creates write no log")
}

func TestSoftDeleteAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("regular admin can be removed", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAdminService(db)
		super := createAdmin(t, db, "root", true)
		mod := createAdmin(t, db, "mod", false)

		require.NoError(t, svc.SoftDelete(ctx, super.ID, mod.ID))

		var stored entity.Admin
		require.NoError(t, db.First(&stored, "id = ?", mod.ID).Error)
		assert.True(t, stored.IsDeleted)
		assert.EqualValues(t, 1, countLogs(t, db, entity.LogDeleteAdmin))

		err := svc.SoftDelete(ctx, super.ID, mod.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound, "already-deleted reads as absent")
	})

	t.Run("self delete rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAdminService(db)
		super := createAdmin(t, db, "root", true)

		err := svc.SoftDelete(ctx, super.ID, super.ID)
		assert.ErrorIs(t, err, apperror.ErrBadRequest)
	})

	t.Run("super admin protected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newAdminService(db)
		super := createAdmin(t, db, "root", true)
		other := createAdmin(t, db, "root2", true)

		err := svc.SoftDelete(ctx, super.ID, other.ID)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}
