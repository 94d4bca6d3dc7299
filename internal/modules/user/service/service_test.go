package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	userDto "pena.web.id/penablog/internal/modules/user/dto"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/storage"
)

type stubStorage struct{}

func (stubStorage) UploadBase64(ctx context.Context, data, folder, publicID string) (*storage.UploadResult, error) {
	return &storage.UploadResult{URL: "https://img.test/" + folder + "/x.png", Path: folder + "/x"}, nil
}

func (stubStorage) Delete(ctx context.Context, path string) error { return nil }

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Profile{}, &entity.Settings{}))
	return db
}

func newService(db *gorm.DB) UserService {
	return NewUserService(userRepo.NewUserRepository(db), stubStorage{})
}

func signup(t *testing.T, svc UserService, username string) *userDto.UserResponse {
	t.Helper()
	resp, err := svc.Signup(context.Background(), userDto.SignupRequest{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "hunter2hunter2",
		DisplayName: username,
	})
	require.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	resp := signup(t, svc, "alice")
	assert.True(t, resp.Active)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "alice", resp.Profile.DisplayName)
	require.NotNil(t, resp.Settings)
	assert.Equal(t, "system", resp.Settings.Theme)

	_, err := svc.Signup(ctx, userDto.SignupRequest{
		Username:    "alice",
		Email:       "fresh@example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Alice Again",
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	signup(t, svc, "alice")

	resp, signed, err := svc.Login(ctx, userDto.LoginRequest{Username: "alice", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, signed)

	_, _, err = svc.Login(ctx, userDto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, _, err = svc.Login(ctx, userDto.LoginRequest{Username: "nobody", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, apperror.ErrForbidden, "unknown account fails the same way as a bad password")
}

func TestUpdateEmail(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	alice := signup(t, svc, "alice")
	signup(t, svc, "bob")

	require.NoError(t, svc.UpdateEmail(ctx, alice.ID, "new@example.com"))
	require.NoError(t, svc.UpdateEmail(ctx, alice.ID, "new@example.com"),
		"resubmitting your own email is a no-op")

	err := svc.UpdateEmail(ctx, alice.ID, "bob@example.com")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestUpdateUsername(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	alice := signup(t, svc, "alice")
	signup(t, svc, "bob")

	require.NoError(t, svc.UpdateUsername(ctx, alice.ID, "alice2"))

	err := svc.UpdateUsername(ctx, alice.ID, "bob")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	alice := signup(t, svc, "alice")

	err := svc.ChangePassword(ctx, alice.ID, "wrong", "nextpassword1")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, svc.ChangePassword(ctx, alice.ID, "hunter2hunter2", "nextpassword1"))

	_, _, err = svc.Login(ctx, userDto.LoginRequest{Username: "alice", Password: "nextpassword1"})
	require.NoError(t, err)
}

func TestUpdateBio(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	alice := signup(t, svc, "alice")

	bio := `gopher <script>alert(1)</script>`
	require.NoError(t, svc.UpdateBio(ctx, alice.ID, &bio))

	var profile entity.Profile
	require.NoError(t, db.First(&profile, "user_id = ?", alice.ID).Error)
	require.NotNil(t, profile.Bio)
	assert.NotContains(t, *profile.Bio, "<script>")

	require.NoError(t, svc.UpdateBio(ctx, alice.ID, nil))
	require.NoError(t, db.First(&profile, "user_id = ?", alice.ID).Error)
	assert.Nil(t, profile.Bio)
}

func TestUpdateNationality(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	alice := signup(t, svc, "alice")

	country := "indonesia"
	require.NoError(t, svc.UpdateNationality(ctx, alice.ID, &country))

	var profile entity.Profile
	require.NoError(t, db.First(&profile, "user_id = ?", alice.ID).Error)
	require.NotNil(t, profile.Nationality)
	assert.Equal(t, "Indonesia", *profile.Nationality, "stored in canonical form")

	bogus := "Atlantis"
	err := svc.UpdateNationality(ctx, alice.ID, &bogus)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	alice := signup(t, svc, "alice")

	theme := "dark"
	settings, err := svc.UpdateSettings(ctx, alice.ID, userDto.UpdateSettingsRequest{Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, "dark", settings.Theme)
	assert.Equal(t, "medium", settings.FontSize, "untouched fields keep their defaults")
}
