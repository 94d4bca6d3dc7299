package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	commentRepo "pena.web.id/penablog/internal/modules/comment/repository"
	postRepo "pena.web.id/penablog/internal/modules/post/repository"
	relationRepo "pena.web.id/penablog/internal/modules/relation/repository"
	reportDto "pena.web.id/penablog/internal/modules/report/dto"
	reportRepo "pena.web.id/penablog/internal/modules/report/repository"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/pkg/apperror"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Profile{}, &entity.Settings{},
		&entity.Post{}, &entity.PostTag{}, &entity.Comment{},
		&entity.Block{}, &entity.Report{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	user := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Active:       true,
		Profile:      &entity.Profile{DisplayName: username},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newService(db *gorm.DB) ReportService {
	return NewReportService(
		reportRepo.NewReportRepository(db),
		userRepo.NewUserRepository(db),
		postRepo.NewPostRepository(db),
		commentRepo.NewCommentRepository(db),
		relationRepo.NewRelationRepository(db),
	)
}

func TestCreateReport(t *testing.T) {
	ctx := context.Background()

	t.Run("post report targets the author", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		post := &entity.Post{Title: "p", Slug: "p", UserID: alice.ID, Published: true}
		require.NoError(t, db.Create(post).Error)

		report, err := svc.Create(ctx, bob.ID, reportDto.CreateReportRequest{
			Reason: "SPAM",
			PostID: &post.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.ReportPending, report.Status)
		assert.Equal(t, entity.ReportReason("SPAM"), report.Reason)
	})

	t.Run("report without a target rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		bob := createUser(t, db, "bob")

		_, err := svc.Create(ctx, bob.ID, reportDto.CreateReportRequest{Reason: "SPAM"})
		assert.ErrorIs(t, err, apperror.ErrBadRequest)
	})

	t.Run("self report rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		bob := createUser(t, db, "bob")

		_, err := svc.Create(ctx, bob.ID, reportDto.CreateReportRequest{
			Reason:         "SPAM",
			ReportedUserID: &bob.ID,
		})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("blocked pair cannot report", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		require.NoError(t, db.Create(&entity.Block{BlockerID: bob.ID, BlockedID: alice.ID}).Error)

		_, err := svc.Create(ctx, bob.ID, reportDto.CreateReportRequest{
			Reason:         "HARASSMENT",
			ReportedUserID: &alice.ID,
		})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("suspended reporter rejected", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		require.NoError(t, db.Model(&entity.User{}).Where("id = ?", bob.ID).Update("suspended", true).Error)

		_, err := svc.Create(ctx, bob.ID, reportDto.CreateReportRequest{
			Reason:         "SPAM",
			ReportedUserID: &alice.ID,
		})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestListReports(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	for _, reporter := range []*entity.User{bob, carol} {
		_, err := svc.Create(ctx, reporter.ID, reportDto.CreateReportRequest{
			Reason:         "SPAM",
			ReportedUserID: &alice.ID,
		})
		require.NoError(t, err)
	}

	reports, total, err := svc.List(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, reports, 2)

	reports, total, err = svc.List(ctx, "RESOLVED", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, reports)
}

func TestUpdateReportStatus(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	report, err := svc.Create(ctx, bob.ID, reportDto.CreateReportRequest{
		Reason:         "SPAM",
		ReportedUserID: &alice.ID,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, report.ID, "RESOLVED")
	require.NoError(t, err)
	assert.Equal(t, entity.ReportResolved, updated.Status)
}
