package report

import (
	"context"

	"github.com/google/uuid"

	"pena.web.id/penablog/internal/entity"
	commentRepo "pena.web.id/penablog/internal/modules/comment/repository"
	postRepo "pena.web.id/penablog/internal/modules/post/repository"
	relationRepo "pena.web.id/penablog/internal/modules/relation/repository"
	reportDto "pena.web.id/penablog/internal/modules/report/dto"
	reportRepo "pena.web.id/penablog/internal/modules/report/repository"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/pkg/apperror"
)

type ReportService interface {
	Create(ctx context.Context, reporterID uuid.UUID, req reportDto.CreateReportRequest) (*entity.Report, error)
	List(ctx context.Context, status string, page, limit int) ([]entity.Report, int64, error)
	UpdateStatus(ctx context.Context, reportID uuid.UUID, status string) (*entity.Report, error)
}

type reportService struct {
	repo      reportRepo.ReportRepository
	users     userRepo.UserRepository
	posts     postRepo.PostRepository
	comments  commentRepo.CommentRepository
	relations relationRepo.RelationRepository
}

func NewReportService(
	repo reportRepo.ReportRepository,
	users userRepo.UserRepository,
	posts postRepo.PostRepository,
	comments commentRepo.CommentRepository,
	relations relationRepo.RelationRepository,
) ReportService {
	return &reportService{repo: repo, users: users, posts: posts, comments: comments, relations: relations}
}

func (s *reportService) Create(ctx context.Context, reporterID uuid.UUID, req reportDto.CreateReportRequest) (*entity.Report, error) {
	reporter, err := s.users.FindByID(ctx, reporterID)
	if err != nil {
		return nil, apperror.FromDB(err, "user not found")
	}
	if reporter.Suspended {
		return nil, apperror.Forbidden("your account has been suspended")
	}

	if req.ReportedUserID == nil && req.PostID == nil && req.CommentID == nil {
		return nil, apperror.BadRequest("a report needs a user, post or comment target")
	}

	targetUserID, err := s.resolveTargetUser(ctx, req)
	if err != nil {
		return nil, err
	}

	if targetUserID == reporterID {
		return nil, apperror.Forbidden("you cannot report yourself")
	}

	blocked, err := s.relations.BlockExists(ctx, reporterID, targetUserID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, apperror.Forbidden("you cannot report this user")
	}

	report := &entity.Report{
		ReporterID:     reporterID,
		ReportedUserID: req.ReportedUserID,
		PostID:         req.PostID,
		CommentID:      req.CommentID,
		Reason:         entity.ReportReason(req.Reason),
		Status:         entity.ReportPending,
		Message:        req.Message,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// resolveTargetUser maps whichever target was given to the user being
// reported; post and comment reports point at their author.
func (s *reportService) resolveTargetUser(ctx context.Context, req reportDto.CreateReportRequest) (uuid.UUID, error) {
	switch {
	case req.ReportedUserID != nil:
		user, err := s.users.FindByID(ctx, *req.ReportedUserID)
		if err != nil {
			return uuid.Nil, apperror.FromDB(err, "user not found")
		}
		return user.ID, nil
	case req.PostID != nil:
		post, err := s.posts.FindByID(ctx, *req.PostID)
		if err != nil {
			return uuid.Nil, apperror.FromDB(err, "post not found")
		}
		return post.UserID, nil
	default:
		comment, err := s.comments.FindByID(ctx, *req.CommentID)
		if err != nil {
			return uuid.Nil, apperror.FromDB(err, "comment not found")
		}
		return comment.UserID, nil
	}
}

func (s *reportService) List(ctx context.Context, status string, page, limit int) ([]entity.Report, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.List(ctx, entity.ReportStatus(status), page, limit)
}

func (s *reportService) UpdateStatus(ctx context.Context, reportID uuid.UUID, status string) (*entity.Report, error) {
	if _, err := s.repo.FindByID(ctx, reportID); err != nil {
		return nil, apperror.FromDB(err, "report not found")
	}
	if err := s.repo.UpdateStatus(ctx, reportID, entity.ReportStatus(status)); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, reportID)
}
