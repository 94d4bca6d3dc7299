package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"pena.web.id/penablog/internal/entity"
	adminRepo "pena.web.id/penablog/internal/modules/admin/repository"
	commentRepo "pena.web.id/penablog/internal/modules/comment/repository"
	postRepo "pena.web.id/penablog/internal/modules/post/repository"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/pkg/apperror"
)

// ModerationService executes admin actions against user content. Every
// successful action writes exactly one audit log record.
type ModerationService interface {
	SuspendUser(ctx context.Context, actorID, userID uuid.UUID) error
	UnsuspendUser(ctx context.Context, actorID, userID uuid.UUID) error
	SuspendPost(ctx context.Context, actorID, postID uuid.UUID) error
	UnsuspendPost(ctx context.Context, actorID, postID uuid.UUID) error
	DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error
}

type moderationService struct {
	users    userRepo.UserRepository
	posts    postRepo.PostRepository
	comments commentRepo.CommentRepository
	logs     adminRepo.LogRepository
}

func NewModerationService(
	users userRepo.UserRepository,
	posts postRepo.PostRepository,
	comments commentRepo.CommentRepository,
	logs adminRepo.LogRepository,
) ModerationService {
	return &moderationService{users: users, posts: posts, comments: comments, logs: logs}
}

func (s *moderationService) setUserSuspension(ctx context.Context, actorID, userID uuid.UUID, suspend bool) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperror.FromDB(err, "user not found")
	}
	if user.Suspended == suspend {
		state := "active"
		if suspend {
			state = "suspended"
		}
		return apperror.Conflict(fmt.Sprintf("user is already %s", state))
	}

	if err := s.users.SetSuspended(ctx, userID, suspend); err != nil {
		return err
	}

	action := entity.LogActivateUser
	verb := "unsuspended"
	if suspend {
		action = entity.LogSuspendUser
		verb = "suspended"
	}
	return s.logs.Create(ctx, &entity.Log{
		ActorID:     actorID,
		Action:      action,
		Description: fmt.Sprintf("%s user %s", verb, user.Username),
		Meta:        datatypes.JSONMap{"user_id": user.ID.String()},
	})
}

func (s *moderationService) SuspendUser(ctx context.Context, actorID, userID uuid.UUID) error {
	return s.setUserSuspension(ctx, actorID, userID, true)
}

func (s *moderationService) UnsuspendUser(ctx context.Context, actorID, userID uuid.UUID) error {
	return s.setUserSuspension(ctx, actorID, userID, false)
}

func (s *moderationService) setPostSuspension(ctx context.Context, actorID, postID uuid.UUID, suspend bool) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return apperror.FromDB(err, "post not found")
	}
	if post.Suspended == suspend {
		state := "live"
		if suspend {
			state = "suspended"
		}
		return apperror.Conflict(fmt.Sprintf("post is already %s", state))
	}

	patch := postRepo.PostPatch{Suspended: &suspend}
	if suspend {
		// A suspended post also drops out of publication; restoring it
		// later is the author's call.
		unpublished := false
		patch.Published = &unpublished
	}
	if err := s.posts.Update(ctx, postID, patch); err != nil {
		return err
	}

	action := entity.LogRestorePost
	verb := "restored"
	if suspend {
		action = entity.LogSuspendPost
		verb = "suspended"
	}
	return s.logs.Create(ctx, &entity.Log{
		ActorID:     actorID,
		Action:      action,
		Description: fmt.Sprintf("%s post %q", verb, post.Title),
		Meta:        datatypes.JSONMap{"post_id": post.ID.String(), "author_id": post.UserID.String()},
	})
}

func (s *moderationService) SuspendPost(ctx context.Context, actorID, postID uuid.UUID) error {
	return s.setPostSuspension(ctx, actorID, postID, true)
}

func (s *moderationService) UnsuspendPost(ctx context.Context, actorID, postID uuid.UUID) error {
	return s.setPostSuspension(ctx, actorID, postID, false)
}

func (s *moderationService) DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return apperror.FromDB(err, "comment not found")
	}

	if err := s.comments.HardDelete(ctx, commentID); err != nil {
		return err
	}

	return s.logs.Create(ctx, &entity.Log{
		ActorID:     actorID,
		Action:      entity.LogDeleteComment,
		Description: "deleted a comment",
		Meta: datatypes.JSONMap{
			"comment_id": comment.ID.String(),
			"author_id":  comment.UserID.String(),
			"post_id":    comment.PostID.String(),
		},
	})
}
