package comment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pena.web.id/penablog/internal/entity"
	commentRepo "pena.web.id/penablog/internal/modules/comment/repository"
	postRepo "pena.web.id/penablog/internal/modules/post/repository"
	relationRepo "pena.web.id/penablog/internal/modules/relation/repository"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/internal/visibility"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/editor"
	"pena.web.id/penablog/pkg/ratelimiter"
)

type CommentService interface {
	Create(ctx context.Context, userID, postID uuid.UUID, content string) (*entity.Comment, error)
	Update(ctx context.Context, userID, commentID uuid.UUID, content string) (*entity.Comment, error)
	Delete(ctx context.Context, userID, commentID uuid.UUID) error
}

type commentService struct {
	comments    commentRepo.CommentRepository
	posts       postRepo.PostRepository
	users       userRepo.UserRepository
	relations   relationRepo.RelationRepository
	redisClient *redis.Client
}

func NewCommentService(
	comments commentRepo.CommentRepository,
	posts postRepo.PostRepository,
	users userRepo.UserRepository,
	relations relationRepo.RelationRepository,
	redisClient *redis.Client,
) CommentService {
	return &commentService{comments: comments, posts: posts, users: users, relations: relations, redisClient: redisClient}
}

func (s *commentService) requireActiveActor(ctx context.Context, actorID uuid.UUID) error {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return apperror.FromDB(err, "user not found")
	}
	if actor.Suspended {
		return apperror.Forbidden("your account has been suspended")
	}
	return nil
}

// requireVisiblePost runs the full post predicate for the commenter; a
// post they may not see reads as not found.
func (s *commentService) requireVisiblePost(ctx context.Context, userID, postID uuid.UUID) (*entity.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, apperror.FromDB(err, "post not found")
	}

	author, err := s.users.FindByID(ctx, post.UserID)
	if err != nil {
		return nil, apperror.FromDB(err, "post not found")
	}

	blocked, err := s.relations.BlockExists(ctx, userID, post.UserID)
	if err != nil {
		return nil, err
	}

	if !visibility.PostVisible(&userID, post, author.Suspended, blocked) {
		return nil, apperror.NotFound("post not found")
	}
	return post, nil
}

func (s *commentService) Create(ctx context.Context, userID, postID uuid.UUID, content string) (*entity.Comment, error) {
	if err := s.requireActiveActor(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := s.requireVisiblePost(ctx, userID, postID); err != nil {
		return nil, err
	}

	cooldown := ratelimiter.GetDurationFromEnv("COMMENT_CREATE_COOLDOWN", 5*time.Second)
	allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, s.redisClient, userID, "create_comment", cooldown)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.TooManyRequests("you are commenting too quickly")
	}

	content = strings.TrimSpace(editor.SanitizeText(content))
	if content == "" {
		return nil, apperror.BadRequest("comment cannot be empty")
	}

	comment := &entity.Comment{Content: content, UserID: userID, PostID: postID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, userID, commentID uuid.UUID, content string) (*entity.Comment, error) {
	comment, err := s.comments.FindOwned(ctx, commentID, userID)
	if err != nil {
		return nil, apperror.FromDB(err, "comment not found")
	}

	content = strings.TrimSpace(editor.SanitizeText(content))
	if content == "" {
		return nil, apperror.BadRequest("comment cannot be empty")
	}

	if err := s.comments.Update(ctx, commentID, content); err != nil {
		return nil, err
	}

	comment.Content = content
	comment.IsEdited = true
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	if _, err := s.comments.FindOwned(ctx, commentID, userID); err != nil {
		return apperror.FromDB(err, "comment not found")
	}
	return s.comments.SoftDelete(ctx, commentID)
}
