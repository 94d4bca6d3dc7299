package like

import (
	"context"

	"github.com/google/uuid"

	commentRepo "pena.web.id/penablog/internal/modules/comment/repository"
	likeRepo "pena.web.id/penablog/internal/modules/like/repository"
	postRepo "pena.web.id/penablog/internal/modules/post/repository"
	relationRepo "pena.web.id/penablog/internal/modules/relation/repository"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/internal/visibility"
	"pena.web.id/penablog/pkg/apperror"
)

type LikeService interface {
	// TogglePostLike returns true when the toggle ended in the liked state.
	TogglePostLike(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
}

type likeService struct {
	likes     likeRepo.LikeRepository
	posts     postRepo.PostRepository
	comments  commentRepo.CommentRepository
	users     userRepo.UserRepository
	relations relationRepo.RelationRepository
}

func NewLikeService(
	likes likeRepo.LikeRepository,
	posts postRepo.PostRepository,
	comments commentRepo.CommentRepository,
	users userRepo.UserRepository,
	relations relationRepo.RelationRepository,
) LikeService {
	return &likeService{likes: likes, posts: posts, comments: comments, users: users, relations: relations}
}

func (s *likeService) requireActiveActor(ctx context.Context, actorID uuid.UUID) error {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return apperror.FromDB(err, "user not found")
	}
	if actor.Suspended {
		return apperror.Forbidden("your account has been suspended")
	}
	return nil
}

// authorGate loads the target author's suspension flag and the block
// state between actor and author, the two inputs visibility needs.
func (s *likeService) authorGate(ctx context.Context, actorID, authorID uuid.UUID) (suspended, blocked bool, err error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return false, false, apperror.FromDB(err, "user not found")
	}
	blocked, err = s.relations.BlockExists(ctx, actorID, authorID)
	if err != nil {
		return false, false, err
	}
	return author.Suspended, blocked, nil
}

func (s *likeService) TogglePostLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	if err := s.requireActiveActor(ctx, userID); err != nil {
		return false, err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return false, apperror.FromDB(err, "post not found")
	}

	authorSuspended, blocked, err := s.authorGate(ctx, userID, post.UserID)
	if err != nil {
		return false, err
	}
	if !visibility.PostVisible(&userID, post, authorSuspended, blocked) {
		return false, apperror.NotFound("post not found")
	}

	removed, err := s.likes.DeletePostLike(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	if err := s.likes.CreatePostLike(ctx, userID, postID); err != nil {
		// A concurrent duplicate create means the like is already on.
		if apperror.IsDuplicate(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (s *likeService) ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	if err := s.requireActiveActor(ctx, userID); err != nil {
		return false, err
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return false, apperror.FromDB(err, "comment not found")
	}

	authorSuspended, blocked, err := s.authorGate(ctx, userID, comment.UserID)
	if err != nil {
		return false, err
	}
	if !visibility.CommentVisible(comment, authorSuspended, blocked) {
		return false, apperror.NotFound("comment not found")
	}

	removed, err := s.likes.DeleteCommentLike(ctx, userID, commentID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	if err := s.likes.CreateCommentLike(ctx, userID, commentID); err != nil {
		if apperror.IsDuplicate(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}
