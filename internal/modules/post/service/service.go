package post

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"

	"pena.web.id/penablog/internal/entity"
	commentRepo "pena.web.id/penablog/internal/modules/comment/repository"
	likeRepo "pena.web.id/penablog/internal/modules/like/repository"
	postDto "pena.web.id/penablog/internal/modules/post/dto"
	postRepo "pena.web.id/penablog/internal/modules/post/repository"
	relationRepo "pena.web.id/penablog/internal/modules/relation/repository"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/editor"
	"pena.web.id/penablog/pkg/ratelimiter"
	"pena.web.id/penablog/pkg/slug"
	"pena.web.id/penablog/pkg/storage"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, req postDto.CreatePostRequest) (*postDto.CreatePostResponse, error)
	UpdatePost(ctx context.Context, userID, postID uuid.UUID, req postDto.UpdatePostRequest) (*postDto.CreatePostResponse, error)
	RemoveCoverImage(ctx context.Context, userID, postID uuid.UUID) error
	SaveContent(ctx context.Context, userID, postID uuid.UUID, doc editor.Document) error
	GetForEditing(ctx context.Context, userID, postID uuid.UUID) (*postDto.PostForEditing, error)
	GetBySlug(ctx context.Context, slugStr string, viewer *uuid.UUID) (*postDto.PostDetail, error)
	GetAuthorView(ctx context.Context, slugStr string, userID uuid.UUID) (*postDto.PostDetail, error)
	ListMyPosts(ctx context.Context, userID uuid.UUID) ([]postDto.MyPost, error)
	TogglePublish(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	ToggleTrash(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	PermanentDelete(ctx context.Context, userID, postID uuid.UUID) error
	IncrementViews(ctx context.Context, postID uuid.UUID, viewerKey string) error
	UploadContentImage(ctx context.Context, userID uuid.UUID, imageBase64 string) (*storage.UploadResult, error)
}

type postService struct {
	posts        postRepo.PostRepository
	users        userRepo.UserRepository
	comments     commentRepo.CommentRepository
	likes        likeRepo.LikeRepository
	relations    relationRepo.RelationRepository
	imageStorage storage.ImageStorage
	redisClient  *redis.Client
}

func NewPostService(
	posts postRepo.PostRepository,
	users userRepo.UserRepository,
	comments commentRepo.CommentRepository,
	likes likeRepo.LikeRepository,
	relations relationRepo.RelationRepository,
	imageStorage storage.ImageStorage,
	redisClient *redis.Client,
) PostService {
	return &postService{
		posts:        posts,
		users:        users,
		comments:     comments,
		likes:        likes,
		relations:    relations,
		imageStorage: imageStorage,
		redisClient:  redisClient,
	}
}

func (s *postService) requireActiveAuthor(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperror.FromDB(err, "user not found")
	}
	if user.Suspended {
		return apperror.Forbidden("your account has been suspended")
	}
	return nil
}

func (s *postService) CreatePost(ctx context.Context, userID uuid.UUID, req postDto.CreatePostRequest) (*postDto.CreatePostResponse, error) {
	if err := s.requireActiveAuthor(ctx, userID); err != nil {
		return nil, err
	}

	cooldown := ratelimiter.GetDurationFromEnv("POST_CREATE_COOLDOWN", 30*time.Second)
	allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, s.redisClient, userID, "create_post", cooldown)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.TooManyRequests("you are creating posts too quickly")
	}

	post := &entity.Post{
		Title:      req.Title,
		Slug:       slug.ForTitle(req.Title),
		Summary:    req.Summary,
		CategoryID: req.CategoryID,
		UserID:     userID,
	}

	if req.CoverImageBase64 != "" {
		upload, err := s.imageStorage.UploadBase64(ctx, req.CoverImageBase64, "posts", "")
		if err != nil {
			return nil, err
		}
		post.CoverImageURL = &upload.URL
		post.CoverImagePath = &upload.Path
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperror.FromDB(err, "post not found")
	}

	if len(req.Tags) > 0 {
		if err := s.posts.ReplaceTags(ctx, post.ID, req.Tags); err != nil {
			return nil, err
		}
	}

	return &postDto.CreatePostResponse{ID: post.ID, Slug: post.Slug}, nil
}

func (s *postService) UpdatePost(ctx context.Context, userID, postID uuid.UUID, req postDto.UpdatePostRequest) (*postDto.CreatePostResponse, error) {
	existing, err := s.posts.FindOwned(ctx, postID, userID)
	if err != nil {
		return nil, apperror.FromDB(err, "post not found")
	}

	patch := postRepo.PostPatch{
		Summary:    req.Summary,
		CategoryID: req.CategoryID,
	}

	// Only re-slug when the title actually changes; slugs are links.
	newSlug := existing.Slug
	if req.Title != nil && *req.Title != existing.Title {
		patch.Title = req.Title
		newSlug = slug.ForTitle(*req.Title)
		patch.Slug = &newSlug
	}

	if req.CoverImageBase64 != nil && *req.CoverImageBase64 != "" {
		if existing.CoverImagePath != nil {
			if err := s.imageStorage.Delete(ctx, *existing.CoverImagePath); err != nil {
				return nil, err
			}
		}
		upload, err := s.imageStorage.UploadBase64(ctx, *req.CoverImageBase64, "posts", "")
		if err != nil {
			return nil, err
		}
		patch.CoverImageURL = &upload.URL
		patch.CoverImagePath = &upload.Path
	}

	if err := s.posts.Update(ctx, postID, patch); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		if err := s.posts.ReplaceTags(ctx, postID, req.Tags); err != nil {
			return nil, err
		}
	}

	return &postDto.CreatePostResponse{ID: postID, Slug: newSlug}, nil
}

func (s *postService) RemoveCoverImage(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.posts.FindOwned(ctx, postID, userID)
	if err != nil {
		return apperror.FromDB(err, "post not found")
	}

	if post.CoverImagePath == nil {
		return nil
	}

	if err := s.imageStorage.Delete(ctx, *post.CoverImagePath); err != nil {
		return err
	}

	return s.posts.Update(ctx, postID, postRepo.PostPatch{ClearCover: true})
}

func (s *postService) SaveContent(ctx context.Context, userID, postID uuid.UUID, doc editor.Document) error {
	if _, err := s.posts.FindOwned(ctx, postID, userID); err != nil {
		return apperror.FromDB(err, "post not found")
	}

	doc.Sanitize()
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return s.posts.UpdateContent(ctx, postID, datatypes.JSON(raw), doc.ReadTime())
}

func (s *postService) TogglePublish(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	post, err := s.posts.FindOwned(ctx, postID, userID)
	if err != nil {
		return false, apperror.FromDB(err, "post not found")
	}

	if post.IsDeleted {
		return false, apperror.Conflict("trashed posts cannot be published")
	}

	next := !post.Published
	patch := postRepo.PostPatch{Published: &next}
	if next && post.PublishedAt == nil {
		// First publish stamps publishedAt; later toggles never touch it.
		now := time.Now()
		patch.PublishedAt = &now
	}

	if err := s.posts.Update(ctx, postID, patch); err != nil {
		return false, err
	}
	return next, nil
}

func (s *postService) ToggleTrash(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	post, err := s.posts.FindOwned(ctx, postID, userID)
	if err != nil {
		return false, apperror.FromDB(err, "post not found")
	}

	next := !post.IsDeleted
	unpublished := false
	// Moving to or out of the trash always unpublishes.
	patch := postRepo.PostPatch{IsDeleted: &next, Published: &unpublished}

	if err := s.posts.Update(ctx, postID, patch); err != nil {
		return false, err
	}
	return next, nil
}

func (s *postService) PermanentDelete(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.posts.FindOwned(ctx, postID, userID)
	if err != nil {
		return apperror.FromDB(err, "post not found")
	}

	if !post.IsDeleted {
		return apperror.Conflict("move post to trash before deleting permanently")
	}

	if post.CoverImagePath != nil {
		if err := s.imageStorage.Delete(ctx, *post.CoverImagePath); err != nil {
			return err
		}
	}

	return s.posts.Delete(ctx, postID)
}

// IncrementViews is an explicit operation so reads stay idempotent. The
// redis key dedupes repeat views from one viewer for a few hours; without
// redis every call counts.
func (s *postService) IncrementViews(ctx context.Context, postID uuid.UUID, viewerKey string) error {
	if s.redisClient != nil && viewerKey != "" {
		key := fmt.Sprintf("view:post:%s:%s", postID, viewerKey)
		wasSet, err := s.redisClient.SetNX(ctx, key, "seen", 6*time.Hour).Result()
		if err == nil && !wasSet {
			return nil
		}
	}
	return s.posts.IncrementViews(ctx, postID)
}

func (s *postService) UploadContentImage(ctx context.Context, userID uuid.UUID, imageBase64 string) (*storage.UploadResult, error) {
	if err := s.requireActiveAuthor(ctx, userID); err != nil {
		return nil, err
	}
	return s.imageStorage.UploadBase64(ctx, imageBase64, "posts", "")
}
