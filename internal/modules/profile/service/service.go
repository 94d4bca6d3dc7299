package profile

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"pena.web.id/penablog/internal/entity"
	postDto "pena.web.id/penablog/internal/modules/post/dto"
	postRepo "pena.web.id/penablog/internal/modules/post/repository"
	profileDto "pena.web.id/penablog/internal/modules/profile/dto"
	profileRepo "pena.web.id/penablog/internal/modules/profile/repository"
	relationRepo "pena.web.id/penablog/internal/modules/relation/repository"
	"pena.web.id/penablog/pkg/apperror"
)

const latestPostsCap = 5

type ProfileService interface {
	GetByUsername(ctx context.Context, username string, viewer *uuid.UUID) (*profileDto.ProfileView, error)
}

type profileService struct {
	repo      profileRepo.ProfileRepository
	posts     postRepo.PostRepository
	relations relationRepo.RelationRepository
}

func NewProfileService(
	repo profileRepo.ProfileRepository,
	posts postRepo.PostRepository,
	relations relationRepo.RelationRepository,
) ProfileService {
	return &profileService{repo: repo, posts: posts, relations: relations}
}

func (s *profileService) GetByUsername(ctx context.Context, username string, viewer *uuid.UUID) (*profileDto.ProfileView, error) {
	user, err := s.repo.FindActiveByUsername(ctx, username)
	if err != nil {
		return nil, apperror.FromDB(err, "user not found")
	}

	postsCount, err := s.repo.CountPublishedPosts(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	subscribers, err := s.relations.CountSubscribers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	subscribing, err := s.relations.CountSubscribing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	view := &profileDto.ProfileView{
		ID:       user.ID,
		Username: user.Username,
		JoinedAt: user.CreatedAt,
		Socials:  []entity.SocialLink{},
		Stats: profileDto.ProfileStats{
			Posts:       postsCount,
			Subscribers: subscribers,
			Subscribing: subscribing,
		},
		LatestPosts: []postDto.PostCard{},
	}

	if user.Profile != nil {
		view.DisplayName = user.Profile.DisplayName
		view.AvatarURL = user.Profile.AvatarURL
		view.CoverImageURL = user.Profile.CoverImageURL
		view.Bio = user.Profile.Bio
		view.Nationality = user.Profile.Nationality
		if len(user.Profile.Socials) > 0 {
			var socials []entity.SocialLink
			if err := json.Unmarshal(user.Profile.Socials, &socials); err == nil {
				view.Socials = socials
			}
		}
	}

	if viewer != nil {
		view.IsMe = *viewer == user.ID
		if !view.IsMe {
			if view.IsBlocked, err = s.relations.BlockExists(ctx, *viewer, user.ID); err != nil {
				return nil, err
			}
			if !view.IsBlocked {
				if view.IsFollowing, err = s.relations.IsSubscribed(ctx, *viewer, user.ID); err != nil {
					return nil, err
				}
			}
		}
	}

	// A block hides the post list but not the profile or its stats.
	if view.IsBlocked {
		return view, nil
	}

	latest, err := s.repo.LatestPublishedPosts(ctx, user.ID, latestPostsCap)
	if err != nil {
		return nil, err
	}
	if view.LatestPosts, err = s.toCards(ctx, user, latest); err != nil {
		return nil, err
	}

	return view, nil
}

func (s *profileService) toCards(ctx context.Context, author *entity.User, posts []entity.Post) ([]postDto.PostCard, error) {
	ids := make([]uuid.UUID, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}

	likeCounts, err := s.posts.LikeCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.posts.CommentCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	authorRef := postDto.AuthorRef{ID: author.ID, Username: author.Username}
	if author.Profile != nil {
		authorRef.DisplayName = author.Profile.DisplayName
		authorRef.AvatarURL = author.Profile.AvatarURL
	}

	cards := make([]postDto.PostCard, len(posts))
	for i, post := range posts {
		tags := make([]string, len(post.Tags))
		for j, tag := range post.Tags {
			tags[j] = tag.Name
		}

		cards[i] = postDto.PostCard{
			ID:            post.ID,
			Title:         post.Title,
			Summary:       post.Summary,
			Slug:          post.Slug,
			Tags:          tags,
			CoverImageURL: post.CoverImageURL,
			Views:         post.Views,
			ReadTime:      post.ReadTime,
			PublishedAt:   post.PublishedAt,
			UpdatedAt:     post.UpdatedAt,
			Author:        authorRef,
			LikesCount:    likeCounts[post.ID],
			CommentsCount: commentCounts[post.ID],
		}

		if post.Category != nil {
			cards[i].Category = &postDto.CategoryRef{
				ID:         post.Category.ID,
				Name:       post.Category.Name,
				Slug:       post.Category.Slug,
				ColorLight: post.Category.ColorLight,
				ColorDark:  post.Category.ColorDark,
			}
		}
	}
	return cards, nil
}
