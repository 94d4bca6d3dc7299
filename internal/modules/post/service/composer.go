package post

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"pena.web.id/penablog/internal/entity"
	commentRepo "pena.web.id/penablog/internal/modules/comment/repository"
	postDto "pena.web.id/penablog/internal/modules/post/dto"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/editor"
)

// GetBySlug assembles the reader view of a post: the post itself behind
// the visibility rules, its visible comments, and the viewer's own
// relation to it. A post whose editor document was never saved reads as
// not found even for its author on this surface.
func (s *postService) GetBySlug(ctx context.Context, slugStr string, viewer *uuid.UUID) (*postDto.PostDetail, error) {
	post, err := s.posts.FindVisibleBySlug(ctx, slugStr, viewer)
	if err != nil {
		return nil, apperror.FromDB(err, "post not found")
	}
	return s.composeDetail(ctx, post, viewer)
}

// GetAuthorView is the author's preview of their own post. It skips the
// published check but keeps everything else identical to the reader view.
func (s *postService) GetAuthorView(ctx context.Context, slugStr string, userID uuid.UUID) (*postDto.PostDetail, error) {
	post, err := s.posts.FindAuthorBySlug(ctx, slugStr, userID)
	if err != nil {
		return nil, apperror.FromDB(err, "post not found")
	}
	return s.composeDetail(ctx, post, &userID)
}

func (s *postService) composeDetail(ctx context.Context, post *entity.Post, viewer *uuid.UUID) (*postDto.PostDetail, error) {
	doc, err := editor.Parse(post.Content)
	if err != nil || doc.IsEmpty() {
		return nil, apperror.NotFound("post not found")
	}

	rows, err := s.comments.ListVisibleByPost(ctx, post.ID, viewer)
	if err != nil {
		return nil, err
	}

	likeCounts, err := s.posts.LikeCounts(ctx, []uuid.UUID{post.ID})
	if err != nil {
		return nil, err
	}

	detail := &postDto.PostDetail{
		Title:         post.Title,
		Content:       json.RawMessage(post.Content),
		Summary:       post.Summary,
		Slug:          post.Slug,
		Tags:          tagNames(post.Tags),
		CoverImageURL: post.CoverImageURL,
		PublishedAt:   post.PublishedAt,
		IsFeatured:    post.IsFeatured,
		Views:         post.Views,
		ReadTime:      post.ReadTime,
		Category:      categoryRef(post.Category),
		Author:        authorRef(&post.Author),
		LikesCount:    likeCounts[post.ID],
		CommentsCount: int64(len(rows)),
		Comments:      commentViews(rows),
	}

	if viewer != nil {
		if detail.IsLiked, err = s.likes.HasPostLike(ctx, *viewer, post.ID); err != nil {
			return nil, err
		}
		if *viewer != post.UserID {
			if detail.IsFollowing, err = s.relations.IsSubscribed(ctx, *viewer, post.UserID); err != nil {
				return nil, err
			}
		}
	}

	return detail, nil
}

func (s *postService) GetForEditing(ctx context.Context, userID, postID uuid.UUID) (*postDto.PostForEditing, error) {
	post, err := s.posts.FindOwned(ctx, postID, userID)
	if err != nil {
		return nil, apperror.FromDB(err, "post not found")
	}

	return &postDto.PostForEditing{
		ID:            post.ID,
		Title:         post.Title,
		Content:       json.RawMessage(post.Content),
		Summary:       post.Summary,
		Slug:          post.Slug,
		Tags:          tagNames(post.Tags),
		CoverImageURL: post.CoverImageURL,
		Published:     post.Published,
		Category:      categoryRef(post.Category),
	}, nil
}

func (s *postService) ListMyPosts(ctx context.Context, userID uuid.UUID) ([]postDto.MyPost, error) {
	posts, err := s.posts.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

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

	out := make([]postDto.MyPost, len(posts))
	for i, post := range posts {
		out[i] = postDto.MyPost{
			ID:            post.ID,
			Title:         post.Title,
			Summary:       post.Summary,
			Slug:          post.Slug,
			Tags:          tagNames(post.Tags),
			CoverImageURL: post.CoverImageURL,
			Views:         post.Views,
			ReadTime:      post.ReadTime,
			Published:     post.Published,
			IsDeleted:     post.IsDeleted,
			UpdatedAt:     post.UpdatedAt,
			Category:      categoryRef(post.Category),
			LikesCount:    likeCounts[post.ID],
			CommentsCount: commentCounts[post.ID],
		}
	}
	return out, nil
}

func tagNames(tags []entity.PostTag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}

func categoryRef(category *entity.Category) *postDto.CategoryRef {
	if category == nil {
		return nil
	}
	return &postDto.CategoryRef{
		ID:         category.ID,
		Name:       category.Name,
		Slug:       category.Slug,
		ColorLight: category.ColorLight,
		ColorDark:  category.ColorDark,
	}
}

func authorRef(user *entity.User) postDto.AuthorRef {
	ref := postDto.AuthorRef{
		ID:       user.ID,
		Username: user.Username,
	}
	if user.Profile != nil {
		ref.DisplayName = user.Profile.DisplayName
		ref.AvatarURL = user.Profile.AvatarURL
	}
	return ref
}

func commentViews(rows []commentRepo.CommentRow) []postDto.CommentView {
	views := make([]postDto.CommentView, len(rows))
	for i, row := range rows {
		views[i] = postDto.CommentView{
			ID:        row.ID,
			Content:   row.Content,
			IsEdited:  row.IsEdited,
			CreatedAt: row.CreatedAt,
			Author: postDto.AuthorRef{
				ID:          row.UserID,
				Username:    row.AuthorUsername,
				DisplayName: row.AuthorDisplayName,
				AvatarURL:   row.AuthorAvatarURL,
			},
			LikesCount: row.LikesCount,
			IsLiked:    row.IsLiked,
		}
	}
	return views
}
