package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title            string     `json:"title" binding:"required,min=3,max=255"`
	Summary          string     `json:"summary" binding:"max=500"`
	Tags             []string   `json:"tags" binding:"max=10,dive,min=1,max=50"`
	CategoryID       *uuid.UUID `json:"category_id"`
	CoverImageBase64 string     `json:"cover_image_base64"`
}

// UpdatePostRequest is a field-level patch; nil means "leave unchanged".
type UpdatePostRequest struct {
	Title            *string    `json:"title" binding:"omitempty,min=3,max=255"`
	Summary          *string    `json:"summary" binding:"omitempty,max=500"`
	Tags             []string   `json:"tags" binding:"omitempty,max=10,dive,min=1,max=50"`
	CategoryID       *uuid.UUID `json:"category_id"`
	CoverImageBase64 *string    `json:"cover_image_base64"`
}

type UploadImageRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

type CategoryRef struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	ColorLight string    `json:"color_light"`
	ColorDark  string    `json:"color_dark"`
}

type AuthorRef struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
}

// PostCard is the shape of one post in feed, explore and profile lists.
type PostCard struct {
	ID                 uuid.UUID    `json:"id"`
	Title              string       `json:"title"`
	Summary            string       `json:"summary"`
	Slug               string       `json:"slug"`
	Tags               []string     `json:"tags"`
	CoverImageURL      *string      `json:"cover_image_url,omitempty"`
	Views              int          `json:"views"`
	ReadTime           int          `json:"read_time"`
	PublishedAt        *time.Time   `json:"published_at,omitempty"`
	UpdatedAt          time.Time    `json:"updated_at"`
	Category           *CategoryRef `json:"category,omitempty"`
	Author             AuthorRef    `json:"author"`
	LikesCount         int64        `json:"likes_count"`
	CommentsCount      int64        `json:"comments_count"`
	IsLiked            bool         `json:"is_liked"`
	IsSubscribedAuthor bool         `json:"is_subscribed_author"`
	Source             string       `json:"source,omitempty"`
}

type CommentView struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	IsEdited   bool      `json:"is_edited"`
	CreatedAt  time.Time `json:"created_at"`
	Author     AuthorRef `json:"author"`
	LikesCount int64     `json:"likes_count"`
	IsLiked    bool      `json:"is_liked"`
}

// PostDetail is the assembled single-post view.
type PostDetail struct {
	Title         string          `json:"title"`
	Content       json.RawMessage `json:"content"`
	Summary       string          `json:"summary"`
	Slug          string          `json:"slug"`
	Tags          []string        `json:"tags"`
	CoverImageURL *string         `json:"cover_image_url,omitempty"`
	PublishedAt   *time.Time      `json:"published_at,omitempty"`
	IsFeatured    bool            `json:"is_featured"`
	Views         int             `json:"views"`
	ReadTime      int             `json:"read_time"`
	Category      *CategoryRef    `json:"category,omitempty"`
	Author        AuthorRef       `json:"author"`
	IsFollowing   bool            `json:"is_following"`
	IsLiked       bool            `json:"is_liked"`
	LikesCount    int64           `json:"likes_count"`
	CommentsCount int64           `json:"comments_count"`
	Comments      []CommentView   `json:"comments"`
}

// PostForEditing is the author-only editor payload.
type PostForEditing struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Content       json.RawMessage `json:"content,omitempty"`
	Summary       string          `json:"summary"`
	Slug          string          `json:"slug"`
	Tags          []string        `json:"tags"`
	CoverImageURL *string         `json:"cover_image_url,omitempty"`
	Published     bool            `json:"published"`
	Category      *CategoryRef    `json:"category,omitempty"`
}

// MyPost is one row of the author dashboard list; it includes trash and
// publication state the public shapes never expose.
type MyPost struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Summary       string       `json:"summary"`
	Slug          string       `json:"slug"`
	Tags          []string     `json:"tags"`
	CoverImageURL *string      `json:"cover_image_url,omitempty"`
	Views         int          `json:"views"`
	ReadTime      int          `json:"read_time"`
	Published     bool         `json:"published"`
	IsDeleted     bool         `json:"is_deleted"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Category      *CategoryRef `json:"category,omitempty"`
	LikesCount    int64        `json:"likes_count"`
	CommentsCount int64        `json:"comments_count"`
}

type CreatePostResponse struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
}
