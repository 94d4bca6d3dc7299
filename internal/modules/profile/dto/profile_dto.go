package dto

import (
	"time"

	"github.com/google/uuid"

	"pena.web.id/penablog/internal/entity"
	postDto "pena.web.id/penablog/internal/modules/post/dto"
)

type ProfileStats struct {
	Posts       int64 `json:"posts"`
	Subscribers int64 `json:"subscribers"`
	Subscribing int64 `json:"subscribing"`
}

// ProfileView is the public profile page payload. LatestPosts is empty
// when a block exists between viewer and owner; the stats stay real.
type ProfileView struct {
	ID            uuid.UUID           `json:"id"`
	Username      string              `json:"username"`
	DisplayName   string              `json:"display_name"`
	AvatarURL     *string             `json:"avatar_url,omitempty"`
	CoverImageURL *string             `json:"cover_image_url,omitempty"`
	Bio           *string             `json:"bio,omitempty"`
	Nationality   *string             `json:"nationality,omitempty"`
	Socials       []entity.SocialLink `json:"socials"`
	JoinedAt      time.Time           `json:"joined_at"`
	Stats         ProfileStats        `json:"stats"`
	IsMe          bool                `json:"is_me"`
	IsFollowing   bool                `json:"is_following"`
	IsBlocked     bool                `json:"is_blocked"`
	LatestPosts   []postDto.PostCard  `json:"latest_posts"`
}
