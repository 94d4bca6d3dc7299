package dto

import (
	"github.com/google/uuid"

	feedRepo "pena.web.id/penablog/internal/modules/feed/repository"
	postDto "pena.web.id/penablog/internal/modules/post/dto"
)

// UserCard is one user in feed suggestions and explore results.
type UserCard struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	DisplayName      string    `json:"display_name"`
	AvatarURL        *string   `json:"avatar_url,omitempty"`
	Bio              *string   `json:"bio,omitempty"`
	PostsCount       int64     `json:"posts_count"`
	SubscribersCount int64     `json:"subscribers_count"`
	IsSubscribed     bool      `json:"is_subscribed"`
}

type PublicFeedResponse struct {
	Featured   []postDto.PostCard       `json:"featured"`
	Categories []feedRepo.CategoryCount `json:"categories"`
}

type PrivateFeedResponse struct {
	Posts        []postDto.PostCard `json:"posts"`
	PopularUsers []UserCard         `json:"popular_users"`
}

type ExploreResponse struct {
	Posts []postDto.PostCard `json:"posts"`
	Users []UserCard         `json:"users"`
}
