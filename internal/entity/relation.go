package entity

import (
	"time"

	"github.com/google/uuid"
)

// Like existence is the "liked" state; the composite unique index is the
// source of truth for toggle idempotence.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post;index" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_clike_user_comment" json:"user_id"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_clike_user_comment;index" json:"comment_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Subscription means subscriber follows subscribed.
type Subscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sub_pair" json:"subscriber_id"`
	SubscribedID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sub_pair;index" json:"subscribed_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Block struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlockerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_block_pair" json:"blocker_id"`
	BlockedID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_block_pair;index" json:"blocked_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
