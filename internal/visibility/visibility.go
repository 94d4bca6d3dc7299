// Package visibility centralizes the rules deciding whether a viewer may
// see a post, comment or user. Every read path applies these rules at
// query time; single-entity fetch misses surface a generic not-found so
// callers cannot distinguish "absent" from "hidden".
package visibility

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
)

// RelationStore is the relationship lookup contract the predicate needs.
// Lookups are always fresh per request; block and suspension decisions
// are security relevant and never cached.
type RelationStore interface {
	BlockExists(ctx context.Context, a, b uuid.UUID) (bool, error)
	IsSubscribed(ctx context.Context, subscriber, subscribed uuid.UUID) (bool, error)
}

// PostVisible is the pure form of the post predicate. blocked is the
// symmetric block check between viewer and author, authorSuspended the
// author's suspension flag.
func PostVisible(viewer *uuid.UUID, post *entity.Post, authorSuspended, blocked bool) bool {
	if post.IsDeleted || authorSuspended {
		return false
	}
	owner := viewer != nil && *viewer == post.UserID
	if post.Suspended && !owner {
		return false
	}
	if !post.Published && !owner {
		return false
	}
	if blocked && !owner {
		return false
	}
	return true
}

// CommentVisible gates a comment independently of its parent post.
func CommentVisible(comment *entity.Comment, authorSuspended, blocked bool) bool {
	return !comment.IsDeleted && !authorSuspended && !blocked
}

// VisiblePosts is the query-time form of PostVisible, applied by every
// repository that reads posts. The viewer's own posts bypass the
// published and block clauses so authors keep seeing their drafts.
func VisiblePosts(viewer *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.
			Joins("JOIN users ON users.id = posts.user_id").
			Where("users.suspended = ?", false).
			Where("posts.is_deleted = ?", false)

		if viewer == nil {
			return db.
				Where("posts.suspended = ?", false).
				Where("posts.published = ?", true)
		}

		return db.
			Where("posts.suspended = ? OR posts.user_id = ?", false, *viewer).
			Where("posts.published = ? OR posts.user_id = ?", true, *viewer).
			Where(
				"posts.user_id = ? OR NOT EXISTS (SELECT 1 FROM blocks WHERE (blocks.blocker_id = ? AND blocks.blocked_id = posts.user_id) OR (blocks.blocker_id = posts.user_id AND blocks.blocked_id = ?))",
				*viewer, *viewer, *viewer,
			)
	}
}

// NotBlockedUsers filters a users query down to those without a block in
// either direction relative to the viewer.
func NotBlockedUsers(viewer *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewer == nil {
			return db
		}
		return db.Where(
			"users.id = ? OR NOT EXISTS (SELECT 1 FROM blocks WHERE (blocks.blocker_id = ? AND blocks.blocked_id = users.id) OR (blocks.blocker_id = users.id AND blocks.blocked_id = ?))",
			*viewer, *viewer, *viewer,
		)
	}
}
