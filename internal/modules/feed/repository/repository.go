package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	"pena.web.id/penablog/internal/visibility"
)

// PostRow is a flat post card scanned straight out of the annotated feed
// queries. Category columns are nullable because posts may be
// uncategorized.
type PostRow struct {
	ID                 uuid.UUID
	Title              string
	Summary            string
	Slug               string
	CoverImageURL      *string
	Views              int
	ReadTime           int
	PublishedAt        *time.Time
	UpdatedAt          time.Time
	UserID             uuid.UUID
	CategoryID         *uuid.UUID
	AuthorUsername     string
	AuthorDisplayName  string
	AuthorAvatarURL    *string
	CategoryName       *string
	CategorySlug       *string
	CategoryColorLight *string
	CategoryColorDark  *string
	LikesCount         int64
	CommentsCount      int64
	IsLiked            bool
	IsSubscribedAuthor bool
}

// UserRow is one suggested or searched user with their activity score.
type UserRow struct {
	ID               uuid.UUID
	Username         string
	DisplayName      string
	AvatarURL        *string
	Bio              *string
	PostsCount       int64
	SubscribersCount int64
	Score            int64
	IsSubscribed     bool
}

type FeedRepository interface {
	SubscribedPool(ctx context.Context, viewer uuid.UUID, limit int) ([]PostRow, error)
	FeaturedPool(ctx context.Context, viewer *uuid.UUID, limit int) ([]PostRow, error)
	// PopularPool excludes the viewer's own posts and authors the viewer
	// already follows; those land in the subscribed pool instead.
	PopularPool(ctx context.Context, viewer uuid.UUID, limit int) ([]PostRow, error)
	PopularUsers(ctx context.Context, viewer *uuid.UUID, limit int) ([]UserRow, error)
	SearchPosts(ctx context.Context, viewer *uuid.UUID, query, sort string, limit int) ([]PostRow, error)
	SearchUsers(ctx context.Context, viewer *uuid.UUID, query string, limit int) ([]UserRow, error)
	TopCategories(ctx context.Context, limit int) ([]CategoryCount, error)
	TagsFor(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]string, error)
}

type CategoryCount struct {
	entity.Category
	PostsCount int64 `json:"posts_count"`
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

const cardSelect = `posts.id, posts.title, posts.summary, posts.slug, posts.cover_image_url,
	posts.views, posts.read_time, posts.published_at, posts.updated_at,
	posts.user_id, posts.category_id,
	users.username AS author_username,
	profiles.display_name AS author_display_name,
	profiles.avatar_url AS author_avatar_url,
	categories.name AS category_name,
	categories.slug AS category_slug,
	categories.color_light AS category_color_light,
	categories.color_dark AS category_color_dark,
	(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.is_deleted = false) AS comments_count`

// cards builds the shared annotated card query: visibility applied,
// published only (feed surfaces never show drafts, not even the
// author's own), author and category joined in. The visibility scope is
// applied up front, not via Scopes(): it contributes the users join and
// Scopes() runs only at execution time, after the profile join below
// already referenced users.
func (r *feedRepository) cards(ctx context.Context, viewer *uuid.UUID) *gorm.DB {
	q := visibility.VisiblePosts(viewer)(r.db.WithContext(ctx).Model(&entity.Post{})).
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Joins("LEFT JOIN categories ON categories.id = posts.category_id").
		Where("posts.published = ?", true).
		Where("posts.suspended = ?", false)

	if viewer != nil {
		return q.Select(cardSelect+`,
	EXISTS (SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS is_liked,
	EXISTS (SELECT 1 FROM subscriptions WHERE subscriptions.subscriber_id = ? AND subscriptions.subscribed_id = posts.user_id) AS is_subscribed_author`,
			*viewer, *viewer)
	}
	return q.Select(cardSelect+`, ? AS is_liked, ? AS is_subscribed_author`, false, false)
}

func (r *feedRepository) SubscribedPool(ctx context.Context, viewer uuid.UUID, limit int) ([]PostRow, error) {
	var rows []PostRow
	err := r.cards(ctx, &viewer).
		Where("EXISTS (SELECT 1 FROM subscriptions WHERE subscriptions.subscriber_id = ? AND subscriptions.subscribed_id = posts.user_id)", viewer).
		Order("posts.published_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *feedRepository) FeaturedPool(ctx context.Context, viewer *uuid.UUID, limit int) ([]PostRow, error) {
	var rows []PostRow
	err := r.cards(ctx, viewer).
		Where("posts.is_featured = ?", true).
		Order("posts.published_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *feedRepository) PopularPool(ctx context.Context, viewer uuid.UUID, limit int) ([]PostRow, error) {
	var rows []PostRow
	err := r.cards(ctx, &viewer).
		Where("posts.user_id <> ?", viewer).
		Where("NOT EXISTS (SELECT 1 FROM subscriptions WHERE subscriptions.subscriber_id = ? AND subscriptions.subscribed_id = posts.user_id)", viewer).
		Order("posts.views DESC, likes_count DESC, comments_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// livePosts is the subquery condition shared by the user scoring
// queries: published, untouched by moderation.
const livePosts = `p.published = true AND p.is_deleted = false AND p.suspended = false`

const userSelect = `users.id, users.username,
	profiles.display_name AS display_name,
	profiles.avatar_url AS avatar_url,
	profiles.bio AS bio,
	(SELECT COUNT(*) FROM posts p WHERE p.user_id = users.id AND ` + livePosts + `) AS posts_count,
	(SELECT COUNT(*) FROM subscriptions WHERE subscriptions.subscribed_id = users.id) AS subscribers_count,
	(SELECT COUNT(*) FROM posts p WHERE p.user_id = users.id AND ` + livePosts + `)
	+ 2 * (SELECT COUNT(*) FROM likes JOIN posts p ON p.id = likes.post_id WHERE p.user_id = users.id AND ` + livePosts + `)
	+ (SELECT COUNT(*) FROM comments JOIN posts p ON p.id = comments.post_id WHERE p.user_id = users.id AND comments.is_deleted = false AND ` + livePosts + `) AS score`

func (r *feedRepository) users(ctx context.Context, viewer *uuid.UUID) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.User{}).
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Scopes(visibility.NotBlockedUsers(viewer)).
		Where("users.active = ?", true).
		Where("users.suspended = ?", false)

	if viewer != nil {
		return q.Select(userSelect+`,
	EXISTS (SELECT 1 FROM subscriptions WHERE subscriptions.subscriber_id = ? AND subscriptions.subscribed_id = users.id) AS is_subscribed`,
			*viewer)
	}
	return q.Select(userSelect+`, ? AS is_subscribed`, false)
}

func (r *feedRepository) PopularUsers(ctx context.Context, viewer *uuid.UUID, limit int) ([]UserRow, error) {
	q := r.users(ctx, viewer)
	if viewer != nil {
		q = q.Where("users.id <> ?", *viewer)
	}

	var rows []UserRow
	err := q.Order("score DESC").Limit(limit).Scan(&rows).Error
	return rows, err
}

func (r *feedRepository) SearchPosts(ctx context.Context, viewer *uuid.UUID, query, sort string, limit int) ([]PostRow, error) {
	pattern := "%" + query + "%"
	q := r.cards(ctx, viewer).
		Where(`LOWER(posts.title) LIKE LOWER(?)
	OR LOWER(categories.name) LIKE LOWER(?)
	OR EXISTS (SELECT 1 FROM post_tags WHERE post_tags.post_id = posts.id AND LOWER(post_tags.name) = LOWER(?))`,
			pattern, pattern, query)

	switch sort {
	case "popular":
		q = q.Order("posts.views DESC, likes_count DESC")
	case "trending":
		q = q.Order("comments_count DESC, posts.published_at DESC")
	default:
		// "latest" means newest by creation, not publication.
		q = q.Order("posts.created_at DESC")
	}

	var rows []PostRow
	err := q.Limit(limit).Scan(&rows).Error
	return rows, err
}

func (r *feedRepository) SearchUsers(ctx context.Context, viewer *uuid.UUID, query string, limit int) ([]UserRow, error) {
	pattern := "%" + query + "%"

	var rows []UserRow
	err := r.users(ctx, viewer).
		Where("LOWER(users.username) LIKE LOWER(?) OR LOWER(profiles.display_name) LIKE LOWER(?)", pattern, pattern).
		Order("posts_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *feedRepository) TopCategories(ctx context.Context, limit int) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).Model(&entity.Category{}).
		Select(`categories.*,
	(SELECT COUNT(*) FROM posts p
		JOIN users ON users.id = p.user_id
		WHERE p.category_id = categories.id
		AND users.suspended = false
		AND ` + livePosts + `) AS posts_count`).
		Order("posts_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *feedRepository) TagsFor(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	tags := make(map[uuid.UUID][]string, len(postIDs))
	if len(postIDs) == 0 {
		return tags, nil
	}

	var rows []entity.PostTag
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		tags[row.PostID] = append(tags[row.PostID], row.Name)
	}
	return tags, nil
}
