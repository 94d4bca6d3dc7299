package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	feedRepo "pena.web.id/penablog/internal/modules/feed/repository"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/pkg/apperror"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Profile{}, &entity.Settings{},
		&entity.Category{}, &entity.Post{}, &entity.PostTag{},
		&entity.Comment{}, &entity.Like{}, &entity.CommentLike{},
		&entity.Subscription{}, &entity.Block{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	user := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Active:       true,
		Profile:      &entity.Profile{DisplayName: username},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type postOpts struct {
	featured bool
	views    int
	ago      time.Duration
}

func publish(t *testing.T, db *gorm.DB, author *entity.User, title string, opts postOpts) *entity.Post {
	t.Helper()
	publishedAt := time.Now().Add(-opts.ago)
	post := &entity.Post{
		Title:       title,
		Slug:        title,
		UserID:      author.ID,
		Published:   true,
		IsFeatured:  opts.featured,
		Views:       opts.views,
		PublishedAt: &publishedAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func newService(db *gorm.DB) FeedService {
	return NewFeedService(feedRepo.NewFeedRepository(db), userRepo.NewUserRepository(db))
}

func TestPublicFeed(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	alice := createUser(t, db, "alice")

	publish(t, db, alice, "older-featured", postOpts{featured: true, ago: 2 * time.Hour})
	publish(t, db, alice, "newer-featured", postOpts{featured: true, ago: time.Hour})
	publish(t, db, alice, "plain", postOpts{})

	category := &entity.Category{Name: "Tech", Slug: "tech"}
	require.NoError(t, db.Create(category).Error)

	feed, err := svc.PublicFeed(ctx)
	require.NoError(t, err)

	require.Len(t, feed.Featured, 2, "only featured posts on the landing page")
	assert.Equal(t, "newer-featured", feed.Featured[0].Title)
	assert.Equal(t, "older-featured", feed.Featured[1].Title)
	assert.Equal(t, "featured", feed.Featured[0].Source)

	require.Len(t, feed.Categories, 1)
	assert.Equal(t, "Tech", feed.Categories[0].Name)
}

func TestPrivateFeedPools(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	viewer := createUser(t, db, "viewer")
	followed := createUser(t, db, "followed")
	stranger := createUser(t, db, "stranger")
	require.NoError(t, db.Create(&entity.Subscription{SubscriberID: viewer.ID, SubscribedID: followed.ID}).Error)

	publish(t, db, followed, "from-followed", postOpts{ago: time.Hour})
	publish(t, db, stranger, "hot", postOpts{views: 100})
	publish(t, db, viewer, "my-own", postOpts{views: 500})
	// Featured by a followed author lands in both pools.
	publish(t, db, followed, "followed-featured", postOpts{featured: true})

	feed, err := svc.PrivateFeed(ctx, viewer.ID)
	require.NoError(t, err)

	bySource := map[string][]string{}
	for _, card := range feed.Posts {
		bySource[card.Source] = append(bySource[card.Source], card.Title)
	}

	assert.ElementsMatch(t, []string{"from-followed", "followed-featured"}, bySource["subscribed"])
	assert.ElementsMatch(t, []string{"followed-featured"}, bySource["featured"],
		"a post qualifying for two pools appears in both")
	assert.ElementsMatch(t, []string{"hot"}, bySource["popular"],
		"popular excludes the viewer's own posts and followed authors")
}

func TestPrivateFeedSuspendedViewer(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)
	viewer := createUser(t, db, "viewer")
	require.NoError(t, db.Model(&entity.User{}).Where("id = ?", viewer.ID).Update("suspended", true).Error)

	_, err := svc.PrivateFeed(ctx, viewer.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestPopularUsersScore(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(db)

	viewer := createUser(t, db, "viewer")
	prolific := createUser(t, db, "prolific")
	liked := createUser(t, db, "liked")
	fan := createUser(t, db, "fan")

	// prolific: 2 posts, no engagement -> score 2.
	publish(t, db, prolific, "p1", postOpts{})
	publish(t, db, prolific, "p2", postOpts{})

	// liked: 1 post, 2 likes, 1 comment -> score 1 + 2*2 + 1 = 6.
	hit := publish(t, db, liked, "hit", postOpts{})
	require.NoError(t, db.Create(&entity.Like{UserID: fan.ID, PostID: hit.ID}).Error)
	require.NoError(t, db.Create(&entity.Like{UserID: viewer.ID, PostID: hit.ID}).Error)
	require.NoError(t, db.Create(&entity.Comment{Content: "wow", UserID: fan.ID, PostID: hit.ID}).Error)

	feed, err := svc.PrivateFeed(ctx, viewer.ID)
	require.NoError(t, err)

	var order []string
	for _, card := range feed.PopularUsers {
		order = append(order, card.Username)
	}
	require.GreaterOrEqual(t, len(order), 2)
	assert.Equal(t, "liked", order[0], "likes weigh double")
	assert.Equal(t, "prolific", order[1])
	assert.NotContains(t, order, "viewer", "suggestions never include the viewer")
}

func TestExplore(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query touches nothing", func(t *testing.T) {
		svc := NewFeedService(nil, nil)

		result, err := svc.Explore(ctx, nil, "   ", "")
		require.NoError(t, err)
		assert.Empty(t, result.Posts)
		assert.Empty(t, result.Users)
	})

	t.Run("matches title, tag and username", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		gopher := createUser(t, db, "gopher")
		other := createUser(t, db, "other")

		publish(t, db, other, "Learning Go Generics", postOpts{})
		tagged := publish(t, db, other, "Untitled", postOpts{})
		require.NoError(t, db.Create(&entity.PostTag{PostID: tagged.ID, Name: "go"}).Error)
		publish(t, db, gopher, "Unrelated", postOpts{})

		result, err := svc.Explore(ctx, nil, "go", "")
		require.NoError(t, err)

		var titles []string
		for _, card := range result.Posts {
			titles = append(titles, card.Title)
		}
		assert.ElementsMatch(t, []string{"Learning Go Generics", "Untitled"}, titles)

		require.Len(t, result.Users, 1)
		assert.Equal(t, "gopher", result.Users[0].Username)
	})

	t.Run("blocked authors are filtered out", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		viewer := createUser(t, db, "viewer")
		blocked := createUser(t, db, "blocked-author")
		require.NoError(t, db.Create(&entity.Block{BlockerID: viewer.ID, BlockedID: blocked.ID}).Error)
		publish(t, db, blocked, "blocked-post", postOpts{})

		result, err := svc.Explore(ctx, &viewer.ID, "blocked", "")
		require.NoError(t, err)
		assert.Empty(t, result.Posts)
		assert.Empty(t, result.Users)
	})

	t.Run("latest sort follows creation time", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		author := createUser(t, db, "author")

		// The draft written first but published last must not jump the queue.
		early := publish(t, db, author, "go-early-draft", postOpts{})
		late := publish(t, db, author, "go-late-draft", postOpts{ago: 2 * time.Hour})
		require.NoError(t, db.Model(early).Update("created_at", time.Now().Add(-3*time.Hour)).Error)
		require.NoError(t, db.Model(late).Update("created_at", time.Now().Add(-time.Hour)).Error)

		result, err := svc.Explore(ctx, nil, "go", "")
		require.NoError(t, err)
		require.Len(t, result.Posts, 2)
		assert.Equal(t, "go-late-draft", result.Posts[0].Title)
	})

	t.Run("popular sort orders by views", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newService(db)
		author := createUser(t, db, "author")
		publish(t, db, author, "go-quiet", postOpts{views: 1, ago: time.Hour})
		publish(t, db, author, "go-loud", postOpts{views: 50, ago: 2 * time.Hour})

		result, err := svc.Explore(ctx, nil, "go", "popular")
		require.NoError(t, err)
		require.Len(t, result.Posts, 2)
		assert.Equal(t, "go-loud", result.Posts[0].Title)
	})
}
