package feed

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	feedDto "pena.web.id/penablog/internal/modules/feed/dto"
	feedRepo "pena.web.id/penablog/internal/modules/feed/repository"
	postDto "pena.web.id/penablog/internal/modules/post/dto"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/pkg/apperror"
)

const (
	subscribedCap   = 10
	featuredCap     = 5
	popularCap      = 10
	publicCap       = 6
	topCategoryCap  = 5
	popularUsersCap = 10
	explorePostCap  = 20
	exploreUserCap  = 10
)

const (
	sourceSubscribed = "subscribed"
	sourceFeatured   = "featured"
	sourcePopular    = "popular"
)

type FeedService interface {
	PublicFeed(ctx context.Context) (*feedDto.PublicFeedResponse, error)
	PrivateFeed(ctx context.Context, userID uuid.UUID) (*feedDto.PrivateFeedResponse, error)
	Explore(ctx context.Context, viewer *uuid.UUID, query, sort string) (*feedDto.ExploreResponse, error)
}

type feedService struct {
	repo  feedRepo.FeedRepository
	users userRepo.UserRepository
}

func NewFeedService(repo feedRepo.FeedRepository, users userRepo.UserRepository) FeedService {
	return &feedService{repo: repo, users: users}
}

// PublicFeed is the anonymous landing page: newest featured posts and
// the most active categories, fetched concurrently.
func (s *feedService) PublicFeed(ctx context.Context) (*feedDto.PublicFeedResponse, error) {
	var (
		wg          sync.WaitGroup
		featured    []feedRepo.PostRow
		categories  []feedRepo.CategoryCount
		featErr     error
		categoryErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		featured, featErr = s.repo.FeaturedPool(ctx, nil, publicCap)
	}()
	go func() {
		defer wg.Done()
		categories, categoryErr = s.repo.TopCategories(ctx, topCategoryCap)
	}()
	wg.Wait()

	if featErr != nil {
		return nil, featErr
	}
	if categoryErr != nil {
		return nil, categoryErr
	}

	cards, err := s.toCards(ctx, featured, sourceFeatured)
	if err != nil {
		return nil, err
	}

	return &feedDto.PublicFeedResponse{Featured: cards, Categories: categories}, nil
}

// PrivateFeed assembles the signed-in home feed from three pools plus
// user suggestions. The pools are concatenated subscribed, featured,
// popular; a post qualifying for more than one pool appears in each.
func (s *feedService) PrivateFeed(ctx context.Context, userID uuid.UUID) (*feedDto.PrivateFeedResponse, error) {
	viewer, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.FromDB(err, "user not found")
	}
	if viewer.Suspended {
		return nil, apperror.Forbidden("your account has been suspended")
	}

	var (
		wg           sync.WaitGroup
		subscribed   []feedRepo.PostRow
		featured     []feedRepo.PostRow
		popular      []feedRepo.PostRow
		suggested    []feedRepo.UserRow
		errSub       error
		errFeat      error
		errPop       error
		errSuggested error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		subscribed, errSub = s.repo.SubscribedPool(ctx, userID, subscribedCap)
	}()
	go func() {
		defer wg.Done()
		featured, errFeat = s.repo.FeaturedPool(ctx, &userID, featuredCap)
	}()
	go func() {
		defer wg.Done()
		popular, errPop = s.repo.PopularPool(ctx, userID, popularCap)
	}()
	go func() {
		defer wg.Done()
		suggested, errSuggested = s.repo.PopularUsers(ctx, &userID, popularUsersCap)
	}()
	wg.Wait()

	for _, err := range []error{errSub, errFeat, errPop, errSuggested} {
		if err != nil {
			return nil, err
		}
	}

	rows := make([]feedRepo.PostRow, 0, len(subscribed)+len(featured)+len(popular))
	sources := make([]string, 0, cap(rows))
	for _, row := range subscribed {
		rows = append(rows, row)
		sources = append(sources, sourceSubscribed)
	}
	for _, row := range featured {
		rows = append(rows, row)
		sources = append(sources, sourceFeatured)
	}
	for _, row := range popular {
		rows = append(rows, row)
		sources = append(sources, sourcePopular)
	}

	cards, err := s.toCards(ctx, rows, "")
	if err != nil {
		return nil, err
	}
	for i := range cards {
		cards[i].Source = sources[i]
	}

	return &feedDto.PrivateFeedResponse{
		Posts:        cards,
		PopularUsers: toUserCards(suggested),
	}, nil
}

// Explore searches posts and users. A blank query returns empty result
// sets without touching storage.
func (s *feedService) Explore(ctx context.Context, viewer *uuid.UUID, query, sort string) (*feedDto.ExploreResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &feedDto.ExploreResponse{
			Posts: []postDto.PostCard{},
			Users: []feedDto.UserCard{},
		}, nil
	}

	var (
		wg       sync.WaitGroup
		posts    []feedRepo.PostRow
		users    []feedRepo.UserRow
		errPosts error
		errUsers error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		posts, errPosts = s.repo.SearchPosts(ctx, viewer, query, sort, explorePostCap)
	}()
	go func() {
		defer wg.Done()
		users, errUsers = s.repo.SearchUsers(ctx, viewer, query, exploreUserCap)
	}()
	wg.Wait()

	if errPosts != nil {
		return nil, errPosts
	}
	if errUsers != nil {
		return nil, errUsers
	}

	cards, err := s.toCards(ctx, posts, "")
	if err != nil {
		return nil, err
	}

	return &feedDto.ExploreResponse{Posts: cards, Users: toUserCards(users)}, nil
}

func (s *feedService) toCards(ctx context.Context, rows []feedRepo.PostRow, source string) ([]postDto.PostCard, error) {
	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	tags, err := s.repo.TagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	cards := make([]postDto.PostCard, len(rows))
	for i, row := range rows {
		cards[i] = toCard(row, tags[row.ID], source)
	}
	return cards, nil
}

func toCard(row feedRepo.PostRow, tags []string, source string) postDto.PostCard {
	if tags == nil {
		tags = []string{}
	}

	card := postDto.PostCard{
		ID:            row.ID,
		Title:         row.Title,
		Summary:       row.Summary,
		Slug:          row.Slug,
		Tags:          tags,
		CoverImageURL: row.CoverImageURL,
		Views:         row.Views,
		ReadTime:      row.ReadTime,
		PublishedAt:   row.PublishedAt,
		UpdatedAt:     row.UpdatedAt,
		Author: postDto.AuthorRef{
			ID:          row.UserID,
			Username:    row.AuthorUsername,
			DisplayName: row.AuthorDisplayName,
			AvatarURL:   row.AuthorAvatarURL,
		},
		LikesCount:         row.LikesCount,
		CommentsCount:      row.CommentsCount,
		IsLiked:            row.IsLiked,
		IsSubscribedAuthor: row.IsSubscribedAuthor,
		Source:             source,
	}

	if row.CategoryID != nil && row.CategoryName != nil {
		card.Category = &postDto.CategoryRef{
			ID:   *row.CategoryID,
			Name: *row.CategoryName,
		}
		if row.CategorySlug != nil {
			card.Category.Slug = *row.CategorySlug
		}
		if row.CategoryColorLight != nil {
			card.Category.ColorLight = *row.CategoryColorLight
		}
		if row.CategoryColorDark != nil {
			card.Category.ColorDark = *row.CategoryColorDark
		}
	}

	return card
}

func toUserCards(rows []feedRepo.UserRow) []feedDto.UserCard {
	cards := make([]feedDto.UserCard, len(rows))
	for i, row := range rows {
		cards[i] = feedDto.UserCard{
			ID:               row.ID,
			Username:         row.Username,
			DisplayName:      row.DisplayName,
			AvatarURL:        row.AvatarURL,
			Bio:              row.Bio,
			PostsCount:       row.PostsCount,
			SubscribersCount: row.SubscribersCount,
			IsSubscribed:     row.IsSubscribed,
		}
	}
	return cards
}
