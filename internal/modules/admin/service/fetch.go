package admin

import (
	"context"

	"pena.web.id/penablog/internal/entity"
	adminRepo "pena.web.id/penablog/internal/modules/admin/repository"
)

// FetchService serves the moderation dashboard listings.
type FetchService interface {
	Users(ctx context.Context, query string, page, limit int) ([]entity.User, int64, error)
	Posts(ctx context.Context, query string, page, limit int) ([]entity.Post, int64, error)
}

type fetchService struct {
	repo adminRepo.FetchRepository
}

func NewFetchService(repo adminRepo.FetchRepository) FetchService {
	return &fetchService{repo: repo}
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func (s *fetchService) Users(ctx context.Context, query string, page, limit int) ([]entity.User, int64, error) {
	page, limit = clampPage(page, limit)
	return s.repo.ListUsers(ctx, query, page, limit)
}

func (s *fetchService) Posts(ctx context.Context, query string, page, limit int) ([]entity.Post, int64, error) {
	page, limit = clampPage(page, limit)
	return s.repo.ListPosts(ctx, query, page, limit)
}
