package category

import (
	"context"

	"github.com/google/uuid"

	"pena.web.id/penablog/internal/entity"
	categoryDto "pena.web.id/penablog/internal/modules/category/dto"
	categoryRepo "pena.web.id/penablog/internal/modules/category/repository"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/slug"
)

type CategoryService interface {
	Create(ctx context.Context, req categoryDto.CategoryRequest) (*entity.Category, error)
	Update(ctx context.Context, id uuid.UUID, req categoryDto.CategoryRequest) (*entity.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]categoryRepo.CategoryWithCount, error)
}

type categoryService struct {
	repo categoryRepo.CategoryRepository
}

func NewCategoryService(repo categoryRepo.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req categoryDto.CategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		Name:        req.Name,
		Slug:        slug.ForName(req.Name),
		Description: req.Description,
		ColorLight:  req.ColorLight,
		ColorDark:   req.ColorDark,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if apperror.IsDuplicate(err) {
			return nil, apperror.Conflict("category already exists")
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req categoryDto.CategoryRequest) (*entity.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "category not found")
	}

	category.Name = req.Name
	category.Slug = slug.ForName(req.Name)
	category.Description = req.Description
	category.ColorLight = req.ColorLight
	category.ColorDark = req.ColorDark

	if err := s.repo.Update(ctx, category); err != nil {
		if apperror.IsDuplicate(err) {
			return nil, apperror.Conflict("category already exists")
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apperror.FromDB(err, "category not found")
	}
	return s.repo.Delete(ctx, id)
}

func (s *categoryService) List(ctx context.Context) ([]categoryRepo.CategoryWithCount, error) {
	return s.repo.ListWithCounts(ctx)
}
