package admin

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"pena.web.id/penablog/internal/entity"
	adminRepo "pena.web.id/penablog/internal/modules/admin/repository"
	"pena.web.id/penablog/pkg/apperror"
)

type LogService interface {
	Create(ctx context.Context, actorID uuid.UUID, action entity.LogAction, description string, meta datatypes.JSONMap) (*entity.Log, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Log, error)
	List(ctx context.Context, page, limit int) ([]entity.Log, int64, error)
	// UpdateDescription amends a log entry's free text; action and
	// metadata are immutable once written.
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) (*entity.Log, error)
}

type logService struct {
	logs adminRepo.LogRepository
}

func NewLogService(logs adminRepo.LogRepository) LogService {
	return &logService{logs: logs}
}

func (s *logService) Create(ctx context.Context, actorID uuid.UUID, action entity.LogAction, description string, meta datatypes.JSONMap) (*entity.Log, error) {
	log := &entity.Log{
		ActorID:     actorID,
		Action:      action,
		Description: description,
		Meta:        meta,
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *logService) Get(ctx context.Context, id uuid.UUID) (*entity.Log, error) {
	log, err := s.logs.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "log not found")
	}
	return log, nil
}

func (s *logService) List(ctx context.Context, page, limit int) ([]entity.Log, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.logs.List(ctx, page, limit)
}

func (s *logService) UpdateDescription(ctx context.Context, id uuid.UUID, description string) (*entity.Log, error) {
	if _, err := s.logs.FindByID(ctx, id); err != nil {
		return nil, apperror.FromDB(err, "log not found")
	}
	if err := s.logs.UpdateDescription(ctx, id, description); err != nil {
		return nil, err
	}
	return s.logs.FindByID(ctx, id)
}
