package relation

import (
	"context"

	"github.com/google/uuid"

	relationRepo "pena.web.id/penablog/internal/modules/relation/repository"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/pkg/apperror"
)

type RelationService interface {
	// ToggleSubscription returns true when the toggle ended in the
	// subscribed state.
	ToggleSubscription(ctx context.Context, subscriberID, subscribedID uuid.UUID) (bool, error)
	// ToggleBlock returns true when the toggle ended in the blocked state.
	ToggleBlock(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error)
}

type relationService struct {
	repo     relationRepo.RelationRepository
	userRepo userRepo.UserRepository
}

func NewRelationService(repo relationRepo.RelationRepository, users userRepo.UserRepository) RelationService {
	return &relationService{repo: repo, userRepo: users}
}

func (s *relationService) requireActiveActor(ctx context.Context, actorID uuid.UUID) error {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return apperror.FromDB(err, "user not found")
	}
	if actor.Suspended {
		return apperror.Forbidden("your account has been suspended")
	}
	return nil
}

func (s *relationService) ToggleSubscription(ctx context.Context, subscriberID, subscribedID uuid.UUID) (bool, error) {
	if subscriberID == subscribedID {
		return false, apperror.BadRequest("you cannot subscribe to yourself")
	}
	if err := s.requireActiveActor(ctx, subscriberID); err != nil {
		return false, err
	}

	if _, err := s.userRepo.FindByID(ctx, subscribedID); err != nil {
		return false, apperror.FromDB(err, "user not found")
	}

	blocked, err := s.repo.BlockExists(ctx, subscriberID, subscribedID)
	if err != nil {
		return false, err
	}
	if blocked {
		return false, apperror.Forbidden("you cannot subscribe to this user")
	}

	removed, err := s.repo.DeleteSubscription(ctx, subscriberID, subscribedID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	if err := s.repo.CreateSubscription(ctx, subscriberID, subscribedID); err != nil {
		// A concurrent duplicate create means the subscription is already on.
		if apperror.IsDuplicate(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (s *relationService) ToggleBlock(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error) {
	if blockerID == blockedID {
		return false, apperror.BadRequest("you cannot block yourself")
	}
	if err := s.requireActiveActor(ctx, blockerID); err != nil {
		return false, err
	}

	if _, err := s.userRepo.FindByID(ctx, blockedID); err != nil {
		return false, apperror.FromDB(err, "user not found")
	}

	removed, err := s.repo.DeleteBlock(ctx, blockerID, blockedID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	if err := s.repo.CreateBlock(ctx, blockerID, blockedID); err != nil {
		if apperror.IsDuplicate(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}
