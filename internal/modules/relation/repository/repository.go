package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
)

// RelationRepository is the relationship store: subscriptions and blocks.
// It also satisfies visibility.RelationStore.
type RelationRepository interface {
	BlockExists(ctx context.Context, a, b uuid.UUID) (bool, error)
	IsSubscribed(ctx context.Context, subscriber, subscribed uuid.UUID) (bool, error)
	CountSubscribers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountSubscribing(ctx context.Context, userID uuid.UUID) (int64, error)
	CreateSubscription(ctx context.Context, subscriber, subscribed uuid.UUID) error
	DeleteSubscription(ctx context.Context, subscriber, subscribed uuid.UUID) (bool, error)
	CreateBlock(ctx context.Context, blocker, blocked uuid.UUID) error
	DeleteBlock(ctx context.Context, blocker, blocked uuid.UUID) (bool, error)
}

type relationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

// BlockExists is symmetric: a block in either direction hides the pair
// from each other.
func (r *relationRepository) BlockExists(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

func (r *relationRepository) IsSubscribed(ctx context.Context, subscriber, subscribed uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Subscription{}).
		Where("subscriber_id = ? AND subscribed_id = ?", subscriber, subscribed).
		Count(&count).Error
	return count > 0, err
}

func (r *relationRepository) CountSubscribers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Subscription{}).
		Where("subscribed_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *relationRepository) CountSubscribing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Subscription{}).
		Where("subscriber_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *relationRepository) CreateSubscription(ctx context.Context, subscriber, subscribed uuid.UUID) error {
	sub := entity.Subscription{SubscriberID: subscriber, SubscribedID: subscribed}
	return r.db.WithContext(ctx).Create(&sub).Error
}

func (r *relationRepository) DeleteSubscription(ctx context.Context, subscriber, subscribed uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND subscribed_id = ?", subscriber, subscribed).
		Delete(&entity.Subscription{})
	return result.RowsAffected > 0, result.Error
}

// CreateBlock also severs any subscriptions between the pair, in one
// transaction; a block and a follow must never coexist.
func (r *relationRepository) CreateBlock(ctx context.Context, blocker, blocked uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		block := entity.Block{BlockerID: blocker, BlockedID: blocked}
		if err := tx.Create(&block).Error; err != nil {
			return err
		}
		return tx.
			Where("(subscriber_id = ? AND subscribed_id = ?) OR (subscriber_id = ? AND subscribed_id = ?)",
				blocker, blocked, blocked, blocker).
			Delete(&entity.Subscription{}).Error
	})
}

func (r *relationRepository) DeleteBlock(ctx context.Context, blocker, blocked uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blocker, blocked).
		Delete(&entity.Block{})
	return result.RowsAffected > 0, result.Error
}
