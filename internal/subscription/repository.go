package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube/infrastructure"
	"vidtube/internal/database"
)

type Repository interface {
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriberID uuid.UUID) (int64, error)
	SubscribersOf(ctx context.Context, channelID uuid.UUID) ([]AccountSummary, error)
	ChannelsOf(ctx context.Context, subscriberID uuid.UUID) ([]AccountSummary, error)

	PurgeAccount(tx *gorm.DB, accountID uuid.UUID) error
}

type repository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &repository{db: db}
}

// Toggle flips the edge in two individually atomic steps: a conditional
// delete, then an insert guarded by the composite unique index. Two
// concurrent toggles of the same pair can never leave a duplicate edge; a
// racing insert that loses to the constraint reports the edge as present.
func (r *repository) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&Subscription{})
	if res.Error != nil {
		return false, infrastructure.NewInternal("failed to toggle subscription")
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	edge := Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	if err := r.db.WithContext(ctx).Create(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, infrastructure.NewInternal("failed to toggle subscription")
	}
	return true, nil
}

func (r *repository) Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	if err != nil {
		return false, infrastructure.NewInternal("failed to check subscription")
	}
	return count > 0, nil
}

func (r *repository) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	if err != nil {
		return 0, infrastructure.NewInternal("failed to count subscribers")
	}
	return count, nil
}

func (r *repository) CountSubscribedTo(ctx context.Context, subscriberID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&count).Error
	if err != nil {
		return 0, infrastructure.NewInternal("failed to count subscriptions")
	}
	return count, nil
}

func (r *repository) SubscribersOf(ctx context.Context, channelID uuid.UUID) ([]AccountSummary, error) {
	var subscribers []AccountSummary
	err := r.db.WithContext(ctx).
		Model(&Subscription{}).
		Select("users.full_name, users.avatar").
		Joins("JOIN users ON users.id = subscriptions.subscriber_id").
		Where("subscriptions.channel_id = ?", channelID).
		Scan(&subscribers).Error
	if err != nil {
		return nil, infrastructure.NewInternal("failed to load subscribers")
	}
	if subscribers == nil {
		subscribers = []AccountSummary{}
	}
	return subscribers, nil
}

func (r *repository) ChannelsOf(ctx context.Context, subscriberID uuid.UUID) ([]AccountSummary, error) {
	var channels []AccountSummary
	err := r.db.WithContext(ctx).
		Model(&Subscription{}).
		Select("users.full_name, users.avatar").
		Joins("JOIN users ON users.id = subscriptions.channel_id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Scan(&channels).Error
	if err != nil {
		return nil, infrastructure.NewInternal("failed to load channels")
	}
	if channels == nil {
		channels = []AccountSummary{}
	}
	return channels, nil
}

// PurgeAccount drops every edge touching the account, both as subscriber
// and as channel.
func (r *repository) PurgeAccount(tx *gorm.DB, accountID uuid.UUID) error {
	return tx.
		Where("subscriber_id = ? OR channel_id = ?", accountID, accountID).
		Delete(&Subscription{}).Error
}
