package subscription

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription is a directed edge: subscriber follows channel. The composite
// unique index is the source of truth for "is subscribed" and is what keeps
// concurrent toggles from producing duplicate edges.
type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subscriber_channel" json:"subscriberId"`
	ChannelID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subscriber_channel" json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// AccountSummary is the account projection used by subscriber and channel
// listings.
type AccountSummary struct {
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

type Profile struct {
	ID                        uuid.UUID `json:"id"`
	Username                  string    `json:"username"`
	FullName                  string    `json:"fullName"`
	Email                     string    `json:"email"`
	Avatar                    string    `json:"avatar"`
	CoverImage                string    `json:"coverImage"`
	SubscribersCount          int64     `json:"subscribersCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
}
