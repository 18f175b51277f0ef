package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vidtube/internal/user"
)

type Video struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`
	Owner       user.User `gorm:"foreignKey:OwnerID" json:"-"`
	VideoFile   string    `gorm:"not null" json:"videoFile"`
	Thumbnail   string    `gorm:"not null" json:"thumbnail"`
	Title       string    `gorm:"index;not null" json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

type Tweet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Tweet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"ownerId"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;index" json:"videoId"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Like targets exactly one of video, comment or tweet.
type Like struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	LikedByID uuid.UUID  `gorm:"type:uuid;not null;index" json:"likedById"`
	VideoID   *uuid.UUID `gorm:"type:uuid;index" json:"videoId,omitempty"`
	CommentID *uuid.UUID `gorm:"type:uuid;index" json:"commentId,omitempty"`
	TweetID   *uuid.UUID `gorm:"type:uuid;index" json:"tweetId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
