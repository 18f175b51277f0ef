package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account record. Username and email are stored lowercased and
// trimmed so the unique indexes enforce case-insensitive uniqueness.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName     string    `gorm:"index;not null" json:"fullName"`
	Avatar       string    `gorm:"not null" json:"avatar"`
	CoverImage   string    `json:"coverImage"`
	PasswordHash string    `gorm:"not null" json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// WatchHistoryEntry records one watched video. Rows are appended in watch
// order and read back ordered by ID.
type WatchHistoryEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null"`
	WatchedAt time.Time `gorm:"autoCreateTime"`
}
