package otp

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Otp is a one-time passcode issued for an email address. Only the most
// recent code per email counts at verification time.
type Otp struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"index;not null"`
	Code      string    `gorm:"not null"`
	CreatedAt time.Time
}

func (o *Otp) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
