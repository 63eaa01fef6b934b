package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is created by the auth provider on first sign-in and never
// hard-deleted; the service only reads and updates it.
type Account struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     *string   `json:"-" gorm:"uniqueIndex"`
	Name      string    `json:"name"`
	Username  string    `json:"username" gorm:"uniqueIndex"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *Account) BeforeCreate(tx *gorm.DB) error {
	if len(v.ID) == 0 {
		v.ID = uuid.NewString()
	}
	return nil
}

type AccountMetric struct {
	TotalFollowers int64 `json:"total_followers"`
	TotalFollowing int64 `json:"total_following"`
	IsFollowed     bool  `json:"is_followed"`
}
