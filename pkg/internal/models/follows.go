package models

import "time"

// Follow existence means "follower follows following".
type Follow struct {
	FollowerID  string    `json:"follower_id" gorm:"primaryKey"`
	FollowingID string    `json:"following_id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  Account `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following Account `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}
