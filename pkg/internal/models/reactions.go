package models

import "time"

// Likes are toggled, never updated. Existence of the composite key means
// "liked"; the primary key doubles as the safety net against concurrent
// double-submission.
type PostLike struct {
	UserID    string    `json:"user_id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	User Account `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Post Post    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

type CommentLike struct {
	UserID    string    `json:"user_id" gorm:"primaryKey"`
	CommentID string    `json:"comment_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	User    Account `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comment Comment `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}
