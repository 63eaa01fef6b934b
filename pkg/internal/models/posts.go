package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post invariant: at least one of Text and Image is present, enforced at
// creation time.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Text      *string   `json:"text"`
	Image     *string   `json:"image"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	AuthorID string  `json:"author_id" gorm:"index"`
	Author   Account `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	ImageDimensions *ImageDimensions `json:"image_dimensions" gorm:"-"`
	Metric          PostMetric       `json:"metric" gorm:"-"`
}

func (v *Post) BeforeCreate(tx *gorm.DB) error {
	if len(v.ID) == 0 {
		v.ID = uuid.NewString()
	}
	return nil
}

type PostMetric struct {
	LikeCount  int64 `json:"like_count"`
	ReplyCount int64 `json:"reply_count"`
	IsLiked    bool  `json:"is_liked"`
}

type ImageDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
