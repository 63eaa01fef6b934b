package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment forms a tree scoped to one post via the self-referential ParentID.
// A ParentID, if present, must reference another comment on the same post.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	AuthorID string  `json:"author_id" gorm:"index"`
	Author   Account `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	PostID string `json:"post_id" gorm:"index"`
	Post   *Post  `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`

	ParentID *string  `json:"parent_id"`
	Parent   *Comment `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`

	// Children is assembled in memory by the comment forest builder, it is
	// not a preloaded relation.
	Children []*Comment    `json:"children" gorm:"-"`
	Metric   CommentMetric `json:"metric" gorm:"-"`
}

func (v *Comment) BeforeCreate(tx *gorm.DB) error {
	if len(v.ID) == 0 {
		v.ID = uuid.NewString()
	}
	return nil
}

type CommentMetric struct {
	LikeCount int64 `json:"like_count"`
	IsLiked   bool  `json:"is_liked"`
}
