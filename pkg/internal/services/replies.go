package services

import (
	"sort"
	"time"

	"github.com/chirper-app/chirper/pkg/internal/database"
	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/samber/lo"
)

// RepliedPost is one entry of a user's replies profile view: a post someone
// commented on, carrying only that user's newest comments.
type RepliedPost struct {
	models.Post

	Comments []models.Comment `json:"comments"`
	// CommentCount is the user's total comments on the post, not just the
	// fetched ones; above the page size it drives a "see more" link.
	CommentCount int64     `json:"comment_count"`
	LastReplyAt  time.Time `json:"last_reply_at"`
}

// ListUserReplies pages over the distinct posts a user has commented on
// (newest comment first), loads up to three of the user's latest comments per
// post, then re-sorts by the most recent reply the user made on each post.
// The re-sort matters: a user who returns to an old thread bumps that post
// past posts they replied to in between.
func ListUserReplies(target models.Account, page int) ([]RepliedPost, int, error) {
	var distinctCount int64
	if err := database.C.Model(&models.Comment{}).
		Where("author_id = ?", target.ID).
		Distinct("post_id").
		Count(&distinctCount).Error; err != nil {
		return nil, 0, err
	}

	var picked []struct{ PostID string }
	if err := database.C.Model(&models.Comment{}).
		Select("post_id, MAX(created_at) as last_created_at").
		Where("author_id = ?", target.ID).
		Group("post_id").
		Order("last_created_at DESC").
		Limit(RepliesPageSize).
		Offset(PageOffset(page, RepliesPageSize)).
		Find(&picked).Error; err != nil {
		return nil, 0, err
	}

	postIdx := lo.Map(picked, func(item struct{ PostID string }, _ int) string {
		return item.PostID
	})

	var posts []models.Post
	if len(postIdx) > 0 {
		if err := database.C.
			Preload("Author").
			Where("id IN ?", postIdx).
			Find(&posts).Error; err != nil {
			return nil, 0, err
		}
	}

	posts, err := CompletePostMeta(nil, posts...)
	if err != nil {
		return nil, 0, err
	}

	replies := make([]RepliedPost, 0, len(posts))
	for _, post := range posts {
		var comments []models.Comment
		if err := database.C.
			Preload("Author").
			Where("post_id = ? AND author_id = ?", post.ID, target.ID).
			Order("created_at DESC").
			Limit(RepliesPageSize).
			Find(&comments).Error; err != nil {
			return nil, 0, err
		}

		replies = append(replies, RepliedPost{
			Post:         post,
			Comments:     comments,
			CommentCount: CountUserCommentsOnPost(target.ID, post.ID),
			LastReplyAt:  lastReplyAt(post, comments),
		})
	}

	rankReplies(replies)

	return replies, TotalPages(distinctCount, RepliesPageSize), nil
}

// lastReplyAt falls back to the post's own timestamp; with the distinct-post
// filter upstream that branch should never fire, it exists for defense.
func lastReplyAt(post models.Post, comments []models.Comment) time.Time {
	latest := time.Time{}
	for _, comment := range comments {
		if comment.CreatedAt.After(latest) {
			latest = comment.CreatedAt
		}
	}
	if latest.IsZero() {
		return post.CreatedAt
	}
	return latest
}

func rankReplies(replies []RepliedPost) {
	sort.SliceStable(replies, func(i, j int) bool {
		return replies[i].LastReplyAt.After(replies[j].LastReplyAt)
	})
}
