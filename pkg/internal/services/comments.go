package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	localCache "github.com/chirper-app/chirper/pkg/internal/cache"
	"github.com/chirper-app/chirper/pkg/internal/database"
	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	CommentMinLength = 1
	CommentMaxLength = 150
)

// ValidCommentText accepts 1 to 150 characters with at least one
// non-whitespace rune.
func ValidCommentText(text string) bool {
	length := len([]rune(text))
	if length < CommentMinLength || length > CommentMaxLength {
		return false
	}
	return len(strings.TrimSpace(text)) > 0
}

// BuildCommentForest links a flat set of comments for one post into root
// trees. First pass indexes every node by id, second pass attaches each node
// to its parent; a node whose parent is null or unresolved (parent deleted)
// becomes a root. Runs in O(n) over the input, ordering the sibling lists is
// the only extra work.
func BuildCommentForest(items []*models.Comment) []*models.Comment {
	nodes := make(map[string]*models.Comment, len(items))
	for _, item := range items {
		nodes[item.ID] = item
	}

	var roots []*models.Comment
	for _, item := range items {
		if item.ParentID != nil {
			if parent, ok := nodes[*item.ParentID]; ok {
				parent.Children = append(parent.Children, item)
				continue
			}
		}
		roots = append(roots, item)
	}

	sortSiblings(roots)
	for _, item := range items {
		if len(item.Children) > 1 {
			sortSiblings(item.Children)
		}
	}

	return roots
}

// Siblings read newest first at every level, roots included.
func sortSiblings(items []*models.Comment) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// ListPostComments fetches every comment of a post in one query and builds
// the reply forest in memory; the assembled forest is cached per post.
func ListPostComments(postId string, user *models.Account) ([]*models.Comment, error) {
	if user == nil {
		if cached, err := getCommentForestCache(postId); err == nil {
			return cached, nil
		}
	}

	var items []*models.Comment
	if err := database.C.
		Preload("Author").
		Where("post_id = ?", postId).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	if err := completeCommentMeta(user, items); err != nil {
		return nil, err
	}

	forest := BuildCommentForest(items)
	if user == nil {
		setCommentForestCache(postId, forest)
	}

	return forest, nil
}

func completeCommentMeta(user *models.Account, in []*models.Comment) error {
	if len(in) == 0 {
		return nil
	}

	idx := make([]string, len(in))
	itemMap := make(map[string]*models.Comment, len(in))
	for i, item := range in {
		idx[i] = item.ID
		itemMap[item.ID] = in[i]
	}

	var likes []struct {
		CommentID string
		Count     int64
	}
	if err := database.C.Model(&models.CommentLike{}).
		Select("comment_id, COUNT(*) as count").
		Where("comment_id IN ?", idx).
		Group("comment_id").
		Find(&likes).Error; err != nil {
		return err
	}
	for _, info := range likes {
		if item, ok := itemMap[info.CommentID]; ok {
			item.Metric.LikeCount = info.Count
		}
	}

	if user != nil {
		var marked []models.CommentLike
		if err := database.C.
			Where("user_id = ? AND comment_id IN ?", user.ID, idx).
			Find(&marked).Error; err != nil {
			return err
		}
		for _, mark := range marked {
			if item, ok := itemMap[mark.CommentID]; ok {
				item.Metric.IsLiked = true
			}
		}
	}

	return nil
}

func GetComment(id string) (models.Comment, error) {
	var item models.Comment
	if err := database.C.
		Preload("Author").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

func NewComment(user models.Account, post models.Post, parentId *string, text string) (models.Comment, error) {
	if !ValidCommentText(text) {
		return models.Comment{}, fmt.Errorf("comment must be %d to %d characters and not only whitespace", CommentMinLength, CommentMaxLength)
	}

	if parentId != nil {
		var parent models.Comment
		if err := database.C.Where("id = ?", *parentId).First(&parent).Error; err != nil {
			return models.Comment{}, fmt.Errorf("unable to find parent comment: %v", err)
		}
		if parent.PostID != post.ID {
			return models.Comment{}, fmt.Errorf("parent comment belongs to another post")
		}
	}

	item := models.Comment{
		Text:      text,
		AuthorID:  user.ID,
		PostID:    post.ID,
		ParentID:  parentId,
		CreatedAt: time.Now(),
	}

	if err := database.C.Create(&item).Error; err != nil {
		return item, err
	}
	item.Author = user

	invalidatePostComments(post.ID)

	return item, nil
}

// DeleteComment relies on the store-level cascade to take the children and
// their likes along.
func DeleteComment(item models.Comment) error {
	if err := database.C.Delete(&item).Error; err != nil {
		return err
	}

	invalidatePostComments(item.PostID)

	return nil
}

// CountUserCommentsOnPost backs the "see more replies" affordance on the
// profile replies view.
func CountUserCommentsOnPost(userId, postId string) int64 {
	var count int64
	if err := database.C.Model(&models.Comment{}).
		Where("author_id = ? AND post_id = ?", userId, postId).
		Count(&count).Error; err != nil {
		return 0
	}

	return count
}

func invalidatePostComments(postId string) {
	if err := localCache.Invalidate(
		context.Background(),
		fmt.Sprintf("comments#%s", postId),
	); err != nil {
		log.Warn().Err(err).Msg("An error occurred when invalidating comment caches...")
	}
}
