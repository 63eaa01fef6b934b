package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	localCache "github.com/chirper-app/chirper/pkg/internal/cache"
	"github.com/chirper-app/chirper/pkg/internal/database"
	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

func FilterPostWithAuthor(tx *gorm.DB, authorId string) *gorm.DB {
	return tx.Where("author_id = ?", authorId)
}

func FilterPostWithMedia(tx *gorm.DB) *gorm.DB {
	return tx.Where("image IS NOT NULL")
}

func FilterPostWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + probe + "%"
	return tx.Where("text ILIKE ?", probe)
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func GetPost(tx *gorm.DB, id string, user *models.Account) (models.Post, error) {
	var item models.Post
	if err := tx.
		Preload("Author").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	out, err := CompletePostMeta(user, item)
	if err != nil {
		return item, err
	}

	return out[0], nil
}

// ListPostPage returns one page of posts, newest first, along with the page
// count over everything the filtered query matches. A page past the end
// yields an empty list and the real page count.
func ListPostPage(tx *gorm.DB, page int, user *models.Account) ([]models.Post, int, error) {
	count, err := CountPost(tx)
	if err != nil {
		return nil, 0, err
	}

	var items []models.Post
	if err := tx.
		Preload("Author").
		Order("created_at DESC").
		Limit(FeedPageSize).
		Offset(PageOffset(page, FeedPageSize)).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	items, err = CompletePostMeta(user, items...)
	if err != nil {
		return nil, 0, err
	}

	return items, TotalPages(count, FeedPageSize), nil
}

// CompletePostMeta batch-loads like counts, reply counts, the viewer's own
// like marks and image dimensions, avoiding per-post queries.
func CompletePostMeta(user *models.Account, in ...models.Post) ([]models.Post, error) {
	if len(in) == 0 {
		return in, nil
	}

	idx := make([]string, len(in))
	itemMap := make(map[string]*models.Post, len(in))
	for i, item := range in {
		idx[i] = item.ID
		itemMap[item.ID] = &in[i]
	}

	var likes []struct {
		PostID string
		Count  int64
	}
	if err := database.C.Model(&models.PostLike{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", idx).
		Group("post_id").
		Find(&likes).Error; err != nil {
		return in, err
	}
	for _, info := range likes {
		if post, ok := itemMap[info.PostID]; ok {
			post.Metric.LikeCount = info.Count
		}
	}

	var replies []struct {
		PostID string
		Count  int64
	}
	if err := database.C.Model(&models.Comment{}).
		Select("post_id, COUNT(id) as count").
		Where("post_id IN ?", idx).
		Group("post_id").
		Find(&replies).Error; err != nil {
		return in, err
	}
	for _, info := range replies {
		if post, ok := itemMap[info.PostID]; ok {
			post.Metric.ReplyCount = info.Count
		}
	}

	if user != nil {
		var marked []models.PostLike
		if err := database.C.
			Where("user_id = ? AND post_id IN ?", user.ID, idx).
			Find(&marked).Error; err != nil {
			return in, err
		}
		for _, mark := range marked {
			if post, ok := itemMap[mark.PostID]; ok {
				post.Metric.IsLiked = true
			}
		}
	}

	for i, item := range in {
		if item.Image != nil {
			in[i].ImageDimensions = ResolveImageDimensions(*item.Image)
		}
	}

	return in, nil
}

// ListRootFeedPage is the cacheable variant of the global feed; results only
// go through the cache for guests since signed-in viewers carry per-user like
// marks.
func ListRootFeedPage(page int, user *models.Account) ([]models.Post, int, error) {
	if user != nil {
		return ListPostPage(database.C, page, user)
	}

	type cachedFeedPage struct {
		Items      []models.Post
		TotalPages int
	}

	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	cacheKey := fmt.Sprintf("posts-page#%d", page)
	if hit, err := marshal.Get(ctx, cacheKey, new(cachedFeedPage)); err == nil {
		cached := hit.(*cachedFeedPage)
		return cached.Items, cached.TotalPages, nil
	}

	items, pages, err := ListPostPage(database.C, page, nil)
	if err != nil {
		return nil, 0, err
	}

	_ = marshal.Set(
		ctx,
		cacheKey,
		cachedFeedPage{Items: items, TotalPages: pages},
		store.WithExpiration(2*time.Minute),
		store.WithTags([]string{"posts"}),
	)

	return items, pages, nil
}

func NewPost(user models.Account, text *string, image *string) (models.Post, error) {
	if text != nil && len(strings.TrimSpace(*text)) == 0 {
		text = nil
	}
	if text == nil && image == nil {
		return models.Post{}, fmt.Errorf("post must carry text or an image")
	}

	item := models.Post{
		Text:      text,
		Image:     image,
		AuthorID:  user.ID,
		Language:  DetectLanguage(lo.FromPtr(text)),
		CreatedAt: time.Now(),
	}

	if err := database.C.Create(&item).Error; err != nil {
		return item, err
	}
	item.Author = user

	if err := localCache.Invalidate(context.Background(), "posts"); err != nil {
		log.Warn().Err(err).Msg("An error occurred when invalidating post caches...")
	}

	return item, nil
}

func DeletePost(item models.Post) error {
	if err := database.C.Delete(&item).Error; err != nil {
		return err
	}

	if item.Image != nil {
		// The hosted file outlives the row on purpose; the maintenance sweep
		// picks it up later.
		log.Debug().Str("image", *item.Image).Msg("Post image left behind for cleanup...")
	}

	if err := localCache.Invalidate(
		context.Background(),
		"posts",
		fmt.Sprintf("comments#%s", item.ID),
	); err != nil {
		log.Warn().Err(err).Msg("An error occurred when invalidating post caches...")
	}

	return nil
}
