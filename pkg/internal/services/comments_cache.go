package services

import (
	"context"
	"fmt"
	"time"

	localCache "github.com/chirper-app/chirper/pkg/internal/cache"
	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
)

func commentForestCacheKey(postId string) string {
	return fmt.Sprintf("comments-of-post#%s", postId)
}

func getCommentForestCache(postId string) ([]*models.Comment, error) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)

	hit, err := marshal.Get(context.Background(), commentForestCacheKey(postId), new([]*models.Comment))
	if err != nil {
		return nil, err
	}

	return *hit.(*[]*models.Comment), nil
}

func setCommentForestCache(postId string, forest []*models.Comment) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)

	_ = marshal.Set(
		context.Background(),
		commentForestCacheKey(postId),
		forest,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{"comments", fmt.Sprintf("comments#%s", postId)}),
	)
}
