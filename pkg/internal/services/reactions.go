package services

import (
	"context"
	"errors"
	"time"

	localCache "github.com/chirper-app/chirper/pkg/internal/cache"
	"github.com/chirper-app/chirper/pkg/internal/database"
	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func HasLikedPost(userId, postId string) bool {
	var count int64
	if err := database.C.Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ?", userId, postId).
		Count(&count).Error; err != nil {
		return false
	}

	return count > 0
}

func HasLikedComment(userId, commentId string) bool {
	var count int64
	if err := database.C.Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userId, commentId).
		Count(&count).Error; err != nil {
		return false
	}

	return count > 0
}

func CountPostLikes(postId string) int64 {
	var count int64
	if err := database.C.Model(&models.PostLike{}).
		Where("post_id = ?", postId).
		Count(&count).Error; err != nil {
		return 0
	}

	return count
}

func CountCommentLikes(commentId string) int64 {
	var count int64
	if err := database.C.Model(&models.CommentLike{}).
		Where("comment_id = ?", commentId).
		Count(&count).Error; err != nil {
		return 0
	}

	return count
}

// TogglePostLike flips the like state relative to what the store holds right
// now, not to what the client believed. The check-then-act pair can race with
// a double submission; the composite primary key rejects the second insert
// and we treat that as already-liked instead of failing the request.
func TogglePostLike(user models.Account, post models.Post) (bool, error) {
	var mark models.PostLike
	if err := database.C.
		Where("user_id = ? AND post_id = ?", user.ID, post.ID).
		First(&mark).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}

		mark = models.PostLike{
			UserID:    user.ID,
			PostID:    post.ID,
			CreatedAt: time.Now(),
		}
		if err := database.C.Create(&mark).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				log.Warn().Str("user", user.ID).Str("post", post.ID).
					Msg("Concurrent like toggle hit the uniqueness constraint, treating as already liked...")
				return true, nil
			}
			return false, err
		}
		invalidatePostLikeCaches()
		return true, nil
	}

	if err := database.C.Delete(&mark).Error; err != nil {
		return true, err
	}
	invalidatePostLikeCaches()
	return false, nil
}

// Cached guest feed pages carry like counts, so a toggle has to push them out.
func invalidatePostLikeCaches() {
	if err := localCache.Invalidate(context.Background(), "posts"); err != nil {
		log.Warn().Err(err).Msg("An error occurred when invalidating post caches...")
	}
}

func ToggleCommentLike(user models.Account, comment models.Comment) (bool, error) {
	var mark models.CommentLike
	if err := database.C.
		Where("user_id = ? AND comment_id = ?", user.ID, comment.ID).
		First(&mark).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}

		mark = models.CommentLike{
			UserID:    user.ID,
			CommentID: comment.ID,
			CreatedAt: time.Now(),
		}
		if err := database.C.Create(&mark).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				log.Warn().Str("user", user.ID).Str("comment", comment.ID).
					Msg("Concurrent like toggle hit the uniqueness constraint, treating as already liked...")
				return true, nil
			}
			return false, err
		}
		invalidatePostComments(comment.PostID)
		return true, nil
	}

	if err := database.C.Delete(&mark).Error; err != nil {
		return true, err
	}
	invalidatePostComments(comment.PostID)
	return false, nil
}
