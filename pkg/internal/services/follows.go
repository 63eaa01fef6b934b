package services

import (
	"errors"
	"time"

	"github.com/chirper-app/chirper/pkg/internal/database"
	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func IsFollowing(followerId, followingId string) bool {
	var count int64
	if err := database.C.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerId, followingId).
		Count(&count).Error; err != nil {
		return false
	}

	return count > 0
}

// CountFollows returns how many accounts the user follows and how many follow
// the user.
func CountFollows(userId string) (following int64, followers int64) {
	database.C.Model(&models.Follow{}).
		Where("follower_id = ?", userId).
		Count(&following)
	database.C.Model(&models.Follow{}).
		Where("following_id = ?", userId).
		Count(&followers)

	return following, followers
}

// ToggleFollow mirrors the like toggle over the (follower, following) pair.
// Following yourself is a no-op.
func ToggleFollow(user models.Account, target models.Account) (bool, error) {
	if user.ID == target.ID {
		return false, nil
	}

	var relation models.Follow
	if err := database.C.
		Where("follower_id = ? AND following_id = ?", user.ID, target.ID).
		First(&relation).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}

		relation = models.Follow{
			FollowerID:  user.ID,
			FollowingID: target.ID,
			CreatedAt:   time.Now(),
		}
		if err := database.C.Create(&relation).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				log.Warn().Str("follower", user.ID).Str("following", target.ID).
					Msg("Concurrent follow toggle hit the uniqueness constraint, treating as already followed...")
				return true, nil
			}
			return false, err
		}
		return true, nil
	}

	if err := database.C.Delete(&relation).Error; err != nil {
		return true, err
	}
	return false, nil
}
