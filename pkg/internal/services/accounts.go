package services

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/chirper-app/chirper/pkg/internal/database"
	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var ErrUsernameTaken = errors.New("username is taken")

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func GetAccount(id string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, err
	}

	return account, nil
}

func GetAccountByUsername(username string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("username = ?", username).First(&account).Error; err != nil {
		return account, err
	}

	return account, nil
}

// UpdateAccountSettings applies the provided fields only; a username change
// is refused when another account already holds it.
func UpdateAccountSettings(user models.Account, name, username, avatar *string) (models.Account, error) {
	if username != nil && *username != user.Username {
		if !usernamePattern.MatchString(*username) {
			return user, fmt.Errorf("username can contain letters, numbers and underscores only")
		}
		var holder models.Account
		if err := database.C.Where("username = ?", *username).First(&holder).Error; err == nil {
			return user, ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return user, err
		}
		user.Username = *username
	}
	if name != nil {
		user.Name = *name
	}
	if avatar != nil {
		user.Avatar = *avatar
	}

	if err := database.C.Save(&user).Error; err != nil {
		return user, err
	}

	return user, nil
}

// SearchAccounts matches name or username case-insensitively; the original
// surface lists matches oldest account first.
func SearchAccounts(probe string, page int) ([]models.Account, int, error) {
	probe = "%" + probe + "%"
	tx := database.C.Model(&models.Account{}).
		Where("name ILIKE ? OR username ILIKE ?", probe, probe)

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var accounts []models.Account
	if err := tx.
		Order("created_at ASC").
		Limit(FeedPageSize).
		Offset(PageOffset(page, FeedPageSize)).
		Find(&accounts).Error; err != nil {
		return nil, 0, err
	}

	return accounts, TotalPages(count, FeedPageSize), nil
}

// LikedEntry is one item of a profile's likes view; Type tells posts from
// comments apart.
type LikedEntry struct {
	Type    string    `json:"type"`
	Data    any       `json:"data"`
	LikedAt time.Time `json:"liked_at"`
}

type likedRef struct {
	kind    string
	id      string
	likedAt time.Time
}

const (
	likedKindPost    = "post"
	likedKindComment = "comment"
)

// mergeLikedRefs interleaves post and comment likes into one list ordered by
// like time, newest first.
func mergeLikedRefs(posts []models.PostLike, comments []models.CommentLike) []likedRef {
	refs := make([]likedRef, 0, len(posts)+len(comments))
	for _, mark := range posts {
		refs = append(refs, likedRef{kind: likedKindPost, id: mark.PostID, likedAt: mark.CreatedAt})
	}
	for _, mark := range comments {
		refs = append(refs, likedRef{kind: likedKindComment, id: mark.CommentID, likedAt: mark.CreatedAt})
	}

	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].likedAt.After(refs[j].likedAt)
	})

	return refs
}

func pageLikedRefs(refs []likedRef, page, size int) []likedRef {
	offset := PageOffset(page, size)
	if offset >= len(refs) {
		return nil
	}
	end := offset + size
	if end > len(refs) {
		end = len(refs)
	}
	return refs[offset:end]
}

// ListLikedContent merges everything a user liked across both tables, pages
// over the merged set by like time, then resolves the page's rows.
func ListLikedContent(target models.Account, page int) ([]LikedEntry, int, error) {
	var postLikes []models.PostLike
	if err := database.C.Where("user_id = ?", target.ID).Find(&postLikes).Error; err != nil {
		return nil, 0, err
	}
	var commentLikes []models.CommentLike
	if err := database.C.Where("user_id = ?", target.ID).Find(&commentLikes).Error; err != nil {
		return nil, 0, err
	}

	refs := mergeLikedRefs(postLikes, commentLikes)
	pages := TotalPages(int64(len(refs)), FeedPageSize)
	picked := pageLikedRefs(refs, page, FeedPageSize)

	postIdx := lo.FilterMap(picked, func(ref likedRef, _ int) (string, bool) {
		return ref.id, ref.kind == likedKindPost
	})
	commentIdx := lo.FilterMap(picked, func(ref likedRef, _ int) (string, bool) {
		return ref.id, ref.kind == likedKindComment
	})

	var posts []models.Post
	if len(postIdx) > 0 {
		if err := database.C.Preload("Author").Where("id IN ?", postIdx).Find(&posts).Error; err != nil {
			return nil, 0, err
		}
		var err error
		if posts, err = CompletePostMeta(nil, posts...); err != nil {
			return nil, 0, err
		}
	}
	var comments []models.Comment
	if len(commentIdx) > 0 {
		if err := database.C.Preload("Author").Where("id IN ?", commentIdx).Find(&comments).Error; err != nil {
			return nil, 0, err
		}
	}

	postMap := lo.SliceToMap(posts, func(item models.Post) (string, models.Post) {
		return item.ID, item
	})
	commentMap := lo.SliceToMap(comments, func(item models.Comment) (string, models.Comment) {
		return item.ID, item
	})

	entries := make([]LikedEntry, 0, len(picked))
	for _, ref := range picked {
		switch ref.kind {
		case likedKindPost:
			if item, ok := postMap[ref.id]; ok {
				entries = append(entries, LikedEntry{Type: ref.kind, Data: item, LikedAt: ref.likedAt})
			}
		case likedKindComment:
			if item, ok := commentMap[ref.id]; ok {
				entries = append(entries, LikedEntry{Type: ref.kind, Data: item, LikedAt: ref.likedAt})
			}
		}
	}

	return entries, pages, nil
}

// CompleteAccountMetric attaches follow counts and, when a viewer is present,
// whether the viewer follows the target.
func CompleteAccountMetric(target models.Account, viewer *models.Account) models.AccountMetric {
	following, followers := CountFollows(target.ID)
	metric := models.AccountMetric{
		TotalFollowing: following,
		TotalFollowers: followers,
	}
	if viewer != nil {
		metric.IsFollowed = IsFollowing(viewer.ID, target.ID)
	}

	return metric
}
