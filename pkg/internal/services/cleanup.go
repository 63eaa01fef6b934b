package services

import (
	"github.com/chirper-app/chirper/pkg/internal/database"
	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

// DoAutoDatabaseCleanup sweeps rows whose target vanished between the steps
// of a non-transactional delete. The store-level cascades normally prevent
// any of this; the sweep exists for the crash-between-steps window.
func DoAutoDatabaseCleanup() {
	log.Debug().Msg("Now cleaning up entire database...")

	var count int64

	if tx := database.C.
		Where("post_id NOT IN (?)", database.C.Model(&models.Post{}).Select("id")).
		Delete(&models.Comment{}); tx.Error == nil {
		count += tx.RowsAffected
	}
	if tx := database.C.
		Where("post_id NOT IN (?)", database.C.Model(&models.Post{}).Select("id")).
		Delete(&models.PostLike{}); tx.Error == nil {
		count += tx.RowsAffected
	}
	if tx := database.C.
		Where("comment_id NOT IN (?)", database.C.Model(&models.Comment{}).Select("id")).
		Delete(&models.CommentLike{}); tx.Error == nil {
		count += tx.RowsAffected
	}

	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}
