package database

import (
	"github.com/chirper-app/chirper/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Post{},
	&models.Comment{},
	&models.Follow{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.PostLike{},
			&models.CommentLike{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
