package database

import (
	"github.com/Juantrevi/next-match/internal/models"

	"gorm.io/gorm"
)

// Migrate applies the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Member{},
		&models.Photo{},
		&models.Like{},
		&models.Message{},
		&models.Token{},
	)
}
