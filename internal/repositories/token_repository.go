package repositories

import (
	"errors"

	"github.com/Juantrevi/next-match/internal/models"

	"gorm.io/gorm"
)

var ErrTokenNotFound = errors.New("token not found")

type TokenRepository interface {
	Replace(db *gorm.DB, token *models.Token) error
	FindByToken(db *gorm.DB, value string) (*models.Token, error)
	Delete(db *gorm.DB, id string) error
}

type TokenRepositoryImpl struct{}

func NewTokenRepository() TokenRepository {
	return &TokenRepositoryImpl{}
}

// Replace drops any live token for the email before creating the new one.
// At most one token exists per address, whatever its type, so only the most
// recently issued link works.
func (r *TokenRepositoryImpl) Replace(db *gorm.DB, token *models.Token) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", token.Email).
			Delete(&models.Token{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *TokenRepositoryImpl) FindByToken(db *gorm.DB, value string) (*models.Token, error) {
	var token models.Token
	err := db.First(&token, "token = ?", value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *TokenRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(&models.Token{}).Error
}
