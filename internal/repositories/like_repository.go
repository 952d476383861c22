package repositories

import (
	"github.com/Juantrevi/next-match/internal/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(db *gorm.DB, like *models.Like) error
	Delete(db *gorm.DB, sourceUserID, targetUserID string) error
	Exists(db *gorm.DB, sourceUserID, targetUserID string) (bool, error)
	FindTargetIDs(db *gorm.DB, sourceUserID string) ([]string, error)
	FindLikedMembers(db *gorm.DB, sourceUserID string) ([]models.Member, error)
	FindLikedByMembers(db *gorm.DB, targetUserID string) ([]models.Member, error)
	FindMutualMembers(db *gorm.DB, userID string) ([]models.Member, error)
}

type LikeRepositoryImpl struct{}

func NewLikeRepository() LikeRepository {
	return &LikeRepositoryImpl{}
}

func (r *LikeRepositoryImpl) Create(db *gorm.DB, like *models.Like) error {
	return db.Create(like).Error
}

func (r *LikeRepositoryImpl) Delete(db *gorm.DB, sourceUserID, targetUserID string) error {
	return db.Where("source_user_id = ? AND target_user_id = ?", sourceUserID, targetUserID).
		Delete(&models.Like{}).Error
}

func (r *LikeRepositoryImpl) Exists(db *gorm.DB, sourceUserID, targetUserID string) (bool, error) {
	var count int64
	err := db.Model(&models.Like{}).
		Where("source_user_id = ? AND target_user_id = ?", sourceUserID, targetUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *LikeRepositoryImpl) FindTargetIDs(db *gorm.DB, sourceUserID string) ([]string, error) {
	var ids []string
	err := db.Model(&models.Like{}).
		Where("source_user_id = ?", sourceUserID).
		Pluck("target_user_id", &ids).Error
	return ids, err
}

func (r *LikeRepositoryImpl) FindLikedMembers(db *gorm.DB, sourceUserID string) ([]models.Member, error) {
	var members []models.Member
	err := db.Joins("JOIN likes ON likes.target_user_id = members.user_id").
		Where("likes.source_user_id = ?", sourceUserID).
		Find(&members).Error
	return members, err
}

func (r *LikeRepositoryImpl) FindLikedByMembers(db *gorm.DB, targetUserID string) ([]models.Member, error) {
	var members []models.Member
	err := db.Joins("JOIN likes ON likes.source_user_id = members.user_id").
		Where("likes.target_user_id = ?", targetUserID).
		Find(&members).Error
	return members, err
}

// FindMutualMembers returns members the user liked who liked them back.
func (r *LikeRepositoryImpl) FindMutualMembers(db *gorm.DB, userID string) ([]models.Member, error) {
	var members []models.Member
	err := db.Joins("JOIN likes outgoing ON outgoing.target_user_id = members.user_id").
		Joins("JOIN likes incoming ON incoming.source_user_id = members.user_id AND incoming.target_user_id = ?", userID).
		Where("outgoing.source_user_id = ?", userID).
		Find(&members).Error
	return members, err
}
