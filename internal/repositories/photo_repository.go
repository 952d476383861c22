package repositories

import (
	"errors"

	"github.com/Juantrevi/next-match/internal/models"

	"gorm.io/gorm"
)

var ErrPhotoNotFound = errors.New("photo not found")

type PhotoRepository interface {
	Create(db *gorm.DB, photo *models.Photo) error
	FindByID(db *gorm.DB, id string) (*models.Photo, error)
	FindByMemberID(db *gorm.DB, memberID string, approvedOnly bool) ([]models.Photo, error)
	FindUnapproved(db *gorm.DB) ([]models.Photo, error)
	Approve(db *gorm.DB, id string) error
	Delete(db *gorm.DB, id string) error
}

type PhotoRepositoryImpl struct{}

func NewPhotoRepository() PhotoRepository {
	return &PhotoRepositoryImpl{}
}

func (r *PhotoRepositoryImpl) Create(db *gorm.DB, photo *models.Photo) error {
	return db.Create(photo).Error
}

func (r *PhotoRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Photo, error) {
	var photo models.Photo
	err := db.Preload("Member").First(&photo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (r *PhotoRepositoryImpl) FindByMemberID(db *gorm.DB, memberID string, approvedOnly bool) ([]models.Photo, error) {
	var photos []models.Photo
	query := db.Where("member_id = ?", memberID)
	if approvedOnly {
		query = query.Where("is_approved = ?", true)
	}
	err := query.Order("created_at ASC").Find(&photos).Error
	return photos, err
}

func (r *PhotoRepositoryImpl) FindUnapproved(db *gorm.DB) ([]models.Photo, error) {
	var photos []models.Photo
	err := db.Preload("Member").Where("is_approved = ?", false).Order("created_at ASC").Find(&photos).Error
	return photos, err
}

func (r *PhotoRepositoryImpl) Approve(db *gorm.DB, id string) error {
	result := db.Model(&models.Photo{}).Where("id = ?", id).Update("is_approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (r *PhotoRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Photo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPhotoNotFound
	}
	return nil
}
