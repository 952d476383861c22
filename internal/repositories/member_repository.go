package repositories

import (
	"errors"
	"time"

	"github.com/Juantrevi/next-match/internal/models"

	"gorm.io/gorm"
)

var ErrMemberNotFound = errors.New("member not found")

// MemberFilter drives the member listing. Age bounds are inclusive on both
// ends and converted into a date-of-birth window against today's date.
type MemberFilter struct {
	ExcludeUserID string
	AgeMin        int
	AgeMax        int
	Genders       []string
	OrderBy       string // "updated" or "created"
	WithPhoto     bool
	Page          int
	PageSize      int
}

type MemberRepository interface {
	FindByUserID(db *gorm.DB, userID string) (*models.Member, error)
	Create(db *gorm.DB, member *models.Member) error
	Update(db *gorm.DB, member *models.Member) error
	FindWithFilter(db *gorm.DB, filter MemberFilter) ([]models.Member, int64, error)
	UpdateLastActive(db *gorm.DB, userID string) error
	SetImage(db *gorm.DB, memberID, imageURL string) error
}

type MemberRepositoryImpl struct{}

func NewMemberRepository() MemberRepository {
	return &MemberRepositoryImpl{}
}

func (r *MemberRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Member, error) {
	var member models.Member
	err := db.First(&member, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepositoryImpl) Create(db *gorm.DB, member *models.Member) error {
	return db.Create(member).Error
}

func (r *MemberRepositoryImpl) Update(db *gorm.DB, member *models.Member) error {
	result := db.Model(member).Updates(map[string]interface{}{
		"name":        member.Name,
		"description": member.Description,
		"city":        member.City,
		"country":     member.Country,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepositoryImpl) FindWithFilter(db *gorm.DB, filter MemberFilter) ([]models.Member, int64, error) {
	var members []models.Member
	query := db.Model(&models.Member{})

	if filter.ExcludeUserID != "" {
		query = query.Where("user_id <> ?", filter.ExcludeUserID)
	}

	// Someone aged between min and max was born inside this window, both
	// ends inclusive: at most max+1 years ago (exclusive) and at least min
	// years ago.
	now := time.Now()
	if filter.AgeMax > 0 {
		earliestDOB := now.AddDate(-(filter.AgeMax + 1), 0, 0)
		query = query.Where("date_of_birth > ?", earliestDOB)
	}
	if filter.AgeMin > 0 {
		latestDOB := now.AddDate(-filter.AgeMin, 0, 0)
		query = query.Where("date_of_birth <= ?", latestDOB)
	}

	if len(filter.Genders) > 0 {
		query = query.Where("gender IN ?", filter.Genders)
	}

	if filter.WithPhoto {
		query = query.Where("image IS NOT NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "updated_at DESC"
	if filter.OrderBy == "created" {
		order = "created_at DESC"
	}

	limit := filter.PageSize
	offset := (filter.Page - 1) * filter.PageSize

	err := query.Order(order).Limit(limit).Offset(offset).Find(&members).Error
	return members, total, err
}

// UpdateLastActive bumps the member's recency timestamp. Used as the
// presence signal consumed by "updated" sorting and online indicators.
func (r *MemberRepositoryImpl) UpdateLastActive(db *gorm.DB, userID string) error {
	result := db.Model(&models.Member{}).Where("user_id = ?", userID).Update("updated_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepositoryImpl) SetImage(db *gorm.DB, memberID, imageURL string) error {
	result := db.Model(&models.Member{}).Where("id = ?", memberID).Update("image", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}
