package repositories

import (
	"errors"
	"time"

	"github.com/Juantrevi/next-match/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	FindByID(db *gorm.DB, id string) (*models.Message, error)
	FindThread(db *gorm.DB, currentUserID, otherUserID string) ([]models.Message, error)
	MarkRead(db *gorm.DB, ids []string, readAt time.Time) error
	FindByContainer(db *gorm.DB, userID string, container models.MessageContainer, cursor *time.Time, limit int) ([]models.Message, error)
	SetSenderDeleted(db *gorm.DB, id string) error
	SetRecipientDeleted(db *gorm.DB, id string) error
	DeleteFullyDeleted(db *gorm.DB, userID string) (int64, error)
	CountUnread(db *gorm.DB, userID string) (int64, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, message *models.Message) error {
	if err := db.Create(message).Error; err != nil {
		return err
	}
	return r.preloadRelations(db, message)
}

func (r *MessageRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Message, error) {
	var message models.Message
	err := db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// FindThread returns the conversation between two users, oldest first. Each
// side only sees messages it has not soft-deleted.
func (r *MessageRepositoryImpl) FindThread(db *gorm.DB, currentUserID, otherUserID string) ([]models.Message, error) {
	var messages []models.Message
	err := db.Preload("Sender.Member").Preload("Recipient.Member").
		Where(
			db.Where("sender_id = ? AND recipient_id = ? AND sender_deleted = ?", currentUserID, otherUserID, false).
				Or("sender_id = ? AND recipient_id = ? AND recipient_deleted = ?", otherUserID, currentUserID, false),
		).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) MarkRead(db *gorm.DB, ids []string, readAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Model(&models.Message{}).Where("id IN ?", ids).Update("date_read", readAt).Error
}

// FindByContainer pages through the inbox or outbox newest first. The caller
// asks for limit+1 rows to detect whether another page exists; the cursor is
// the creation time of the first row beyond the page.
func (r *MessageRepositoryImpl) FindByContainer(db *gorm.DB, userID string, container models.MessageContainer, cursor *time.Time, limit int) ([]models.Message, error) {
	var messages []models.Message
	query := db.Preload("Sender.Member").Preload("Recipient.Member")

	if container == models.ContainerOutbox {
		query = query.Where("sender_id = ? AND sender_deleted = ?", userID, false)
	} else {
		query = query.Where("recipient_id = ? AND recipient_deleted = ?", userID, false)
	}

	if cursor != nil {
		query = query.Where("created_at <= ?", *cursor)
	}

	err := query.Order("created_at DESC").Limit(limit).Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) SetSenderDeleted(db *gorm.DB, id string) error {
	result := db.Model(&models.Message{}).Where("id = ?", id).Update("sender_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepositoryImpl) SetRecipientDeleted(db *gorm.DB, id string) error {
	result := db.Model(&models.Message{}).Where("id = ?", id).Update("recipient_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// DeleteFullyDeleted removes the user's conversations' rows that both sides
// have discarded. Returns the number of rows purged.
func (r *MessageRepositoryImpl) DeleteFullyDeleted(db *gorm.DB, userID string) (int64, error) {
	result := db.Where("sender_deleted = ? AND recipient_deleted = ? AND (sender_id = ? OR recipient_id = ?)",
		true, true, userID, userID).
		Delete(&models.Message{})
	return result.RowsAffected, result.Error
}

func (r *MessageRepositoryImpl) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("recipient_id = ? AND date_read IS NULL AND recipient_deleted = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) preloadRelations(db *gorm.DB, message *models.Message) error {
	return db.Preload("Sender.Member").Preload("Recipient.Member").
		First(message, "id = ?", message.ID).Error
}
