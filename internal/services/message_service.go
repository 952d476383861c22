package services

import (
	"time"

	"github.com/Juantrevi/next-match/internal/models"
	"github.com/Juantrevi/next-match/internal/realtime"
	"github.com/Juantrevi/next-match/internal/repositories"
	"github.com/Juantrevi/next-match/internal/services/dto"
	"github.com/Juantrevi/next-match/pkg/apperrors"

	"gorm.io/gorm"
)

const defaultMessagePageSize = 10

type MessageService interface {
	CreateMessage(db *gorm.DB, senderID string, req *dto.CreateMessageRequest) (*dto.MessageDTO, error)
	GetMessageThread(db *gorm.DB, currentUserID, otherUserID string) (*dto.MessageThread, error)
	GetMessagesByContainer(db *gorm.DB, userID string, params dto.MessageListParams) (*dto.PaginatedMessages, error)
	DeleteMessage(db *gorm.DB, userID, messageID string, isOutbox bool) error
	GetUnreadCount(db *gorm.DB, userID string) (int64, error)
}

type MessageServiceImpl struct {
	messageRepo repositories.MessageRepository
	memberRepo  repositories.MemberRepository
	publisher   realtime.Publisher
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	memberRepo repositories.MemberRepository,
	publisher realtime.Publisher,
) MessageService {
	return &MessageServiceImpl{
		messageRepo: messageRepo,
		memberRepo:  memberRepo,
		publisher:   publisher,
	}
}

// CreateMessage persists the message and pushes it to the conversation
// channel plus the recipient's private channel, so clients outside the open
// chat still get a notification.
func (s *MessageServiceImpl) CreateMessage(db *gorm.DB, senderID string, req *dto.CreateMessageRequest) (*dto.MessageDTO, error) {
	if senderID == req.RecipientID {
		return nil, apperrors.NewBadRequestError("Cannot send a message to yourself")
	}

	if _, err := s.memberRepo.FindByUserID(db, req.RecipientID); err != nil {
		return nil, apperrors.ErrMemberNotFound
	}

	message := &models.Message{
		Text:        req.Text,
		SenderID:    senderID,
		RecipientID: req.RecipientID,
	}
	if err := s.messageRepo.Create(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	messageDTO := dto.ToMessageDTO(message)

	if s.publisher != nil {
		s.publisher.Publish(realtime.ChannelForPair(senderID, req.RecipientID), realtime.EventMessageNew, messageDTO)
		s.publisher.Publish(realtime.ChannelForUser(req.RecipientID), realtime.EventMessageNew, messageDTO)
	}

	return &messageDTO, nil
}

// GetMessageThread returns the conversation with another user, oldest first,
// and marks every unread incoming message as read in a single update. The
// read receipt is pushed to the conversation channel so the sender's open
// chat flips its ticks immediately.
func (s *MessageServiceImpl) GetMessageThread(db *gorm.DB, currentUserID, otherUserID string) (*dto.MessageThread, error) {
	messages, err := s.messageRepo.FindThread(db, currentUserID, otherUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	var readIDs []string
	for i := range messages {
		m := &messages[i]
		if m.RecipientID == currentUserID && m.DateRead == nil {
			readIDs = append(readIDs, m.ID)
			m.DateRead = &now
		}
	}

	if len(readIDs) > 0 {
		if err := s.messageRepo.MarkRead(db, readIDs, now); err != nil {
			return nil, apperrors.InternalError(err)
		}
		if s.publisher != nil {
			s.publisher.Publish(realtime.ChannelForPair(currentUserID, otherUserID), realtime.EventMessagesRead, readIDs)
		}
	}

	return &dto.MessageThread{
		Messages:  dto.ToMessageDTOs(messages),
		ReadCount: len(readIDs),
	}, nil
}

// GetMessagesByContainer pages the inbox or outbox newest first with a
// creation-time cursor. One extra row is fetched to decide whether a next
// page exists; its timestamp becomes the cursor the client sends back.
func (s *MessageServiceImpl) GetMessagesByContainer(db *gorm.DB, userID string, params dto.MessageListParams) (*dto.PaginatedMessages, error) {
	container := models.MessageContainer(params.Container)
	if container == "" {
		container = models.ContainerInbox
	}

	limit := params.Limit
	if limit < 1 {
		limit = defaultMessagePageSize
	}

	var cursor *time.Time
	if params.Cursor != "" {
		parsed, err := time.Parse(time.RFC3339Nano, params.Cursor)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid cursor")
		}
		cursor = &parsed
	}

	messages, err := s.messageRepo.FindByContainer(db, userID, container, cursor, limit+1)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var nextCursor *string
	if len(messages) > limit {
		next := messages[limit].CreatedAt.Format(time.RFC3339Nano)
		nextCursor = &next
		messages = messages[:limit]
	}

	return &dto.PaginatedMessages{
		Messages:   dto.ToMessageDTOs(messages),
		NextCursor: nextCursor,
	}, nil
}

// DeleteMessage soft-deletes the caller's side of the message, then purges
// every message of theirs that both sides have discarded. Both steps run in
// one transaction. isOutbox says which copy is being deleted: the sender's
// (outbox) or the recipient's (inbox); the caller must own that side.
func (s *MessageServiceImpl) DeleteMessage(db *gorm.DB, userID, messageID string, isOutbox bool) error {
	message, err := s.messageRepo.FindByID(db, messageID)
	if err != nil {
		return apperrors.ErrMessageNotFound
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if isOutbox {
			if message.SenderID != userID {
				return apperrors.ErrNotYourMessage
			}
			if err := s.messageRepo.SetSenderDeleted(tx, messageID); err != nil {
				return err
			}
		} else {
			if message.RecipientID != userID {
				return apperrors.ErrNotYourMessage
			}
			if err := s.messageRepo.SetRecipientDeleted(tx, messageID); err != nil {
				return err
			}
		}

		_, err := s.messageRepo.DeleteFullyDeleted(tx, userID)
		return err
	})
}

func (s *MessageServiceImpl) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.messageRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
