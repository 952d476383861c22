package dto

import (
	"time"

	"github.com/Juantrevi/next-match/internal/models"
)

type CreateMessageRequest struct {
	RecipientID string `json:"recipientId" validate:"required"`
	Text        string `json:"text" validate:"required,max=2000"`
}

// MessageListParams selects the inbox or outbox view. Cursor is the RFC3339
// creation time returned as nextCursor by the previous page.
type MessageListParams struct {
	Container string `form:"container" validate:"omitempty,is-message-container"`
	Cursor    string `form:"cursor"`
	Limit     int    `form:"limit" validate:"omitempty,gte=1,lte=50"`
}

// MessageDTO is the flattened wire shape: participant display fields are
// denormalized so clients never join against the member listing.
type MessageDTO struct {
	ID             string     `json:"id"`
	Text           string     `json:"text"`
	Created        time.Time  `json:"created"`
	DateRead       *time.Time `json:"dateRead"`
	SenderID       string     `json:"senderId"`
	SenderName     string     `json:"senderName"`
	SenderImage    *string    `json:"senderImage"`
	RecipientID    string     `json:"recipientId"`
	RecipientName  string     `json:"recipientName"`
	RecipientImage *string    `json:"recipientImage"`
}

type PaginatedMessages struct {
	Messages   []MessageDTO `json:"messages"`
	NextCursor *string      `json:"nextCursor"`
}

type MessageThread struct {
	Messages  []MessageDTO `json:"messages"`
	ReadCount int          `json:"readCount"`
}

func ToMessageDTO(m *models.Message) MessageDTO {
	dto := MessageDTO{
		ID:          m.ID,
		Text:        m.Text,
		Created:     m.CreatedAt,
		DateRead:    m.DateRead,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
	}
	if m.Sender != nil && m.Sender.Member != nil {
		dto.SenderName = m.Sender.Member.Name
		dto.SenderImage = m.Sender.Member.Image
	}
	if m.Recipient != nil && m.Recipient.Member != nil {
		dto.RecipientName = m.Recipient.Member.Name
		dto.RecipientImage = m.Recipient.Member.Image
	}
	return dto
}

func ToMessageDTOs(messages []models.Message) []MessageDTO {
	out := make([]MessageDTO, 0, len(messages))
	for i := range messages {
		out = append(out, ToMessageDTO(&messages[i]))
	}
	return out
}
