package models

import "time"

// Message is directed text between two users. DateRead stays nil until the
// recipient opens the thread. The two delete flags are independent
// soft-deletes; a row is physically removed only when both are true.
type Message struct {
	BaseModel
	Text             string     `gorm:"type:text;not null" json:"text"`
	SenderID         string     `gorm:"not null;index" json:"sender_id"`
	RecipientID      string     `gorm:"not null;index" json:"recipient_id"`
	DateRead         *time.Time `json:"date_read"`
	SenderDeleted    bool       `gorm:"default:false;index" json:"-"`
	RecipientDeleted bool       `gorm:"default:false;index" json:"-"`

	Sender    *User `gorm:"foreignKey:SenderID" json:"-"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"-"`
}
