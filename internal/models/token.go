package models

import "time"

// Token is a single-use credential for email verification or password reset.
// At most one live token exists per email: generating a new one deletes any
// prior token for that address first.
type Token struct {
	BaseModel
	Email     string    `gorm:"not null;index" json:"email"`
	Token     string    `gorm:"not null;uniqueIndex" json:"token"`
	Type      TokenType `gorm:"type:varchar(20);not null" json:"type"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
