package models

import "time"

// User is the identity record. PasswordHash is nil for accounts created
// through a social provider; EmailVerified is nil until the verification
// token is consumed.
type User struct {
	BaseModel
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	Name            *string    `json:"name"`
	PasswordHash    *string    `json:"-"`
	EmailVerified   *time.Time `json:"email_verified"`
	Role            UserRole   `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`
	ProfileComplete bool       `gorm:"default:false" json:"profile_complete"`
	Image           *string    `json:"image"`

	// Relations
	Member        *Member        `gorm:"foreignKey:UserID" json:"member,omitempty"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
