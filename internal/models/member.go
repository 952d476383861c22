package models

import "time"

// Member is the dating profile, one-to-one with User. UpdatedAt doubles as
// the last-active timestamp used by recency sorting and online indicators.
type Member struct {
	BaseModel
	UserID      string    `gorm:"uniqueIndex;not null" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Gender      string    `gorm:"type:varchar(20);not null" json:"gender"`
	DateOfBirth time.Time `gorm:"not null" json:"date_of_birth"`
	Description string    `gorm:"type:text" json:"description"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Image       *string   `json:"image"`

	Photos []Photo `gorm:"foreignKey:MemberID" json:"photos,omitempty"`
}
