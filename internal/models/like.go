package models

import "time"

// Like is a directed edge between two users. The composite primary key
// enforces "a user may like another user at most once" at the database
// level; a mutual like is simply two edges, one in each direction.
type Like struct {
	SourceUserID string    `gorm:"primaryKey;type:uuid" json:"source_user_id"`
	TargetUserID string    `gorm:"primaryKey;type:uuid" json:"target_user_id"`
	CreatedAt    time.Time `json:"created_at"`
}
