package models

// Photo references an image in external storage. PublicID is the storage
// provider's identifier, needed to delete the remote asset. Photos start
// unapproved and only become visible to other members after moderation.
type Photo struct {
	BaseModel
	MemberID   string `gorm:"not null;index" json:"member_id"`
	URL        string `gorm:"not null" json:"url"`
	PublicID   string `json:"public_id"`
	IsApproved bool   `gorm:"default:false;index" json:"is_approved"`

	Member *Member `gorm:"foreignKey:MemberID" json:"-"`
}
