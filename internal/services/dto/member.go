package dto

import (
	"time"

	"github.com/Juantrevi/next-match/internal/models"
)

// MemberParams are the query-string filters for the member listing. Defaults
// are applied in the service so handlers can bind zero values directly.
type MemberParams struct {
	AgeMin     int    `form:"ageMin" validate:"omitempty,gte=18,lte=100"`
	AgeMax     int    `form:"ageMax" validate:"omitempty,gte=18,lte=100"`
	Gender     string `form:"gender"` // comma separated, e.g. "male,female"
	OrderBy    string `form:"orderBy" validate:"omitempty,oneof=updated created"`
	WithPhoto  *bool  `form:"withPhoto"`
	PageNumber int    `form:"pageNumber" validate:"omitempty,gte=1"`
	PageSize   int    `form:"pageSize" validate:"omitempty,gte=1,lte=50"`
}

type UpdateMemberRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"required"`
	City        string `json:"city" validate:"required"`
	Country     string `json:"country" validate:"required"`
}

type MemberDTO struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Image       *string   `json:"image"`
	Created     time.Time `json:"created"`
	LastActive  time.Time `json:"lastActive"`
}

type PhotoDTO struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	MemberID   string `json:"memberId"`
	IsApproved bool   `json:"isApproved"`
}

// PaginatedMembers is an offset page of the member listing.
type PaginatedMembers struct {
	Items      []MemberDTO `json:"items"`
	TotalCount int64       `json:"totalCount"`
	PageNumber int         `json:"pageNumber"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

func ToMemberDTO(member *models.Member) MemberDTO {
	return MemberDTO{
		ID:          member.ID,
		UserID:      member.UserID,
		Name:        member.Name,
		Age:         CalculateAge(member.DateOfBirth, time.Now()),
		Gender:      member.Gender,
		DateOfBirth: member.DateOfBirth,
		Description: member.Description,
		City:        member.City,
		Country:     member.Country,
		Image:       member.Image,
		Created:     member.CreatedAt,
		LastActive:  member.UpdatedAt,
	}
}

func ToMemberDTOs(members []models.Member) []MemberDTO {
	out := make([]MemberDTO, 0, len(members))
	for i := range members {
		out = append(out, ToMemberDTO(&members[i]))
	}
	return out
}

func ToPhotoDTO(photo *models.Photo) PhotoDTO {
	return PhotoDTO{
		ID:         photo.ID,
		URL:        photo.URL,
		MemberID:   photo.MemberID,
		IsApproved: photo.IsApproved,
	}
}

func ToPhotoDTOs(photos []models.Photo) []PhotoDTO {
	out := make([]PhotoDTO, 0, len(photos))
	for i := range photos {
		out = append(out, ToPhotoDTO(&photos[i]))
	}
	return out
}

// CalculateAge returns full years elapsed between dob and now.
func CalculateAge(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	return age
}
