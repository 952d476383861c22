package dto

import (
	"time"

	"github.com/Juantrevi/next-match/internal/models"
)

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Gender      string `json:"gender" validate:"required,is-gender"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,adult"`
	Description string `json:"description" validate:"required"`
	City        string `json:"city" validate:"required"`
	Country     string `json:"country" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SocialLoginRequest carries the identity asserted by an external provider
// after the gateway has validated the provider callback.
type SocialLoginRequest struct {
	Provider string  `json:"provider" validate:"required,oneof=google github"`
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required"`
	Image    *string `json:"image" validate:"omitempty,url"`
}

// CompleteProfileRequest supplies the profile fields a social sign-up could
// not collect at registration time.
type CompleteProfileRequest struct {
	Gender      string `json:"gender" validate:"required,is-gender"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,adult"`
	Description string `json:"description" validate:"required"`
	City        string `json:"city" validate:"required"`
	Country     string `json:"country" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UserDTO struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	Name            *string `json:"name"`
	Role            string  `json:"role"`
	Image           *string `json:"image"`
	ProfileComplete bool    `json:"profileComplete"`
	EmailVerified   bool    `json:"emailVerified"`
}

type AuthResponse struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	ExpiresAt    int64   `json:"expiresAt"`
}

func ToUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Role:            string(user.Role),
		Image:           user.Image,
		ProfileComplete: user.ProfileComplete,
		EmailVerified:   user.EmailVerified != nil,
	}
}

// ParseDateOfBirth converts the wire format used by registration payloads.
func ParseDateOfBirth(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
