package services

import (
	"time"

	"github.com/Juantrevi/next-match/internal/auth"
	"github.com/Juantrevi/next-match/internal/email"
	"github.com/Juantrevi/next-match/internal/logger"
	"github.com/Juantrevi/next-match/internal/models"
	"github.com/Juantrevi/next-match/internal/repositories"
	"github.com/Juantrevi/next-match/internal/services/dto"
	"github.com/Juantrevi/next-match/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	emailTokenTTL   = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	SocialLogin(db *gorm.DB, req *dto.SocialLoginRequest) (*dto.AuthResponse, error)
	CompleteProfile(db *gorm.DB, userID string, req *dto.CompleteProfileRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	VerifyEmail(db *gorm.DB, token string) error
	ResendVerification(db *gorm.DB, emailAddr string) error
	ForgotPassword(db *gorm.DB, emailAddr string) error
	ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error
	GetCurrentUser(db *gorm.DB, userID string) (*dto.UserDTO, error)
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	memberRepo  repositories.MemberRepository
	tokenRepo   repositories.TokenRepository
	refreshRepo repositories.RefreshTokenRepository
	email       email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	memberRepo repositories.MemberRepository,
	tokenRepo repositories.TokenRepository,
	refreshRepo repositories.RefreshTokenRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		memberRepo:  memberRepo,
		tokenRepo:   tokenRepo,
		refreshRepo: refreshRepo,
		email:       emailProvider,
	}
}

// Register creates the user and its profile atomically, then issues a
// verification token. The account cannot log in until the email is verified.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserDTO, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	dob, err := dto.ParseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid date of birth")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:           req.Email,
		Name:            &req.Name,
		PasswordHash:    &hash,
		Role:            models.UserRoleMember,
		ProfileComplete: true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}

		member := &models.Member{
			UserID:      user.ID,
			Name:        req.Name,
			Gender:      req.Gender,
			DateOfBirth: dob,
			Description: req.Description,
			City:        req.City,
			Country:     req.Country,
		}
		return s.memberRepo.Create(tx, member)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.issueEmailToken(db, user.Email, models.TokenTypeVerification); err != nil {
		// The account exists; the user can request a fresh link later.
		logger.WithError(err).Warn("failed to send verification email", "email", user.Email)
	}

	userDTO := dto.ToUserDTO(user)
	return &userDTO, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.PasswordHash == nil || !auth.CheckPasswordHash(req.Password, *user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.EmailVerified == nil {
		// Resend the link so a user who lost the first mail is not stuck.
		if err := s.issueEmailToken(db, user.Email, models.TokenTypeVerification); err != nil {
			logger.WithError(err).Warn("failed to resend verification email", "email", user.Email)
		}
		return nil, apperrors.ErrEmailNotVerified
	}

	return s.issueSession(db, user)
}

// SocialLogin signs in via an external identity provider, creating the
// account on first contact. Provider emails are trusted as verified; the
// profile stays incomplete until CompleteProfile runs.
func (s *AuthServiceImpl) SocialLogin(db *gorm.DB, req *dto.SocialLoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}

		now := time.Now()
		user = &models.User{
			Email:         req.Email,
			Name:          &req.Name,
			EmailVerified: &now,
			Role:          models.UserRoleMember,
			Image:         req.Image,
		}
		if err := s.userRepo.Create(db, user); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return s.issueSession(db, user)
}

// CompleteProfile fills in the member profile for a social sign-up and
// re-issues the session so the new profile state is reflected immediately.
func (s *AuthServiceImpl) CompleteProfile(db *gorm.DB, userID string, req *dto.CompleteProfileRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	if user.ProfileComplete {
		return nil, apperrors.ErrProfileComplete
	}

	dob, err := dto.ParseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid date of birth")
	}

	name := user.Email
	if user.Name != nil && *user.Name != "" {
		name = *user.Name
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		member := &models.Member{
			UserID:      user.ID,
			Name:        name,
			Gender:      req.Gender,
			DateOfBirth: dob,
			Description: req.Description,
			City:        req.City,
			Country:     req.Country,
			Image:       user.Image,
		}
		if err := s.memberRepo.Create(tx, member); err != nil {
			return err
		}
		return s.userRepo.SetProfileComplete(tx, user.ID)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user.ProfileComplete = true
	return s.issueSession(db, user)
}

// Refresh rotates the refresh token and returns a fresh session.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.refreshRepo.FindByToken(db, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidAuthToken
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.refreshRepo.DeleteByToken(db, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidAuthToken
	}

	if err := s.refreshRepo.DeleteByToken(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueSession(db, user)
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.refreshRepo.DeleteByToken(db, refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// VerifyEmail consumes a verification token. Expired tokens are removed so
// the user gets a clean "request a new link" path.
func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, tokenValue string) error {
	token, err := s.tokenRepo.FindByToken(db, tokenValue)
	if err != nil {
		return apperrors.ErrInvalidAuthToken
	}

	if token.Type != models.TokenTypeVerification {
		return apperrors.ErrInvalidAuthToken
	}

	if time.Now().After(token.ExpiresAt) {
		_ = s.tokenRepo.Delete(db, token.ID)
		return apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.FindByEmail(db, token.Email)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.SetEmailVerified(tx, user.ID, time.Now()); err != nil {
			return err
		}
		return s.tokenRepo.Delete(tx, token.ID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ResendVerification(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	if user.EmailVerified != nil {
		return apperrors.NewBadRequestError("Email is already verified")
	}

	if err := s.issueEmailToken(db, user.Email, models.TokenTypeVerification); err != nil {
		return apperrors.UpstreamError("email", err)
	}
	return nil
}

// ForgotPassword answers identically whether or not the address is known,
// so it cannot be used to probe for registered emails.
func (s *AuthServiceImpl) ForgotPassword(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	if err := s.issueEmailToken(db, user.Email, models.TokenTypePasswordReset); err != nil {
		return apperrors.UpstreamError("email", err)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}

	token, err := s.tokenRepo.FindByToken(db, req.Token)
	if err != nil {
		return apperrors.ErrInvalidAuthToken
	}

	if token.Type != models.TokenTypePasswordReset {
		return apperrors.ErrInvalidAuthToken
	}

	if time.Now().After(token.ExpiresAt) {
		_ = s.tokenRepo.Delete(db, token.ID)
		return apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.FindByEmail(db, token.Email)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdatePassword(tx, user.ID, hash); err != nil {
			return err
		}
		if err := s.tokenRepo.Delete(tx, token.ID); err != nil {
			return err
		}
		// A password change invalidates every open session.
		return s.refreshRepo.DeleteByUserID(tx, user.ID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) GetCurrentUser(db *gorm.DB, userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	userDTO := dto.ToUserDTO(user)
	return &userDTO, nil
}

// issueSession creates the access / refresh token pair for a verified user.
func (s *AuthServiceImpl) issueSession(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     auth.GenerateOpaqueToken(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.refreshRepo.Create(db, refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		User:         dto.ToUserDTO(user),
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		ExpiresAt:    refresh.ExpiresAt.Unix(),
	}, nil
}

// issueEmailToken replaces any live token of the same type for the address
// and emails the resulting link.
func (s *AuthServiceImpl) issueEmailToken(db *gorm.DB, emailAddr string, tokenType models.TokenType) error {
	token := &models.Token{
		Email:     emailAddr,
		Token:     auth.GenerateOpaqueToken(),
		Type:      tokenType,
		ExpiresAt: time.Now().Add(emailTokenTTL),
	}

	if err := s.tokenRepo.Replace(db, token); err != nil {
		return err
	}

	if tokenType == models.TokenTypePasswordReset {
		return s.email.SendPasswordReset(emailAddr, token.Token)
	}
	return s.email.SendVerification(emailAddr, token.Token)
}
