package services

import (
	"context"

	"github.com/Juantrevi/next-match/internal/logger"
	"github.com/Juantrevi/next-match/internal/repositories"
	"github.com/Juantrevi/next-match/internal/services/dto"
	"github.com/Juantrevi/next-match/internal/storage"
	"github.com/Juantrevi/next-match/pkg/apperrors"

	"gorm.io/gorm"
)

type ModerationService interface {
	GetUnapprovedPhotos(db *gorm.DB) ([]dto.PhotoDTO, error)
	ApprovePhoto(db *gorm.DB, photoID string) error
	RejectPhoto(ctx context.Context, db *gorm.DB, photoID string) error
}

type ModerationServiceImpl struct {
	photoRepo  repositories.PhotoRepository
	memberRepo repositories.MemberRepository
	userRepo   repositories.UserRepository
	storage    storage.Storage
}

func NewModerationService(
	photoRepo repositories.PhotoRepository,
	memberRepo repositories.MemberRepository,
	userRepo repositories.UserRepository,
	store storage.Storage,
) ModerationService {
	return &ModerationServiceImpl{
		photoRepo:  photoRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		storage:    store,
	}
}

func (s *ModerationServiceImpl) GetUnapprovedPhotos(db *gorm.DB) ([]dto.PhotoDTO, error) {
	photos, err := s.photoRepo.FindUnapproved(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.ToPhotoDTOs(photos), nil
}

// ApprovePhoto makes the photo publicly visible. If the owner has no avatar
// yet, the approved photo becomes it, on both the profile and the account.
func (s *ModerationServiceImpl) ApprovePhoto(db *gorm.DB, photoID string) error {
	photo, err := s.photoRepo.FindByID(db, photoID)
	if err != nil {
		return apperrors.ErrPhotoNotFound
	}

	if photo.Member == nil {
		return apperrors.ErrMemberNotFound
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.photoRepo.Approve(tx, photoID); err != nil {
			return err
		}

		member, err := s.memberRepo.FindByUserID(tx, photo.Member.UserID)
		if err != nil {
			return err
		}

		if member.Image == nil {
			if err := s.memberRepo.SetImage(tx, member.ID, photo.URL); err != nil {
				return err
			}
			return s.userRepo.SetImage(tx, member.UserID, photo.URL)
		}
		return nil
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// RejectPhoto removes the photo entirely. The external object delete is
// best-effort: an orphaned blob is preferable to a photo the moderator
// rejected staying visible in the member's gallery.
func (s *ModerationServiceImpl) RejectPhoto(ctx context.Context, db *gorm.DB, photoID string) error {
	photo, err := s.photoRepo.FindByID(db, photoID)
	if err != nil {
		return apperrors.ErrPhotoNotFound
	}

	if err := s.storage.Delete(ctx, photo.PublicID); err != nil {
		logger.WithError(err).Warn("failed to delete rejected photo from storage",
			"photo_id", photoID, "key", photo.PublicID)
	}

	if err := s.photoRepo.Delete(db, photoID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
