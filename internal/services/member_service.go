package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/Juantrevi/next-match/internal/logger"
	"github.com/Juantrevi/next-match/internal/models"
	"github.com/Juantrevi/next-match/internal/repositories"
	"github.com/Juantrevi/next-match/internal/services/dto"
	"github.com/Juantrevi/next-match/internal/storage"
	"github.com/Juantrevi/next-match/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 12
	maxPhotoSize    = 5 << 20 // 5 MiB
)

type MemberService interface {
	GetMembers(db *gorm.DB, currentUserID string, params dto.MemberParams) (*dto.PaginatedMembers, error)
	GetMemberByUserID(db *gorm.DB, userID string) (*dto.MemberDTO, error)
	GetMemberPhotos(db *gorm.DB, requesterUserID, userID string) ([]dto.PhotoDTO, error)
	UpdateMember(db *gorm.DB, userID string, req *dto.UpdateMemberRequest) (*dto.MemberDTO, error)
	UpdateLastActive(db *gorm.DB, userID string) error
	UploadPhoto(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.PhotoDTO, error)
	SetMainPhoto(db *gorm.DB, userID, photoID string) error
	DeletePhoto(ctx context.Context, db *gorm.DB, userID, photoID string) error
}

type MemberServiceImpl struct {
	memberRepo repositories.MemberRepository
	photoRepo  repositories.PhotoRepository
	userRepo   repositories.UserRepository
	storage    storage.Storage
}

func NewMemberService(
	memberRepo repositories.MemberRepository,
	photoRepo repositories.PhotoRepository,
	userRepo repositories.UserRepository,
	store storage.Storage,
) MemberService {
	return &MemberServiceImpl{
		memberRepo: memberRepo,
		photoRepo:  photoRepo,
		userRepo:   userRepo,
		storage:    store,
	}
}

// GetMembers lists browsable profiles, never including the caller's own.
func (s *MemberServiceImpl) GetMembers(db *gorm.DB, currentUserID string, params dto.MemberParams) (*dto.PaginatedMembers, error) {
	filter := repositories.MemberFilter{
		ExcludeUserID: currentUserID,
		AgeMin:        params.AgeMin,
		AgeMax:        params.AgeMax,
		OrderBy:       params.OrderBy,
		Page:          params.PageNumber,
		PageSize:      params.PageSize,
	}

	if filter.AgeMin == 0 {
		filter.AgeMin = 18
	}
	if filter.AgeMax == 0 {
		filter.AgeMax = 100
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "updated"
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if params.Gender != "" {
		for _, g := range strings.Split(params.Gender, ",") {
			if g = strings.TrimSpace(g); g != "" {
				filter.Genders = append(filter.Genders, g)
			}
		}
	}
	if params.WithPhoto != nil {
		filter.WithPhoto = *params.WithPhoto
	}

	members, total, err := s.memberRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Browsing counts as activity for the "updated" ordering.
	if err := s.memberRepo.UpdateLastActive(db, currentUserID); err != nil {
		logger.WithError(err).Warn("failed to bump last active", "userID", currentUserID)
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	return &dto.PaginatedMembers{
		Items:      dto.ToMemberDTOs(members),
		TotalCount: total,
		PageNumber: filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *MemberServiceImpl) GetMemberByUserID(db *gorm.DB, userID string) (*dto.MemberDTO, error) {
	member, err := s.memberRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.ErrMemberNotFound
	}
	memberDTO := dto.ToMemberDTO(member)
	return &memberDTO, nil
}

// GetMemberPhotos returns a member's gallery. Owners see everything they
// uploaded; everyone else only sees approved photos.
func (s *MemberServiceImpl) GetMemberPhotos(db *gorm.DB, requesterUserID, userID string) ([]dto.PhotoDTO, error) {
	member, err := s.memberRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.ErrMemberNotFound
	}

	approvedOnly := requesterUserID != userID
	photos, err := s.photoRepo.FindByMemberID(db, member.ID, approvedOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.ToPhotoDTOs(photos), nil
}

func (s *MemberServiceImpl) UpdateMember(db *gorm.DB, userID string, req *dto.UpdateMemberRequest) (*dto.MemberDTO, error) {
	member, err := s.memberRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.ErrMemberNotFound
	}

	member.Name = req.Name
	member.Description = req.Description
	member.City = req.City
	member.Country = req.Country

	if err := s.memberRepo.Update(db, member); err != nil {
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.memberRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	memberDTO := dto.ToMemberDTO(updated)
	return &memberDTO, nil
}

func (s *MemberServiceImpl) UpdateLastActive(db *gorm.DB, userID string) error {
	if err := s.memberRepo.UpdateLastActive(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrMemberNotFound) {
			return apperrors.ErrMemberNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// UploadPhoto stores the image and records it pending moderation. The photo
// is invisible to other members until an admin approves it.
func (s *MemberServiceImpl) UploadPhoto(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.PhotoDTO, error) {
	member, err := s.memberRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.ErrMemberNotFound
	}

	if file.Size > maxPhotoSize {
		return nil, apperrors.NewBadRequestError("Photo exceeds the 5MB size limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return nil, apperrors.NewBadRequestError("Unsupported image format")
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	key := fmt.Sprintf("photos/%s/%s%s", member.ID, uuid.NewString(), ext)
	contentType := file.Header.Get("Content-Type")

	if err := s.storage.Save(ctx, key, src, contentType); err != nil {
		return nil, apperrors.UpstreamError("storage", err)
	}

	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		return nil, apperrors.UpstreamError("storage", err)
	}

	photo := &models.Photo{
		MemberID:   member.ID,
		URL:        url,
		PublicID:   key,
		IsApproved: false,
	}
	if err := s.photoRepo.Create(db, photo); err != nil {
		return nil, apperrors.InternalError(err)
	}

	photoDTO := dto.ToPhotoDTO(photo)
	return &photoDTO, nil
}

// SetMainPhoto promotes an approved photo to the member's avatar, mirrored
// onto the account so auth responses carry it too.
func (s *MemberServiceImpl) SetMainPhoto(db *gorm.DB, userID, photoID string) error {
	member, err := s.memberRepo.FindByUserID(db, userID)
	if err != nil {
		return apperrors.ErrMemberNotFound
	}

	photo, err := s.photoRepo.FindByID(db, photoID)
	if err != nil {
		return apperrors.ErrPhotoNotFound
	}

	if photo.MemberID != member.ID {
		return apperrors.NewForbiddenError("Photo belongs to another member")
	}

	if !photo.IsApproved {
		return apperrors.ErrPhotoNotApproved
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.memberRepo.SetImage(tx, member.ID, photo.URL); err != nil {
			return err
		}
		return s.userRepo.SetImage(tx, userID, photo.URL)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// DeletePhoto removes a gallery photo. The current avatar cannot be deleted;
// the external object is removed best-effort before the row.
func (s *MemberServiceImpl) DeletePhoto(ctx context.Context, db *gorm.DB, userID, photoID string) error {
	member, err := s.memberRepo.FindByUserID(db, userID)
	if err != nil {
		return apperrors.ErrMemberNotFound
	}

	photo, err := s.photoRepo.FindByID(db, photoID)
	if err != nil {
		return apperrors.ErrPhotoNotFound
	}

	if photo.MemberID != member.ID {
		return apperrors.NewForbiddenError("Photo belongs to another member")
	}

	if member.Image != nil && *member.Image == photo.URL {
		return apperrors.NewBadRequestError("Cannot delete the main photo")
	}

	if err := s.storage.Delete(ctx, photo.PublicID); err != nil {
		return apperrors.UpstreamError("storage", err)
	}

	if err := s.photoRepo.Delete(db, photoID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
