package services

import (
	"github.com/Juantrevi/next-match/internal/models"
	"github.com/Juantrevi/next-match/internal/realtime"
	"github.com/Juantrevi/next-match/internal/repositories"
	"github.com/Juantrevi/next-match/internal/services/dto"
	"github.com/Juantrevi/next-match/pkg/apperrors"

	"gorm.io/gorm"
)

type LikeService interface {
	ToggleLike(db *gorm.DB, sourceUserID, targetUserID string) (*dto.ToggleLikeResponse, error)
	GetLikeIDs(db *gorm.DB, userID string) ([]string, error)
	GetLikedMembers(db *gorm.DB, userID, listType string) ([]dto.MemberDTO, error)
}

type LikeServiceImpl struct {
	likeRepo   repositories.LikeRepository
	memberRepo repositories.MemberRepository
	publisher  realtime.Publisher
}

func NewLikeService(
	likeRepo repositories.LikeRepository,
	memberRepo repositories.MemberRepository,
	publisher realtime.Publisher,
) LikeService {
	return &LikeServiceImpl{
		likeRepo:   likeRepo,
		memberRepo: memberRepo,
		publisher:  publisher,
	}
}

// ToggleLike flips the like edge from source to target. A newly created like
// notifies the target on their private channel; removing one is silent.
func (s *LikeServiceImpl) ToggleLike(db *gorm.DB, sourceUserID, targetUserID string) (*dto.ToggleLikeResponse, error) {
	if sourceUserID == targetUserID {
		return nil, apperrors.ErrSelfLike
	}

	if _, err := s.memberRepo.FindByUserID(db, targetUserID); err != nil {
		return nil, apperrors.ErrMemberNotFound
	}

	exists, err := s.likeRepo.Exists(db, sourceUserID, targetUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if exists {
		if err := s.likeRepo.Delete(db, sourceUserID, targetUserID); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return &dto.ToggleLikeResponse{Liked: false}, nil
	}

	like := &models.Like{
		SourceUserID: sourceUserID,
		TargetUserID: targetUserID,
	}
	if err := s.likeRepo.Create(db, like); err != nil {
		return nil, apperrors.InternalError(err)
	}

	mutual, err := s.likeRepo.Exists(db, targetUserID, sourceUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifyTarget(db, sourceUserID, targetUserID)

	return &dto.ToggleLikeResponse{Liked: true, Mutual: mutual}, nil
}

func (s *LikeServiceImpl) GetLikeIDs(db *gorm.DB, userID string) ([]string, error) {
	ids, err := s.likeRepo.FindTargetIDs(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return ids, nil
}

// GetLikedMembers returns the members behind the caller's like edges:
// outgoing ("source"), incoming ("target") or reciprocated ("mutual").
func (s *LikeServiceImpl) GetLikedMembers(db *gorm.DB, userID, listType string) ([]dto.MemberDTO, error) {
	var (
		members []models.Member
		err     error
	)

	switch listType {
	case "target":
		members, err = s.likeRepo.FindLikedByMembers(db, userID)
	case "mutual":
		members, err = s.likeRepo.FindMutualMembers(db, userID)
	default:
		members, err = s.likeRepo.FindLikedMembers(db, userID)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.ToMemberDTOs(members), nil
}

func (s *LikeServiceImpl) notifyTarget(db *gorm.DB, sourceUserID, targetUserID string) {
	if s.publisher == nil {
		return
	}

	source, err := s.memberRepo.FindByUserID(db, sourceUserID)
	if err != nil {
		return
	}

	s.publisher.Publish(realtime.ChannelForUser(targetUserID), realtime.EventLikeNew, realtime.LikeNotification{
		UserID: sourceUserID,
		Name:   source.Name,
		Image:  source.Image,
	})
}
