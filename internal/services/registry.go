package services

import (
	"github.com/Juantrevi/next-match/internal/email"
	"github.com/Juantrevi/next-match/internal/realtime"
	"github.com/Juantrevi/next-match/internal/repositories"
	"github.com/Juantrevi/next-match/internal/storage"
)

// ServiceContainer wires every service with its repositories and
// collaborators. Handlers receive it once at startup.
type ServiceContainer struct {
	AuthService       AuthService
	MemberService     MemberService
	LikeService       LikeService
	MessageService    MessageService
	ModerationService ModerationService
}

func NewServiceContainer(publisher realtime.Publisher, emailProvider email.Provider, store storage.Storage) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	memberRepo := repositories.NewMemberRepository()
	photoRepo := repositories.NewPhotoRepository()
	likeRepo := repositories.NewLikeRepository()
	messageRepo := repositories.NewMessageRepository()
	tokenRepo := repositories.NewTokenRepository()
	refreshRepo := repositories.NewRefreshTokenRepository()

	return &ServiceContainer{
		AuthService:       NewAuthService(userRepo, memberRepo, tokenRepo, refreshRepo, emailProvider),
		MemberService:     NewMemberService(memberRepo, photoRepo, userRepo, store),
		LikeService:       NewLikeService(likeRepo, memberRepo, publisher),
		MessageService:    NewMessageService(messageRepo, memberRepo, publisher),
		ModerationService: NewModerationService(photoRepo, memberRepo, userRepo, store),
	}
}
