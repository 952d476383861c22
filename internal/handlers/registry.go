package handlers

import (
	"github.com/Juantrevi/next-match/internal/services"
	"github.com/Juantrevi/next-match/internal/validator"
)

// AppHandlers groups every HTTP handler for route registration.
type AppHandlers struct {
	Auth    *AuthHandler
	Member  *MemberHandler
	Like    *LikeHandler
	Message *MessageHandler
	Admin   *AdminHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:    NewAuthHandler(base, sc.AuthService),
		Member:  NewMemberHandler(base, sc.MemberService),
		Like:    NewLikeHandler(base, sc.LikeService),
		Message: NewMessageHandler(base, sc.MessageService),
		Admin:   NewAdminHandler(base, sc.ModerationService),
	}
}
