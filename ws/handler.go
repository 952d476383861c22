package ws

import (
	"net/http"

	"github.com/Juantrevi/next-match/internal/logger"
	"github.com/Juantrevi/next-match/internal/middleware"
	"github.com/Juantrevi/next-match/internal/realtime"
	"github.com/Juantrevi/next-match/internal/services"
	"github.com/Juantrevi/next-match/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is enforced by the API gateway
	},
}

type WebSocketHandler struct {
	manager       *Manager
	memberService services.MemberService
}

func NewWebSocketHandler(manager *Manager, memberService services.MemberService) *WebSocketHandler {
	return &WebSocketHandler{
		manager:       manager,
		memberService: memberService,
	}
}

// ServeWS upgrades an authenticated request to a websocket connection. The
// client starts subscribed to its own private channel; connecting counts as
// activity for the online indicator.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("websocket upgrade failed", "user_id", userID)
		return
	}

	client := &Client{
		UserID:  userID,
		Conn:    conn,
		Send:    make(chan OutgoingEvent, 256),
		Manager: h.manager,
	}

	h.manager.register <- client
	h.manager.Subscribe(client, realtime.ChannelForUser(userID))

	if db, ok := c.Get(string(contextkeys.DBContextKey)); ok {
		if gdb, ok := db.(*gorm.DB); ok {
			_ = h.memberService.UpdateLastActive(gdb, userID)
		}
	}

	go client.readPump()
	go client.writePump()
}

// Presence reports who is online. With a userId query it answers for that
// single member, otherwise it lists every connected user id.
func (h *WebSocketHandler) Presence(c *gin.Context) {
	if middleware.GetUserID(c) == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if userID := c.Query("userId"); userID != "" {
		c.JSON(http.StatusOK, gin.H{"userId": userID, "online": h.manager.IsUserConnected(userID)})
		return
	}

	ids := h.manager.ConnectedUserIDs()
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"userIds": ids})
}
