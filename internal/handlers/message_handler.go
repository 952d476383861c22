package handlers

import (
	"net/http"

	"github.com/Juantrevi/next-match/internal/middleware"
	"github.com/Juantrevi/next-match/internal/services"
	"github.com/Juantrevi/next-match/internal/services/dto"
	"github.com/Juantrevi/next-match/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(base *BaseHandler, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    base,
		messageService: messageService,
	}
}

func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	messages := rg.Group("/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.POST("", h.CreateMessage)
		messages.GET("", h.GetMessagesByContainer)
		messages.GET("/thread/:userId", h.GetMessageThread)
		messages.DELETE("/:messageId", h.DeleteMessage)
		messages.GET("/unread-count", h.GetUnreadCount)
	}
}

// CreateMessage godoc
// @Summary Send a message to another member
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMessageRequest true "Message payload"
// @Success 201 {object} dto.MessageDTO
// @Router /messages [post]
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	message, err := h.messageService.CreateMessage(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessageThread returns the full conversation with another member and
// marks incoming messages as read.
func (h *MessageHandler) GetMessageThread(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	otherUserID := c.Param("userId")
	if otherUserID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing userId parameter"))
		return
	}

	db := h.GetDB(c)

	thread, err := h.messageService.GetMessageThread(db, userID, otherUserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, thread)
}

// GetMessagesByContainer godoc
// @Summary Page through the inbox or outbox
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Param container query string false "inbox (default) or outbox"
// @Param cursor query string false "Cursor from the previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.PaginatedMessages
// @Router /messages [get]
func (h *MessageHandler) GetMessagesByContainer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var params dto.MessageListParams
	if !h.BindAndValidateQuery(c, &params) {
		return
	}

	db := h.GetDB(c)

	page, err := h.messageService.GetMessagesByContainer(db, userID, params)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	messageID := c.Param("messageId")
	isOutbox := c.Query("isOutbox") == "true"
	db := h.GetDB(c)

	if err := h.messageService.DeleteMessage(db, userID, messageID, isOutbox); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}

func (h *MessageHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	count, err := h.messageService.GetUnreadCount(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
