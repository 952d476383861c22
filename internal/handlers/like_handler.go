package handlers

import (
	"net/http"

	"github.com/Juantrevi/next-match/internal/middleware"
	"github.com/Juantrevi/next-match/internal/services"
	"github.com/Juantrevi/next-match/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	*BaseHandler
	likeService services.LikeService
}

func NewLikeHandler(base *BaseHandler, likeService services.LikeService) *LikeHandler {
	return &LikeHandler{
		BaseHandler: base,
		likeService: likeService,
	}
}

func (h *LikeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	likes := rg.Group("/likes")
	likes.Use(middleware.AuthMiddleware())
	{
		likes.POST("/:targetUserId", h.ToggleLike)
		likes.GET("/ids", h.GetLikeIDs)
		likes.GET("", h.GetLikedMembers)
	}
}

// ToggleLike godoc
// @Summary Like or unlike another member
// @Tags likes
// @Security BearerAuth
// @Produce json
// @Param targetUserId path string true "Target user id"
// @Success 200 {object} dto.ToggleLikeResponse
// @Router /likes/{targetUserId} [post]
func (h *LikeHandler) ToggleLike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	targetUserID := c.Param("targetUserId")
	db := h.GetDB(c)

	result, err := h.likeService.ToggleLike(db, userID, targetUserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLikeIDs returns the ids of every user the caller has liked, used by
// clients to paint like buttons without loading full profiles.
func (h *LikeHandler) GetLikeIDs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	ids, err := h.likeService.GetLikeIDs(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ids)
}

// GetLikedMembers godoc
// @Summary List members by like relationship
// @Tags likes
// @Security BearerAuth
// @Produce json
// @Param type query string false "source (default), target or mutual"
// @Success 200 {array} dto.MemberDTO
// @Router /likes [get]
func (h *LikeHandler) GetLikedMembers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var params dto.ListLikesParams
	if !h.BindAndValidateQuery(c, &params) {
		return
	}

	db := h.GetDB(c)

	members, err := h.likeService.GetLikedMembers(db, userID, params.Type)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}
