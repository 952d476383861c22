package handlers

import (
	"net/http"

	"github.com/Juantrevi/next-match/internal/middleware"
	"github.com/Juantrevi/next-match/internal/services"
	"github.com/Juantrevi/next-match/internal/services/dto"
	"github.com/Juantrevi/next-match/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	*BaseHandler
	memberService services.MemberService
}

func NewMemberHandler(base *BaseHandler, memberService services.MemberService) *MemberHandler {
	return &MemberHandler{
		BaseHandler:   base,
		memberService: memberService,
	}
}

func (h *MemberHandler) RegisterRoutes(rg *gin.RouterGroup) {
	members := rg.Group("/members")
	members.Use(middleware.AuthMiddleware())
	{
		members.GET("", h.GetMembers)
		members.GET("/:userId", h.GetMember)
		members.GET("/:userId/photos", h.GetMemberPhotos)
		members.PUT("/me", h.UpdateProfile)
		members.POST("/me/photos", h.UploadPhoto)
		members.PUT("/me/photos/:photoId/main", h.SetMainPhoto)
		members.DELETE("/me/photos/:photoId", h.DeletePhoto)
	}
}

// GetMembers godoc
// @Summary List browsable member profiles
// @Tags members
// @Security BearerAuth
// @Produce json
// @Param ageMin query int false "Minimum age (inclusive)"
// @Param ageMax query int false "Maximum age (inclusive)"
// @Param gender query string false "Comma separated genders"
// @Param orderBy query string false "updated or created"
// @Param withPhoto query bool false "Only members with an avatar"
// @Param pageNumber query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.PaginatedMembers
// @Router /members [get]
func (h *MemberHandler) GetMembers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var params dto.MemberParams
	if !h.BindAndValidateQuery(c, &params) {
		return
	}

	db := h.GetDB(c)

	page, err := h.memberService.GetMembers(db, userID, params)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	targetUserID := c.Param("userId")
	if targetUserID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing userId parameter"))
		return
	}

	db := h.GetDB(c)

	member, err := h.memberService.GetMemberByUserID(db, targetUserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// GetMemberPhotos returns the member's gallery; unapproved photos are only
// visible to their owner.
func (h *MemberHandler) GetMemberPhotos(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	targetUserID := c.Param("userId")
	db := h.GetDB(c)

	photos, err := h.memberService.GetMemberPhotos(db, userID, targetUserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, photos)
}

func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	member, err := h.memberService.UpdateMember(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// UploadPhoto godoc
// @Summary Upload a gallery photo (pending moderation)
// @Tags members
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} dto.PhotoDTO
// @Router /members/me/photos [post]
func (h *MemberHandler) UploadPhoto(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing 'file' form field"))
		return
	}

	db := h.GetDB(c)

	photo, err := h.memberService.UploadPhoto(c.Request.Context(), db, userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, photo)
}

func (h *MemberHandler) SetMainPhoto(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	photoID := c.Param("photoId")
	db := h.GetDB(c)

	if err := h.memberService.SetMainPhoto(db, userID, photoID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Main photo updated"})
}

func (h *MemberHandler) DeletePhoto(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	photoID := c.Param("photoId")
	db := h.GetDB(c)

	if err := h.memberService.DeletePhoto(c.Request.Context(), db, userID, photoID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
}
