package handlers

import (
	"net/http"

	"github.com/Juantrevi/next-match/internal/middleware"
	"github.com/Juantrevi/next-match/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the photo moderation queue.
type AdminHandler struct {
	*BaseHandler
	moderationService services.ModerationService
}

func NewAdminHandler(base *BaseHandler, moderationService services.ModerationService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:       base,
		moderationService: moderationService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/photos", h.GetUnapprovedPhotos)
		admin.PUT("/photos/:photoId/approve", h.ApprovePhoto)
		admin.DELETE("/photos/:photoId", h.RejectPhoto)
	}
}

// GetUnapprovedPhotos godoc
// @Summary List photos awaiting moderation
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.PhotoDTO
// @Router /admin/photos [get]
func (h *AdminHandler) GetUnapprovedPhotos(c *gin.Context) {
	db := h.GetDB(c)

	photos, err := h.moderationService.GetUnapprovedPhotos(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, photos)
}

func (h *AdminHandler) ApprovePhoto(c *gin.Context) {
	photoID := c.Param("photoId")
	db := h.GetDB(c)

	if err := h.moderationService.ApprovePhoto(db, photoID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo approved"})
}

func (h *AdminHandler) RejectPhoto(c *gin.Context) {
	photoID := c.Param("photoId")
	db := h.GetDB(c)

	if err := h.moderationService.RejectPhoto(c.Request.Context(), db, photoID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo rejected"})
}
