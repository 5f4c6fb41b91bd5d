package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahmoudhijazi1/diet-platform/internal/middleware"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/services"
)

// 5 MB
const maxAvatarSize = 5 << 20

type UserHandler struct {
	avatarService *services.AvatarService
}

func NewUserHandler(avatarService *services.AvatarService) *UserHandler {
	return &UserHandler{avatarService: avatarService}
}

// UploadAvatar stores a profile picture for the authenticated user
// POST /api/v1/users/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("avatar file required"))
		return
	}

	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, models.Fail("avatar exceeds 5MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("failed to read avatar file"))
		return
	}
	defer file.Close()

	avatarURL, err := h.avatarService.Upload(c.Request.Context(), caller.UserID, fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("avatar uploaded", models.AvatarResponse{AvatarURL: avatarURL}))
}
