package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahmoudhijazi1/diet-platform/internal/middleware"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("login successful", models.LoginResponse{AccessToken: token}))
}

// Me returns the authenticated user's account
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	user, err := h.authService.Me(c.Request.Context(), claims)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("ok", user))
}
