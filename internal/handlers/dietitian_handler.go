package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mahmoudhijazi1/diet-platform/internal/middleware"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/services"
)

type DietitianHandler struct {
	dietitianService *services.DietitianService
}

func NewDietitianHandler(dietitianService *services.DietitianService) *DietitianHandler {
	return &DietitianHandler{dietitianService: dietitianService}
}

// Create adds a dietitian to a clinic
// POST /api/v1/tenants/:id/dietitians
func (h *DietitianHandler) Create(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("invalid tenant id"))
		return
	}

	var req models.CreateDietitianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
		return
	}

	dietitian, err := h.dietitianService.CreateForTenant(c.Request.Context(), caller, tenantID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OK("dietitian created", dietitian))
}

// List returns the dietitians of a clinic
// GET /api/v1/tenants/:id/dietitians
func (h *DietitianHandler) List(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("invalid tenant id"))
		return
	}

	dietitians, err := h.dietitianService.ListForTenant(c.Request.Context(), caller, tenantID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("ok", dietitians))
}

// Remove deletes a dietitian account (profile cascades)
// DELETE /api/v1/tenants/:id/dietitians/:userId
func (h *DietitianHandler) Remove(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("invalid tenant id"))
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("invalid user id"))
		return
	}

	if err := h.dietitianService.RemoveFromTenant(c.Request.Context(), caller, tenantID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("dietitian removed", nil))
}

// GetProfile returns the caller's own profile
// GET /api/v1/dietitians/profile
func (h *DietitianHandler) GetProfile(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	profile, err := h.dietitianService.GetOwnProfile(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("ok", profile))
}

// UpdateProfile merges fields into the caller's own profile
// PUT /api/v1/dietitians/profile
func (h *DietitianHandler) UpdateProfile(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	var patch models.UpdateDietitianProfileRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
		return
	}

	profile, err := h.dietitianService.UpdateOwnProfile(c.Request.Context(), caller, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("profile updated", profile))
}
