package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/services"
)

type TenantHandler struct {
	tenantService *services.TenantService
}

func NewTenantHandler(tenantService *services.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Create registers a new clinic
// POST /api/v1/tenants
func (h *TenantHandler) Create(c *gin.Context) {
	var req models.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OK("tenant created", tenant))
}

// List returns all clinics
// GET /api/v1/tenants
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.tenantService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("ok", tenants))
}

// Get returns one clinic
// GET /api/v1/tenants/:id
func (h *TenantHandler) Get(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("invalid tenant id"))
		return
	}

	tenant, err := h.tenantService.Get(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("ok", tenant))
}

// Update applies a partial patch
// PATCH /api/v1/tenants/:id
func (h *TenantHandler) Update(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("invalid tenant id"))
		return
	}

	var patch models.UpdateTenantRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), tenantID, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("tenant updated", tenant))
}

// Delete removes a clinic. User accounts survive with their tenant
// reference cleared.
// DELETE /api/v1/tenants/:id
func (h *TenantHandler) Delete(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("invalid tenant id"))
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), tenantID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("tenant deleted", nil))
}
