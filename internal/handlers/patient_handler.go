package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahmoudhijazi1/diet-platform/internal/middleware"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/services"
)

type PatientHandler struct {
	patientService *services.PatientService
}

func NewPatientHandler(patientService *services.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Create registers a patient in the calling dietitian's clinic
// POST /api/v1/patients
func (h *PatientHandler) Create(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	var req models.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
		return
	}

	patient, err := h.patientService.Create(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OK("patient created", patient))
}

// List returns the patients of the caller's clinic
// GET /api/v1/patients
func (h *PatientHandler) List(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	patients, err := h.patientService.List(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("ok", patients))
}

// Get looks a patient up by id or username, scoped to the caller's clinic
// GET /api/v1/patients/:idOrUsername
func (h *PatientHandler) Get(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	patient, err := h.patientService.FindByIdentifier(c.Request.Context(), caller, c.Param("idOrUsername"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("ok", patient))
}

// Update merges profile fields of a patient in the caller's clinic
// PATCH /api/v1/patients/:idOrUsername
func (h *PatientHandler) Update(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	var patch models.UpdatePatientProfileRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
		return
	}

	patient, err := h.patientService.Update(c.Request.Context(), caller, c.Param("idOrUsername"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("patient updated", patient))
}

// Remove deletes a patient account (profile cascades)
// DELETE /api/v1/patients/:idOrUsername
func (h *PatientHandler) Remove(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	if err := h.patientService.Remove(c.Request.Context(), caller, c.Param("idOrUsername")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("patient removed", nil))
}

// GetProfile returns the caller's own patient profile
// GET /api/v1/patients/profile
func (h *PatientHandler) GetProfile(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	profile, err := h.patientService.GetOwnProfile(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("ok", profile))
}

// UpdateProfile merges fields into the caller's own profile
// PUT /api/v1/patients/profile
func (h *PatientHandler) UpdateProfile(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
		return
	}

	var patch models.UpdatePatientProfileRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
		return
	}

	profile, err := h.patientService.UpdateOwnProfile(c.Request.Context(), caller, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("profile updated", profile))
}
