package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahmoudhijazi1/diet-platform/internal/authz"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/services"
)

// respondError maps service errors onto the uniform response envelope.
// Everything unrecognized is logged and surfaced as a generic 500 so
// internals never leak to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.Fail("invalid credentials"))
	case errors.Is(err, authz.ErrForbidden):
		c.JSON(http.StatusForbidden, models.Fail("forbidden"))
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.Fail("not found"))
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, models.Fail("already exists"))
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, models.Fail("internal server error"))
	}
}
