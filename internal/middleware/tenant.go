package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/mahmoudhijazi1/diet-platform/internal/cache"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/repository"
)

const tenantStatusCacheTTL = 5 * time.Minute

// RequireActiveTenant blocks tenant-affiliated callers whose tenant is not
// ACTIVE. SUPER_ADMIN callers (no tenant) pass through. The status lookup
// goes through redis first; the cache entry is invalidated whenever a tenant
// is updated or deleted.
func RequireActiveTenant(redisClient *cache.Client, tenantRepo *repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Fail("authentication required"))
			c.Abort()
			return
		}

		if claims.TenantID == nil {
			if claims.Role == models.RoleSuperAdmin {
				c.Next()
				return
			}
			c.JSON(http.StatusForbidden, models.Fail("forbidden"))
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		status, err := redisClient.GetTenantStatus(ctx, *claims.TenantID)
		if err != nil && err != redis.Nil {
			log.Printf("Redis error: %v", err)
		}

		if status == "" {
			tenant, err := tenantRepo.GetByID(ctx, *claims.TenantID)
			if err != nil {
				c.JSON(http.StatusForbidden, models.Fail("forbidden"))
				c.Abort()
				return
			}
			status = string(tenant.Status)

			if err := redisClient.SetTenantStatus(ctx, *claims.TenantID, status, tenantStatusCacheTTL); err != nil {
				log.Printf("Failed to cache tenant status: %v", err)
			}
		}

		if status != string(models.TenantStatusActive) {
			c.JSON(http.StatusForbidden, models.Fail("forbidden"))
			c.Abort()
			return
		}

		c.Next()
	}
}
