package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mahmoudhijazi1/diet-platform/internal/authz"
	"github.com/mahmoudhijazi1/diet-platform/internal/cache"
	"github.com/mahmoudhijazi1/diet-platform/internal/config"
	"github.com/mahmoudhijazi1/diet-platform/internal/database"
	"github.com/mahmoudhijazi1/diet-platform/internal/handlers"
	"github.com/mahmoudhijazi1/diet-platform/internal/middleware"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/repository"
	"github.com/mahmoudhijazi1/diet-platform/internal/services"
	"github.com/mahmoudhijazi1/diet-platform/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()

	// Initialize database pool
	pool, err := database.Connect(ctx, &cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize DB pool: %v", err)
	}

	// Initialize Redis client
	redisClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize Redis client: %v", err)
	}

	// Initialize storage driver
	storageDriver, err := storage.New(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage driver: %v", err)
	}

	// Initialize repositories
	tenantRepo := repository.NewTenantRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	dietitianRepo := repository.NewDietitianRepository(pool)
	patientRepo := repository.NewPatientRepository(pool)

	// Initialize services
	authorizer := authz.New()
	authService := services.NewAuthService(userRepo, cfg)
	tenantService := services.NewTenantService(tenantRepo, redisClient)
	dietitianService := services.NewDietitianService(dietitianRepo, userRepo, tenantRepo, authorizer)
	patientService := services.NewPatientService(patientRepo, userRepo, authorizer)
	avatarService := services.NewAvatarService(userRepo, storageDriver, redisClient)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	dietitianHandler := handlers.NewDietitianHandler(dietitianService)
	patientHandler := handlers.NewPatientHandler(patientService)
	userHandler := handlers.NewUserHandler(avatarService)

	router := setupRouter(cfg, redisClient, tenantRepo, authHandler, tenantHandler, dietitianHandler, patientHandler, userHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	pool.Close()
	redisClient.Close()

	log.Println("Server exited")
}

func setupRouter(
	cfg *config.Config,
	redisClient *cache.Client,
	tenantRepo *repository.TenantRepository,
	authHandler *handlers.AuthHandler,
	tenantHandler *handlers.TenantHandler,
	dietitianHandler *handlers.DietitianHandler,
	patientHandler *handlers.PatientHandler,
	userHandler *handlers.UserHandler,
) *gin.Engine {
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Uploaded avatars when running on local storage
	if cfg.Storage.Driver == "local" || cfg.Storage.Driver == "" {
		router.Static("/uploads", cfg.Storage.UploadsPath)
	}

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
	}

	// Protected routes (authentication required)
	protected := router.Group("/api/v1")
	protected.Use(middleware.Auth(cfg))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/users/avatar", userHandler.UploadAvatar)

		// Tenant registry (SUPER_ADMIN only)
		registry := protected.Group("/tenants")
		registry.Use(middleware.RequireRoles(models.RoleSuperAdmin))
		{
			registry.POST("", tenantHandler.Create)
			registry.GET("", tenantHandler.List)
			registry.GET("/:id", tenantHandler.Get)
			registry.PATCH("/:id", tenantHandler.Update)
			registry.DELETE("/:id", tenantHandler.Delete)
		}

		// Dietitian management inside a clinic (ADMIN allowed for own tenant)
		staff := protected.Group("/tenants/:id/dietitians")
		staff.Use(
			middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin),
			middleware.RequireActiveTenant(redisClient, tenantRepo),
		)
		{
			staff.POST("", dietitianHandler.Create)
			staff.GET("", dietitianHandler.List)
			staff.DELETE("/:userId", dietitianHandler.Remove)
		}

		// Patient management (DIETITIAN, tenant-scoped) and self-service
		patients := protected.Group("/patients")
		patients.Use(middleware.RequireActiveTenant(redisClient, tenantRepo))
		{
			patients.GET("/profile", patientHandler.GetProfile)
			patients.PUT("/profile", patientHandler.UpdateProfile)

			patients.POST("", patientHandler.Create)
			patients.GET("", patientHandler.List)
			patients.GET("/:idOrUsername", patientHandler.Get)
			patients.PATCH("/:idOrUsername", patientHandler.Update)
			patients.DELETE("/:idOrUsername", patientHandler.Remove)
		}

		// Dietitian self-service
		dietitians := protected.Group("/dietitians")
		dietitians.Use(middleware.RequireActiveTenant(redisClient, tenantRepo))
		{
			dietitians.GET("/profile", dietitianHandler.GetProfile)
			dietitians.PUT("/profile", dietitianHandler.UpdateProfile)
		}
	}

	return router
}
