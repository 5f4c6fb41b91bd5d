package main

import (
	"context"
	"log"
	"os"

	"github.com/mahmoudhijazi1/diet-platform/internal/config"
	"github.com/mahmoudhijazi1/diet-platform/internal/database"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/repository"
	"github.com/mahmoudhijazi1/diet-platform/internal/utils"
)

// Applies the schema and creates the initial SUPER_ADMIN account so a
// fresh deployment has a login to bootstrap tenants with.
func main() {
	cfg := config.Load()

	ctx := context.Background()

	pool, err := database.Connect(ctx, &cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize DB pool: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Schema applied")

	username := getEnv("SEED_ADMIN_USERNAME", "superadmin")
	email := getEnv("SEED_ADMIN_EMAIL", "superadmin@example.com")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("SEED_ADMIN_PASSWORD must be set")
	}

	userRepo := repository.NewUserRepository(pool)

	if _, err := userRepo.GetByUsername(ctx, username, nil); err == nil {
		log.Printf("User %q already exists, nothing to do", username)
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	name := getEnv("SEED_ADMIN_NAME", "Super Admin")

	user, err := userRepo.Create(ctx,
		name,
		utils.NormalizeEmail(email),
		utils.NormalizeUsername(username),
		hash,
		models.RoleSuperAdmin,
		nil,
	)
	if err != nil {
		log.Fatalf("Failed to create super admin: %v", err)
	}

	log.Printf("Created super admin %q (%s)", user.Username, user.ID)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
