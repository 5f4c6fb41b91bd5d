package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mahmoudhijazi1/diet-platform/internal/cache"
	"github.com/mahmoudhijazi1/diet-platform/internal/config"
	"github.com/mahmoudhijazi1/diet-platform/internal/database"
	"github.com/mahmoudhijazi1/diet-platform/internal/repository"
	"github.com/mahmoudhijazi1/diet-platform/internal/services"
	"github.com/mahmoudhijazi1/diet-platform/internal/storage"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())

	pool, err := database.Connect(ctx, &cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize DB pool: %v", err)
	}
	defer pool.Close()

	redisClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize Redis client: %v", err)
	}
	defer redisClient.Close()

	storageDriver, err := storage.New(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage driver: %v", err)
	}

	userRepo := repository.NewUserRepository(pool)
	processor := services.NewAvatarProcessor(userRepo, storageDriver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down worker...")
		cancel()
	}()

	log.Println("Avatar worker started, waiting for jobs")

	for {
		payload, err := redisClient.DequeueAvatarJob(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			log.Printf("Failed to dequeue job: %v", err)
			time.Sleep(time.Second)
			continue
		}

		var job services.AvatarJob
		if err := json.Unmarshal(payload, &job); err != nil {
			log.Printf("Failed to decode job payload: %v", err)
			continue
		}

		if err := processor.Process(ctx, job); err != nil {
			log.Printf("Failed to process avatar for user %s: %v", job.UserID, err)
			continue
		}

		log.Printf("Processed avatar for user %s", job.UserID)
	}

	log.Println("Worker exited")
}
