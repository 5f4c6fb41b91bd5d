package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudhijazi1/diet-platform/internal/repository"
	"github.com/mahmoudhijazi1/diet-platform/internal/storage"
)

var allowedAvatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// AvatarJob is the queue payload handed to the resize worker.
type AvatarJob struct {
	UserID      uuid.UUID `json:"user_id"`
	StoragePath string    `json:"storage_path"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
}

type AvatarService struct {
	userStore UserStore
	driver    storage.Driver
	queue     AvatarQueue
}

func NewAvatarService(userStore UserStore, driver storage.Driver, queue AvatarQueue) *AvatarService {
	return &AvatarService{
		userStore: userStore,
		driver:    driver,
		queue:     queue,
	}
}

// Upload stores the original image, records its URL on the user and hands
// a resize job to the worker. A queue failure is logged but does not fail
// the upload; the original simply stays unresized.
func (s *AvatarService) Upload(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedAvatarExtensions[ext] {
		return "", fmt.Errorf("%w: unsupported file type %q", ErrValidation, ext)
	}

	path := fmt.Sprintf("avatars/%s/original%s", userID, ext)

	storagePath, publicURL, err := s.driver.Upload(ctx, file, path)
	if err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}

	if err := s.userStore.UpdateAvatarURL(ctx, userID, publicURL); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	job := AvatarJob{
		UserID:      userID,
		StoragePath: storagePath,
		EnqueuedAt:  time.Now(),
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("failed to serialize avatar job: %w", err)
	}

	if err := s.queue.EnqueueAvatarJob(ctx, payload); err != nil {
		log.Printf("Failed to enqueue avatar job for user %s: %v", userID, err)
	}

	return publicURL, nil
}
