package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // imaging registers no webp decoder; uploads allow it

	"github.com/mahmoudhijazi1/diet-platform/internal/storage"
)

const thumbnailMaxSize = 256

// AvatarProcessor resizes uploaded avatars in the background worker.
type AvatarProcessor struct {
	userStore UserStore
	driver    storage.Driver
}

func NewAvatarProcessor(userStore UserStore, driver storage.Driver) *AvatarProcessor {
	return &AvatarProcessor{
		userStore: userStore,
		driver:    driver,
	}
}

// Process downsizes the original image to a 256px thumbnail, stores it
// next to the original and points the user's avatar URL at it.
func (p *AvatarProcessor) Process(ctx context.Context, job AvatarJob) error {
	reader, err := p.driver.Reader(ctx, job.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to open avatar: %w", err)
	}
	defer reader.Close()

	srcImage, format, err := image.Decode(reader)
	if err != nil {
		return fmt.Errorf("failed to decode avatar: %w", err)
	}

	// Fit preserves aspect ratio; images already small enough come back
	// unchanged.
	thumb := imaging.Fit(srcImage, thumbnailMaxSize, thumbnailMaxSize, imaging.Lanczos)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = imaging.Encode(&buf, thumb, imaging.PNG)
	default:
		err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85))
	}
	if err != nil {
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	thumbPath := thumbnailPath(job.StoragePath, format)

	_, publicURL, err := p.driver.Upload(ctx, &buf, thumbPath)
	if err != nil {
		return fmt.Errorf("failed to store thumbnail: %w", err)
	}

	if err := p.userStore.UpdateAvatarURL(ctx, job.UserID, publicURL); err != nil {
		return fmt.Errorf("failed to update avatar url: %w", err)
	}

	return nil
}

func thumbnailPath(originalPath, format string) string {
	ext := ".jpg"
	if format == "png" {
		ext = ".png"
	}
	dir := filepath.Dir(originalPath)
	return strings.TrimSuffix(dir, "/") + "/thumb" + ext
}
