package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mahmoudhijazi1/diet-platform/internal/config"
)

// Driver abstracts where uploaded files live (local disk, S3, R2).
type Driver interface {
	// Upload stores a file and returns its storage path and public URL.
	Upload(ctx context.Context, file io.Reader, path string) (storagePath string, publicURL string, err error)

	// Delete removes a file.
	Delete(ctx context.Context, path string) error

	// PublicURL returns the public URL for a stored file.
	PublicURL(path string) string

	// Reader opens a stored file for reading.
	Reader(ctx context.Context, path string) (io.ReadCloser, error)
}

// New creates a storage driver from configuration.
func New(cfg *config.StorageConfig) (Driver, error) {
	switch cfg.Driver {
	case "local", "":
		uploadsPath := cfg.UploadsPath
		if uploadsPath == "" {
			uploadsPath = "./uploads"
		}
		return NewLocal(uploadsPath), nil

	case "s3":
		return NewS3(cfg)

	case "r2":
		return NewR2(cfg)

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// contentType returns the MIME type based on file extension.
func contentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".webp"):
		return "image/webp"
	case strings.HasSuffix(path, ".gif"):
		return "image/gif"
	}
	return "application/octet-stream"
}
