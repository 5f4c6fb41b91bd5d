// Package services holds the application logic between handlers and
// repositories. Services accept the small store interfaces declared here,
// satisfied by the pgx repositories in production and by hand mocks in tests.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("invalid input")
)

type UserStore interface {
	Create(ctx context.Context, name, email, username, passwordHash string, role models.UserRole, tenantID *uuid.UUID) (*models.User, error)
	GetByID(ctx context.Context, userID uuid.UUID, tenantID *uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string, tenantID *uuid.UUID) (*models.User, error)
	ListByTenantAndRole(ctx context.Context, tenantID uuid.UUID, role models.UserRole) ([]models.User, error)
	Delete(ctx context.Context, userID uuid.UUID, tenantID *uuid.UUID) error
	UpdateAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) error
}

type TenantStore interface {
	Create(ctx context.Context, name string, status models.TenantStatus, subscription models.SubscriptionType) (*models.Tenant, error)
	List(ctx context.Context) ([]models.Tenant, error)
	GetByID(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, tenantID uuid.UUID, patch models.UpdateTenantRequest) (*models.Tenant, error)
	Delete(ctx context.Context, tenantID uuid.UUID) error
}

type DietitianStore interface {
	CreateWithUser(ctx context.Context, name, email, username, passwordHash string, tenantID *uuid.UUID, profile models.CreateDietitianProfileRequest) (*models.Dietitian, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.DietitianProfile, error)
	UpdateByUserID(ctx context.Context, userID uuid.UUID, patch models.UpdateDietitianProfileRequest) (*models.DietitianProfile, error)
}

type PatientStore interface {
	CreateWithUser(ctx context.Context, name, email, username, passwordHash string, tenantID *uuid.UUID, dateOfBirth time.Time, profile models.CreatePatientProfileRequest) (*models.Patient, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.PatientProfile, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Patient, error)
	UpdateByUserID(ctx context.Context, userID uuid.UUID, dateOfBirth *time.Time, patch models.UpdatePatientProfileRequest) (*models.PatientProfile, error)
}

// TenantInvalidator drops cached tenant state after mutations.
type TenantInvalidator interface {
	InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error
}

// AvatarQueue hands resize jobs to the background worker.
type AvatarQueue interface {
	EnqueueAvatarJob(ctx context.Context, payload []byte) error
}
