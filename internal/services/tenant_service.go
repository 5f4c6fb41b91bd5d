package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/repository"
)

type TenantService struct {
	tenantStore TenantStore
	cache       TenantInvalidator
}

func NewTenantService(tenantStore TenantStore, cache TenantInvalidator) *TenantService {
	return &TenantService{tenantStore: tenantStore, cache: cache}
}

// Create registers a new clinic. Status and subscription default to
// ACTIVE / FREE when omitted.
func (s *TenantService) Create(ctx context.Context, req models.CreateTenantRequest) (*models.Tenant, error) {
	status := req.Status
	if status == "" {
		status = models.TenantStatusActive
	}
	subscription := req.SubscriptionType
	if subscription == "" {
		subscription = models.SubscriptionFree
	}

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	if !subscription.Valid() {
		return nil, fmt.Errorf("%w: unknown subscription type %q", ErrValidation, subscription)
	}

	return s.tenantStore.Create(ctx, req.Name, status, subscription)
}

func (s *TenantService) List(ctx context.Context) ([]models.Tenant, error) {
	return s.tenantStore.List(ctx)
}

func (s *TenantService) Get(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.tenantStore.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tenant, nil
}

// Update applies a partial patch; unspecified fields are untouched.
func (s *TenantService) Update(ctx context.Context, tenantID uuid.UUID, patch models.UpdateTenantRequest) (*models.Tenant, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *patch.Status)
	}
	if patch.SubscriptionType != nil && !patch.SubscriptionType.Valid() {
		return nil, fmt.Errorf("%w: unknown subscription type %q", ErrValidation, *patch.SubscriptionType)
	}

	tenant, err := s.tenantStore.Update(ctx, tenantID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, tenantID)
	return tenant, nil
}

// Delete removes the tenant record. Its users are kept (the FK clears
// their tenant reference instead of cascading).
func (s *TenantService) Delete(ctx context.Context, tenantID uuid.UUID) error {
	if err := s.tenantStore.Delete(ctx, tenantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.invalidate(ctx, tenantID)
	return nil
}

func (s *TenantService) invalidate(ctx context.Context, tenantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTenant(ctx, tenantID); err != nil {
		log.Printf("Failed to invalidate tenant cache: %v", err)
	}
}
