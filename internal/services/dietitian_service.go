package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mahmoudhijazi1/diet-platform/internal/authz"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/repository"
	"github.com/mahmoudhijazi1/diet-platform/internal/utils"
)

type DietitianService struct {
	dietitianStore DietitianStore
	userStore      UserStore
	tenantStore    TenantStore
	authorizer     authz.Authorizer
}

func NewDietitianService(dietitianStore DietitianStore, userStore UserStore, tenantStore TenantStore, authorizer authz.Authorizer) *DietitianService {
	return &DietitianService{
		dietitianStore: dietitianStore,
		userStore:      userStore,
		tenantStore:    tenantStore,
		authorizer:     authorizer,
	}
}

// CreateForTenant creates a dietitian account with its profile inside the
// given tenant. SUPER_ADMIN may target any tenant; ADMIN only its own.
func (s *DietitianService) CreateForTenant(ctx context.Context, caller authz.Caller, tenantID uuid.UUID, req models.CreateDietitianRequest) (*models.Dietitian, error) {
	if err := s.authorizer.Check(caller, authz.ActionDietitianManage, &tenantID); err != nil {
		return nil, err
	}

	// The tenant must exist before hanging users off it.
	if _, err := s.tenantStore.GetByID(ctx, tenantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	dietitian, err := s.dietitianStore.CreateWithUser(
		ctx,
		req.Name,
		utils.NormalizeEmail(req.Email),
		utils.NormalizeUsername(req.Username),
		passwordHash,
		&tenantID,
		req.Profile,
	)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return dietitian, nil
}

// ListForTenant lists the dietitian accounts of a tenant.
func (s *DietitianService) ListForTenant(ctx context.Context, caller authz.Caller, tenantID uuid.UUID) ([]models.User, error) {
	if err := s.authorizer.Check(caller, authz.ActionDietitianManage, &tenantID); err != nil {
		return nil, err
	}

	return s.userStore.ListByTenantAndRole(ctx, tenantID, models.RoleDietitian)
}

// RemoveFromTenant deletes a dietitian account; the profile row follows
// via the cascade relation. A non-dietitian account behind the id is
// treated the same as an absent one, so the grant cannot reach other roles.
func (s *DietitianService) RemoveFromTenant(ctx context.Context, caller authz.Caller, tenantID, userID uuid.UUID) error {
	if err := s.authorizer.Check(caller, authz.ActionDietitianManage, &tenantID); err != nil {
		return err
	}

	user, err := s.userStore.GetByID(ctx, userID, &tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if user.Role != models.RoleDietitian {
		return ErrNotFound
	}

	if err := s.userStore.Delete(ctx, user.ID, &tenantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

// GetOwnProfile returns the caller's dietitian profile.
func (s *DietitianService) GetOwnProfile(ctx context.Context, caller authz.Caller) (*models.DietitianProfile, error) {
	if err := s.authorizer.Check(caller, authz.ActionDietitianProfile, nil); err != nil {
		return nil, err
	}

	profile, err := s.dietitianStore.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return profile, nil
}

// UpdateOwnProfile merges the provided fields into the caller's profile.
func (s *DietitianService) UpdateOwnProfile(ctx context.Context, caller authz.Caller, patch models.UpdateDietitianProfileRequest) (*models.DietitianProfile, error) {
	if err := s.authorizer.Check(caller, authz.ActionDietitianProfile, nil); err != nil {
		return nil, err
	}

	profile, err := s.dietitianStore.UpdateByUserID(ctx, caller.UserID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return profile, nil
}
