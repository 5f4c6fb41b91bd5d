package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mahmoudhijazi1/diet-platform/internal/authz"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/repository"
	"github.com/mahmoudhijazi1/diet-platform/internal/utils"
)

type PatientService struct {
	patientStore PatientStore
	userStore    UserStore
	authorizer   authz.Authorizer
}

func NewPatientService(patientStore PatientStore, userStore UserStore, authorizer authz.Authorizer) *PatientService {
	return &PatientService{
		patientStore: patientStore,
		userStore:    userStore,
		authorizer:   authorizer,
	}
}

// Create registers a patient account with its profile. The new user is
// always stamped with the calling dietitian's tenant, whatever the client
// sent in the payload.
func (s *PatientService) Create(ctx context.Context, caller authz.Caller, req models.CreatePatientRequest) (*models.Patient, error) {
	if err := s.authorizer.Check(caller, authz.ActionPatientManage, caller.TenantID); err != nil {
		return nil, err
	}
	if caller.TenantID == nil {
		return nil, authz.ErrForbidden
	}

	dateOfBirth, err := parseDate(req.Profile.DateOfBirth)
	if err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	patient, err := s.patientStore.CreateWithUser(
		ctx,
		req.Name,
		utils.NormalizeEmail(req.Email),
		utils.NormalizeUsername(req.Username),
		passwordHash,
		caller.TenantID,
		dateOfBirth,
		req.Profile,
	)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return patient, nil
}

// List returns the patients of the caller's tenant.
func (s *PatientService) List(ctx context.Context, caller authz.Caller) ([]models.Patient, error) {
	if err := s.authorizer.Check(caller, authz.ActionPatientManage, caller.TenantID); err != nil {
		return nil, err
	}
	if caller.TenantID == nil {
		return nil, authz.ErrForbidden
	}

	return s.patientStore.ListByTenant(ctx, *caller.TenantID)
}

// FindByIdentifier looks up a patient by primary key or unique username.
// Lookups are always scoped to the caller's tenant unless the caller is
// SUPER_ADMIN; a patient from another tenant comes back as not found.
func (s *PatientService) FindByIdentifier(ctx context.Context, caller authz.Caller, idOrUsername string) (*models.Patient, error) {
	if err := s.authorizer.Check(caller, authz.ActionPatientManage, caller.TenantID); err != nil {
		return nil, err
	}

	user, err := s.lookupPatientUser(ctx, caller, idOrUsername)
	if err != nil {
		return nil, err
	}

	profile, err := s.patientStore.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &models.Patient{User: *user, Profile: *profile}, nil
}

// Update merges profile fields of a patient inside the caller's tenant.
func (s *PatientService) Update(ctx context.Context, caller authz.Caller, idOrUsername string, patch models.UpdatePatientProfileRequest) (*models.Patient, error) {
	if err := s.authorizer.Check(caller, authz.ActionPatientManage, caller.TenantID); err != nil {
		return nil, err
	}

	user, err := s.lookupPatientUser(ctx, caller, idOrUsername)
	if err != nil {
		return nil, err
	}

	dateOfBirth, err := parseOptionalDate(patch.DateOfBirth)
	if err != nil {
		return nil, err
	}

	profile, err := s.patientStore.UpdateByUserID(ctx, user.ID, dateOfBirth, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &models.Patient{User: *user, Profile: *profile}, nil
}

// Remove deletes the patient's user account; the profile row follows via
// the cascade relation.
func (s *PatientService) Remove(ctx context.Context, caller authz.Caller, idOrUsername string) error {
	if err := s.authorizer.Check(caller, authz.ActionPatientManage, caller.TenantID); err != nil {
		return err
	}

	user, err := s.lookupPatientUser(ctx, caller, idOrUsername)
	if err != nil {
		return err
	}

	if err := s.userStore.Delete(ctx, user.ID, s.scope(caller)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

// GetOwnProfile returns the caller's own patient profile.
func (s *PatientService) GetOwnProfile(ctx context.Context, caller authz.Caller) (*models.PatientProfile, error) {
	if err := s.authorizer.Check(caller, authz.ActionPatientProfile, nil); err != nil {
		return nil, err
	}

	profile, err := s.patientStore.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return profile, nil
}

// UpdateOwnProfile merges the provided fields into the caller's profile.
func (s *PatientService) UpdateOwnProfile(ctx context.Context, caller authz.Caller, patch models.UpdatePatientProfileRequest) (*models.PatientProfile, error) {
	if err := s.authorizer.Check(caller, authz.ActionPatientProfile, nil); err != nil {
		return nil, err
	}

	dateOfBirth, err := parseOptionalDate(patch.DateOfBirth)
	if err != nil {
		return nil, err
	}

	profile, err := s.patientStore.UpdateByUserID(ctx, caller.UserID, dateOfBirth, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return profile, nil
}

// scope returns the tenant filter for repository calls: none for
// SUPER_ADMIN, the caller's own tenant otherwise.
func (s *PatientService) scope(caller authz.Caller) *uuid.UUID {
	if caller.Role == models.RoleSuperAdmin {
		return nil
	}
	return caller.TenantID
}

func (s *PatientService) lookupPatientUser(ctx context.Context, caller authz.Caller, idOrUsername string) (*models.User, error) {
	var user *models.User
	var err error

	if id, parseErr := uuid.Parse(idOrUsername); parseErr == nil {
		user, err = s.userStore.GetByID(ctx, id, s.scope(caller))
	} else {
		user, err = s.userStore.GetByUsername(ctx, utils.NormalizeUsername(idOrUsername), s.scope(caller))
	}

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// A non-patient account behind the identifier is treated the same as
	// an absent one.
	if user.Role != models.RolePatient {
		return nil, ErrNotFound
	}

	return user, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, value)
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
