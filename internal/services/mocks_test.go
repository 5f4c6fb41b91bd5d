package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/repository"
)

// In-memory fakes for the store interfaces. They mirror the repository
// semantics the services rely on: unique email/username, tenant-scoped
// lookups that report ErrNotFound for rows outside the scope, and profile
// rows removed together with their user.

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (s *fakeUserStore) add(user *models.User) *models.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = user
	return user
}

func (s *fakeUserStore) Create(_ context.Context, name, email, username, passwordHash string, role models.UserRole, tenantID *uuid.UUID) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email || u.Username == username {
			return nil, repository.ErrDuplicate
		}
	}
	user := s.add(&models.User{
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		TenantID:     tenantID,
	})
	copied := *user
	return &copied, nil
}

func inScope(user *models.User, tenantID *uuid.UUID) bool {
	if tenantID == nil {
		return true
	}
	return user.TenantID != nil && *user.TenantID == *tenantID
}

func (s *fakeUserStore) GetByID(_ context.Context, userID uuid.UUID, tenantID *uuid.UUID) (*models.User, error) {
	user, ok := s.users[userID]
	if !ok || !inScope(user, tenantID) {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string, tenantID *uuid.UUID) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == username && inScope(user, tenantID) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) ListByTenantAndRole(_ context.Context, tenantID uuid.UUID, role models.UserRole) ([]models.User, error) {
	result := []models.User{}
	for _, user := range s.users {
		if user.Role == role && user.TenantID != nil && *user.TenantID == tenantID {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (s *fakeUserStore) Delete(_ context.Context, userID uuid.UUID, tenantID *uuid.UUID) error {
	user, ok := s.users[userID]
	if !ok || !inScope(user, tenantID) {
		return repository.ErrNotFound
	}
	delete(s.users, userID)
	return nil
}

func (s *fakeUserStore) UpdateAvatarURL(_ context.Context, userID uuid.UUID, avatarURL string) error {
	user, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.AvatarURL = avatarURL
	return nil
}

type fakeTenantStore struct {
	tenants map[uuid.UUID]*models.Tenant
}

func newFakeTenantStore() *fakeTenantStore {
	return &fakeTenantStore{tenants: make(map[uuid.UUID]*models.Tenant)}
}

func (s *fakeTenantStore) Create(_ context.Context, name string, status models.TenantStatus, subscription models.SubscriptionType) (*models.Tenant, error) {
	tenant := &models.Tenant{
		ID:               uuid.New(),
		Name:             name,
		Status:           status,
		SubscriptionType: subscription,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	s.tenants[tenant.ID] = tenant
	copied := *tenant
	return &copied, nil
}

func (s *fakeTenantStore) List(_ context.Context) ([]models.Tenant, error) {
	result := []models.Tenant{}
	for _, tenant := range s.tenants {
		result = append(result, *tenant)
	}
	return result, nil
}

func (s *fakeTenantStore) GetByID(_ context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	tenant, ok := s.tenants[tenantID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *tenant
	return &copied, nil
}

func (s *fakeTenantStore) Update(_ context.Context, tenantID uuid.UUID, patch models.UpdateTenantRequest) (*models.Tenant, error) {
	tenant, ok := s.tenants[tenantID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		tenant.Name = *patch.Name
	}
	if patch.Status != nil {
		tenant.Status = *patch.Status
	}
	if patch.SubscriptionType != nil {
		tenant.SubscriptionType = *patch.SubscriptionType
	}
	tenant.UpdatedAt = time.Now()
	copied := *tenant
	return &copied, nil
}

func (s *fakeTenantStore) Delete(_ context.Context, tenantID uuid.UUID) error {
	if _, ok := s.tenants[tenantID]; !ok {
		return repository.ErrNotFound
	}
	delete(s.tenants, tenantID)
	return nil
}

type fakeInvalidator struct {
	invalidated []uuid.UUID
}

func (f *fakeInvalidator) InvalidateTenant(_ context.Context, tenantID uuid.UUID) error {
	f.invalidated = append(f.invalidated, tenantID)
	return nil
}

type fakeDietitianStore struct {
	users    *fakeUserStore
	profiles map[uuid.UUID]*models.DietitianProfile // keyed by user ID
}

func newFakeDietitianStore(users *fakeUserStore) *fakeDietitianStore {
	return &fakeDietitianStore{
		users:    users,
		profiles: make(map[uuid.UUID]*models.DietitianProfile),
	}
}

func (s *fakeDietitianStore) CreateWithUser(ctx context.Context, name, email, username, passwordHash string, tenantID *uuid.UUID, profile models.CreateDietitianProfileRequest) (*models.Dietitian, error) {
	user, err := s.users.Create(ctx, name, email, username, passwordHash, models.RoleDietitian, tenantID)
	if err != nil {
		return nil, err
	}
	p := &models.DietitianProfile{
		ID:                uuid.New(),
		UserID:            user.ID,
		Specialization:    profile.Specialization,
		YearsOfExperience: profile.YearsOfExperience,
		Bio:               profile.Bio,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	s.profiles[user.ID] = p
	return &models.Dietitian{User: *user, Profile: *p}, nil
}

func (s *fakeDietitianStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.DietitianProfile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *fakeDietitianStore) UpdateByUserID(_ context.Context, userID uuid.UUID, patch models.UpdateDietitianProfileRequest) (*models.DietitianProfile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Specialization != nil {
		p.Specialization = *patch.Specialization
	}
	if patch.YearsOfExperience != nil {
		p.YearsOfExperience = *patch.YearsOfExperience
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	p.UpdatedAt = time.Now()
	copied := *p
	return &copied, nil
}

type fakePatientStore struct {
	users    *fakeUserStore
	profiles map[uuid.UUID]*models.PatientProfile // keyed by user ID
}

func newFakePatientStore(users *fakeUserStore) *fakePatientStore {
	return &fakePatientStore{
		users:    users,
		profiles: make(map[uuid.UUID]*models.PatientProfile),
	}
}

func (s *fakePatientStore) CreateWithUser(ctx context.Context, name, email, username, passwordHash string, tenantID *uuid.UUID, dateOfBirth time.Time, profile models.CreatePatientProfileRequest) (*models.Patient, error) {
	user, err := s.users.Create(ctx, name, email, username, passwordHash, models.RolePatient, tenantID)
	if err != nil {
		return nil, err
	}
	p := &models.PatientProfile{
		ID:                 uuid.New(),
		UserID:             user.ID,
		DateOfBirth:        dateOfBirth,
		Gender:             profile.Gender,
		Height:             profile.Height,
		Weight:             profile.Weight,
		InitialWeight:      profile.InitialWeight,
		GoalWeight:         profile.GoalWeight,
		ActivityLevel:      profile.ActivityLevel,
		MedicalConditions:  profile.MedicalConditions,
		DietaryPreferences: profile.DietaryPreferences,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	s.profiles[user.ID] = p
	return &models.Patient{User: *user, Profile: *p}, nil
}

func (s *fakePatientStore) GetByUserID(_ context.Context, userID uuid.UUID) (*models.PatientProfile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *fakePatientStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Patient, error) {
	users, err := s.users.ListByTenantAndRole(ctx, tenantID, models.RolePatient)
	if err != nil {
		return nil, err
	}
	result := []models.Patient{}
	for _, user := range users {
		p, ok := s.profiles[user.ID]
		if !ok {
			continue
		}
		result = append(result, models.Patient{User: user, Profile: *p})
	}
	return result, nil
}

func (s *fakePatientStore) UpdateByUserID(_ context.Context, userID uuid.UUID, dateOfBirth *time.Time, patch models.UpdatePatientProfileRequest) (*models.PatientProfile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if dateOfBirth != nil {
		p.DateOfBirth = *dateOfBirth
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.Height != nil {
		p.Height = *patch.Height
	}
	if patch.Weight != nil {
		p.Weight = *patch.Weight
	}
	if patch.InitialWeight != nil {
		p.InitialWeight = patch.InitialWeight
	}
	if patch.GoalWeight != nil {
		p.GoalWeight = patch.GoalWeight
	}
	if patch.ActivityLevel != nil {
		p.ActivityLevel = *patch.ActivityLevel
	}
	if patch.MedicalConditions != nil {
		p.MedicalConditions = *patch.MedicalConditions
	}
	if patch.DietaryPreferences != nil {
		p.DietaryPreferences = *patch.DietaryPreferences
	}
	p.UpdatedAt = time.Now()
	copied := *p
	return &copied, nil
}
