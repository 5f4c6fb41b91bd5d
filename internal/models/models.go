package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleDietitian  UserRole = "DIETITIAN"
	RolePatient    UserRole = "PATIENT"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleDietitian, RolePatient:
		return true
	}
	return false
}

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "ACTIVE"
	TenantStatusInactive  TenantStatus = "INACTIVE"
	TenantStatusSuspended TenantStatus = "SUSPENDED"
)

func (s TenantStatus) Valid() bool {
	switch s {
	case TenantStatusActive, TenantStatusInactive, TenantStatusSuspended:
		return true
	}
	return false
}

type SubscriptionType string

const (
	SubscriptionFree    SubscriptionType = "FREE"
	SubscriptionBasic   SubscriptionType = "BASIC"
	SubscriptionPremium SubscriptionType = "PREMIUM"
)

func (s SubscriptionType) Valid() bool {
	switch s {
	case SubscriptionFree, SubscriptionBasic, SubscriptionPremium:
		return true
	}
	return false
}

type Tenant struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Status           TenantStatus     `json:"status"`
	SubscriptionType SubscriptionType `json:"subscription_type"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	TenantID     *uuid.UUID `json:"tenant_id,omitempty"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DietitianProfile is the role-specific record attached 1:1 to a DIETITIAN user.
// The row is removed by FK cascade when the owning user is deleted.
type DietitianProfile struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Specialization    string    `json:"specialization"`
	YearsOfExperience int       `json:"years_of_experience"`
	Bio               string    `json:"bio,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// PatientProfile is the role-specific record attached 1:1 to a PATIENT user.
type PatientProfile struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	DateOfBirth        time.Time `json:"date_of_birth"`
	Gender             string    `json:"gender"`
	Height             float64   `json:"height"`
	Weight             float64   `json:"weight"`
	InitialWeight      *float64  `json:"initial_weight,omitempty"`
	GoalWeight         *float64  `json:"goal_weight,omitempty"`
	ActivityLevel      string    `json:"activity_level,omitempty"`
	MedicalConditions  string    `json:"medical_conditions,omitempty"`
	DietaryPreferences string    `json:"dietary_preferences,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Dietitian combines the user account with its profile for API responses.
type Dietitian struct {
	User    User             `json:"user"`
	Profile DietitianProfile `json:"profile"`
}

// Patient combines the user account with its profile for API responses.
type Patient struct {
	User    User           `json:"user"`
	Profile PatientProfile `json:"profile"`
}
