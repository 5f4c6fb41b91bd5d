package models

// DTOs for API requests/responses

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type CreateTenantRequest struct {
	Name             string           `json:"name" binding:"required"`
	Status           TenantStatus     `json:"status,omitempty"`
	SubscriptionType SubscriptionType `json:"subscription_type,omitempty"`
}

// UpdateTenantRequest is a partial patch: nil fields are left untouched.
type UpdateTenantRequest struct {
	Name             *string           `json:"name,omitempty"`
	Status           *TenantStatus     `json:"status,omitempty"`
	SubscriptionType *SubscriptionType `json:"subscription_type,omitempty"`
}

type CreateDietitianProfileRequest struct {
	Specialization    string `json:"specialization" binding:"required"`
	YearsOfExperience int    `json:"years_of_experience" binding:"min=0"`
	Bio               string `json:"bio,omitempty"`
}

type CreateDietitianRequest struct {
	Name     string                        `json:"name" binding:"required"`
	Email    string                        `json:"email" binding:"required,email"`
	Username string                        `json:"username" binding:"required"`
	Password string                        `json:"password" binding:"required,min=8"`
	Profile  CreateDietitianProfileRequest `json:"profile" binding:"required"`
}

type UpdateDietitianProfileRequest struct {
	Specialization    *string `json:"specialization,omitempty"`
	YearsOfExperience *int    `json:"years_of_experience,omitempty"`
	Bio               *string `json:"bio,omitempty"`
}

type CreatePatientProfileRequest struct {
	DateOfBirth        string   `json:"date_of_birth" binding:"required"`
	Gender             string   `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
	Height             float64  `json:"height" binding:"required,gt=0"`
	Weight             float64  `json:"weight" binding:"required,gt=0"`
	InitialWeight      *float64 `json:"initial_weight,omitempty"`
	GoalWeight         *float64 `json:"goal_weight,omitempty"`
	ActivityLevel      string   `json:"activity_level,omitempty"`
	MedicalConditions  string   `json:"medical_conditions,omitempty"`
	DietaryPreferences string   `json:"dietary_preferences,omitempty"`
}

type CreatePatientRequest struct {
	Name     string                      `json:"name" binding:"required"`
	Email    string                      `json:"email" binding:"required,email"`
	Username string                      `json:"username" binding:"required"`
	Password string                      `json:"password" binding:"required,min=8"`
	Profile  CreatePatientProfileRequest `json:"profile" binding:"required"`
}

type UpdatePatientProfileRequest struct {
	DateOfBirth        *string  `json:"date_of_birth,omitempty"`
	Gender             *string  `json:"gender,omitempty" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	Height             *float64 `json:"height,omitempty"`
	Weight             *float64 `json:"weight,omitempty"`
	InitialWeight      *float64 `json:"initial_weight,omitempty"`
	GoalWeight         *float64 `json:"goal_weight,omitempty"`
	ActivityLevel      *string  `json:"activity_level,omitempty"`
	MedicalConditions  *string  `json:"medical_conditions,omitempty"`
	DietaryPreferences *string  `json:"dietary_preferences,omitempty"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
