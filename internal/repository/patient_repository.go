package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
)

const patientProfileColumns = `id, user_id, date_of_birth, gender, height, weight, initial_weight, goal_weight,
		COALESCE(activity_level, ''), COALESCE(medical_conditions, ''), COALESCE(dietary_preferences, ''),
		created_at, updated_at`

type PatientRepository struct {
	pool *pgxpool.Pool
}

func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

func scanPatientProfile(row interface{ Scan(dest ...any) error }, p *models.PatientProfile) error {
	return row.Scan(
		&p.ID,
		&p.UserID,
		&p.DateOfBirth,
		&p.Gender,
		&p.Height,
		&p.Weight,
		&p.InitialWeight,
		&p.GoalWeight,
		&p.ActivityLevel,
		&p.MedicalConditions,
		&p.DietaryPreferences,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// CreateWithUser inserts the user account and its patient profile inside a
// single transaction so a failed profile insert never leaves an orphan account.
func (r *PatientRepository) CreateWithUser(ctx context.Context, name, email, username, passwordHash string, tenantID *uuid.UUID, dateOfBirth time.Time, profile models.CreatePatientProfileRequest) (*models.Patient, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	patient := &models.Patient{}

	userQuery := `
		INSERT INTO users (name, email, username, password_hash, role, tenant_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	err = scanUser(tx.QueryRow(ctx, userQuery, name, email, username, passwordHash, models.RolePatient, tenantID), &patient.User)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", mapError(err))
	}

	profileQuery := `
		INSERT INTO patient_profiles (user_id, date_of_birth, gender, height, weight, initial_weight,
			goal_weight, activity_level, medical_conditions, dietary_preferences)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + patientProfileColumns

	err = scanPatientProfile(tx.QueryRow(ctx, profileQuery,
		patient.User.ID,
		dateOfBirth,
		profile.Gender,
		profile.Height,
		profile.Weight,
		profile.InitialWeight,
		profile.GoalWeight,
		nullable(profile.ActivityLevel),
		nullable(profile.MedicalConditions),
		nullable(profile.DietaryPreferences),
	), &patient.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient profile: %w", mapError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return patient, nil
}

// GetByUserID retrieves the profile attached to a user.
func (r *PatientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.PatientProfile, error) {
	profile := &models.PatientProfile{}

	query := `
		SELECT ` + patientProfileColumns + `
		FROM patient_profiles
		WHERE user_id = $1
	`

	err := scanPatientProfile(r.pool.QueryRow(ctx, query, userID), profile)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient profile: %w", mapError(err))
	}

	return profile, nil
}

// ListByTenant returns every patient of a tenant together with its profile.
func (r *PatientRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Patient, error) {
	query := `
		SELECT u.id, u.name, u.email, u.username, u.password_hash, u.role, u.tenant_id, COALESCE(u.avatar_url, ''),
			u.created_at, u.updated_at,
			p.id, p.user_id, p.date_of_birth, p.gender, p.height, p.weight, p.initial_weight, p.goal_weight,
			COALESCE(p.activity_level, ''), COALESCE(p.medical_conditions, ''), COALESCE(p.dietary_preferences, ''),
			p.created_at, p.updated_at
		FROM users u
		JOIN patient_profiles p ON p.user_id = u.id
		WHERE u.tenant_id = $1 AND u.role = $2
		ORDER BY u.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, tenantID, models.RolePatient)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var patients []models.Patient
	for rows.Next() {
		var pt models.Patient
		if err := rows.Scan(
			&pt.User.ID,
			&pt.User.Name,
			&pt.User.Email,
			&pt.User.Username,
			&pt.User.PasswordHash,
			&pt.User.Role,
			&pt.User.TenantID,
			&pt.User.AvatarURL,
			&pt.User.CreatedAt,
			&pt.User.UpdatedAt,
			&pt.Profile.ID,
			&pt.Profile.UserID,
			&pt.Profile.DateOfBirth,
			&pt.Profile.Gender,
			&pt.Profile.Height,
			&pt.Profile.Weight,
			&pt.Profile.InitialWeight,
			&pt.Profile.GoalWeight,
			&pt.Profile.ActivityLevel,
			&pt.Profile.MedicalConditions,
			&pt.Profile.DietaryPreferences,
			&pt.Profile.CreatedAt,
			&pt.Profile.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, pt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patients: %w", err)
	}

	if patients == nil {
		return []models.Patient{}, nil
	}

	return patients, nil
}

// UpdateByUserID merges the provided fields into the existing profile row.
func (r *PatientRepository) UpdateByUserID(ctx context.Context, userID uuid.UUID, dateOfBirth *time.Time, patch models.UpdatePatientProfileRequest) (*models.PatientProfile, error) {
	profile := &models.PatientProfile{}

	query := `
		UPDATE patient_profiles
		SET date_of_birth = COALESCE($2, date_of_birth),
		    gender = COALESCE($3, gender),
		    height = COALESCE($4, height),
		    weight = COALESCE($5, weight),
		    initial_weight = COALESCE($6, initial_weight),
		    goal_weight = COALESCE($7, goal_weight),
		    activity_level = COALESCE($8, activity_level),
		    medical_conditions = COALESCE($9, medical_conditions),
		    dietary_preferences = COALESCE($10, dietary_preferences),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + patientProfileColumns

	err := scanPatientProfile(r.pool.QueryRow(ctx, query,
		userID,
		dateOfBirth,
		patch.Gender,
		patch.Height,
		patch.Weight,
		patch.InitialWeight,
		patch.GoalWeight,
		patch.ActivityLevel,
		patch.MedicalConditions,
		patch.DietaryPreferences,
	), profile)

	if err != nil {
		return nil, fmt.Errorf("failed to update patient profile: %w", mapError(err))
	}

	return profile, nil
}
