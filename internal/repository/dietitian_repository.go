package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
)

type DietitianRepository struct {
	pool *pgxpool.Pool
}

func NewDietitianRepository(pool *pgxpool.Pool) *DietitianRepository {
	return &DietitianRepository{pool: pool}
}

// CreateWithUser inserts the user account and its dietitian profile inside a
// single transaction so a failed profile insert never leaves an orphan account.
func (r *DietitianRepository) CreateWithUser(ctx context.Context, name, email, username, passwordHash string, tenantID *uuid.UUID, profile models.CreateDietitianProfileRequest) (*models.Dietitian, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	dietitian := &models.Dietitian{}

	userQuery := `
		INSERT INTO users (name, email, username, password_hash, role, tenant_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	err = scanUser(tx.QueryRow(ctx, userQuery, name, email, username, passwordHash, models.RoleDietitian, tenantID), &dietitian.User)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", mapError(err))
	}

	profileQuery := `
		INSERT INTO dietitian_profiles (user_id, specialization, years_of_experience, bio)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, specialization, years_of_experience, COALESCE(bio, ''), created_at, updated_at
	`

	err = tx.QueryRow(ctx, profileQuery, dietitian.User.ID, profile.Specialization, profile.YearsOfExperience, nullable(profile.Bio)).Scan(
		&dietitian.Profile.ID,
		&dietitian.Profile.UserID,
		&dietitian.Profile.Specialization,
		&dietitian.Profile.YearsOfExperience,
		&dietitian.Profile.Bio,
		&dietitian.Profile.CreatedAt,
		&dietitian.Profile.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dietitian profile: %w", mapError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return dietitian, nil
}

// GetByUserID retrieves the profile attached to a user.
func (r *DietitianRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.DietitianProfile, error) {
	profile := &models.DietitianProfile{}

	query := `
		SELECT id, user_id, specialization, years_of_experience, COALESCE(bio, ''), created_at, updated_at
		FROM dietitian_profiles
		WHERE user_id = $1
	`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Specialization,
		&profile.YearsOfExperience,
		&profile.Bio,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get dietitian profile: %w", mapError(err))
	}

	return profile, nil
}

// UpdateByUserID merges the provided fields into the existing profile row.
func (r *DietitianRepository) UpdateByUserID(ctx context.Context, userID uuid.UUID, patch models.UpdateDietitianProfileRequest) (*models.DietitianProfile, error) {
	profile := &models.DietitianProfile{}

	query := `
		UPDATE dietitian_profiles
		SET specialization = COALESCE($2, specialization),
		    years_of_experience = COALESCE($3, years_of_experience),
		    bio = COALESCE($4, bio),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING id, user_id, specialization, years_of_experience, COALESCE(bio, ''), created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, userID, patch.Specialization, patch.YearsOfExperience, patch.Bio).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Specialization,
		&profile.YearsOfExperience,
		&profile.Bio,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to update dietitian profile: %w", mapError(err))
	}

	return profile, nil
}

// nullable maps an empty string to NULL so optional text columns stay NULL
// instead of holding empty strings.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
