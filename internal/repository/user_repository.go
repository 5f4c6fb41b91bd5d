package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
)

const userColumns = `id, name, email, username, password_hash, role, tenant_id, COALESCE(avatar_url, ''), created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row interface{ Scan(dest ...any) error }, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.TenantID,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

// Create inserts a standalone user (no profile). Used for SUPER_ADMIN and
// ADMIN accounts; dietitians and patients go through the profile
// repositories so the two inserts share a transaction.
func (r *UserRepository) Create(ctx context.Context, name, email, username, passwordHash string, role models.UserRole, tenantID *uuid.UUID) (*models.User, error) {
	user := &models.User{}

	query := `
		INSERT INTO users (name, email, username, password_hash, role, tenant_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	err := scanUser(r.pool.QueryRow(ctx, query, name, email, username, passwordHash, role, tenantID), user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", mapError(err))
	}

	return user, nil
}

// GetByID retrieves a user by ID. When tenantID is non-nil the lookup is
// additionally scoped to that tenant; a user from another tenant comes back
// as ErrNotFound so existence never leaks across tenants.
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID, tenantID *uuid.UUID) (*models.User, error) {
	user := &models.User{}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND ($2::uuid IS NULL OR tenant_id = $2)
	`

	err := scanUser(r.pool.QueryRow(ctx, query, userID, tenantID), user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", mapError(err))
	}

	return user, nil
}

// GetByUsername retrieves a user by unique username, optionally tenant-scoped.
func (r *UserRepository) GetByUsername(ctx context.Context, username string, tenantID *uuid.UUID) (*models.User, error) {
	user := &models.User{}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 AND ($2::uuid IS NULL OR tenant_id = $2)
	`

	err := scanUser(r.pool.QueryRow(ctx, query, username, tenantID), user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", mapError(err))
	}

	return user, nil
}

// ListByTenantAndRole lists users of a role inside one tenant.
func (r *UserRepository) ListByTenantAndRole(ctx context.Context, tenantID uuid.UUID, role models.UserRole) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE tenant_id = $1 AND role = $2
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, tenantID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	if users == nil {
		return []models.User{}, nil
	}

	return users, nil
}

// Delete removes a user. The profile row, if any, goes with it via the
// ON DELETE CASCADE foreign key.
func (r *UserRepository) Delete(ctx context.Context, userID uuid.UUID, tenantID *uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1 AND ($2::uuid IS NULL OR tenant_id = $2)`

	result, err := r.pool.Exec(ctx, query, userID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateAvatarURL records the storage URL of a user's avatar.
func (r *UserRepository) UpdateAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	query := `UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, userID, avatarURL)
	if err != nil {
		return fmt.Errorf("failed to update avatar url: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
