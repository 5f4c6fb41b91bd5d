package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
)

type TenantRepository struct {
	pool *pgxpool.Pool
}

func NewTenantRepository(pool *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{pool: pool}
}

// Create inserts a new tenant
func (r *TenantRepository) Create(ctx context.Context, name string, status models.TenantStatus, subscription models.SubscriptionType) (*models.Tenant, error) {
	tenant := &models.Tenant{}

	query := `
		INSERT INTO tenants (name, status, subscription_type)
		VALUES ($1, $2, $3)
		RETURNING id, name, status, subscription_type, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, name, status, subscription).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Status,
		&tenant.SubscriptionType,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", mapError(err))
	}

	return tenant, nil
}

// List returns all tenants ordered by creation time
func (r *TenantRepository) List(ctx context.Context) ([]models.Tenant, error) {
	query := `
		SELECT id, name, status, subscription_type, created_at, updated_at
		FROM tenants
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		var tenant models.Tenant
		if err := rows.Scan(
			&tenant.ID,
			&tenant.Name,
			&tenant.Status,
			&tenant.SubscriptionType,
			&tenant.CreatedAt,
			&tenant.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, tenant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenants: %w", err)
	}

	if tenants == nil {
		return []models.Tenant{}, nil
	}

	return tenants, nil
}

// GetByID retrieves a tenant by ID
func (r *TenantRepository) GetByID(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	tenant := &models.Tenant{}

	query := `
		SELECT id, name, status, subscription_type, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`

	err := r.pool.QueryRow(ctx, query, tenantID).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Status,
		&tenant.SubscriptionType,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", mapError(err))
	}

	return tenant, nil
}

// Update applies a partial patch. Nil fields keep their current value.
func (r *TenantRepository) Update(ctx context.Context, tenantID uuid.UUID, patch models.UpdateTenantRequest) (*models.Tenant, error) {
	tenant := &models.Tenant{}

	query := `
		UPDATE tenants
		SET name = COALESCE($2, name),
		    status = COALESCE($3, status),
		    subscription_type = COALESCE($4, subscription_type),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, status, subscription_type, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, tenantID, patch.Name, patch.Status, patch.SubscriptionType).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Status,
		&tenant.SubscriptionType,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", mapError(err))
	}

	return tenant, nil
}

// Delete removes a tenant. Users keep their rows: the FK on users.tenant_id
// is ON DELETE SET NULL, not a cascade.
func (r *TenantRepository) Delete(ctx context.Context, tenantID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
