package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mahmoudhijazi1/diet-platform/internal/models"
)

func TestCheck(t *testing.T) {
	tenantA := uuid.New()
	tenantB := uuid.New()

	authorizer := New()

	tests := []struct {
		name             string
		caller           Caller
		action           Action
		resourceTenantID *uuid.UUID
		wantErr          error
	}{
		{
			name:    "super admin manages tenants",
			caller:  Caller{UserID: uuid.New(), Role: models.RoleSuperAdmin},
			action:  ActionTenantManage,
			wantErr: nil,
		},
		{
			name:    "admin cannot manage tenants",
			caller:  Caller{UserID: uuid.New(), Role: models.RoleAdmin, TenantID: &tenantA},
			action:  ActionTenantManage,
			wantErr: ErrForbidden,
		},
		{
			name:             "super admin targets any tenant",
			caller:           Caller{UserID: uuid.New(), Role: models.RoleSuperAdmin},
			action:           ActionDietitianManage,
			resourceTenantID: &tenantB,
			wantErr:          nil,
		},
		{
			name:             "admin manages dietitians of own tenant",
			caller:           Caller{UserID: uuid.New(), Role: models.RoleAdmin, TenantID: &tenantA},
			action:           ActionDietitianManage,
			resourceTenantID: &tenantA,
			wantErr:          nil,
		},
		{
			name:             "admin denied for another tenant",
			caller:           Caller{UserID: uuid.New(), Role: models.RoleAdmin, TenantID: &tenantA},
			action:           ActionDietitianManage,
			resourceTenantID: &tenantB,
			wantErr:          ErrForbidden,
		},
		{
			name:             "admin without tenant denied for scoped resource",
			caller:           Caller{UserID: uuid.New(), Role: models.RoleAdmin},
			action:           ActionDietitianManage,
			resourceTenantID: &tenantA,
			wantErr:          ErrForbidden,
		},
		{
			name:             "dietitian manages patients of own tenant",
			caller:           Caller{UserID: uuid.New(), Role: models.RoleDietitian, TenantID: &tenantA},
			action:           ActionPatientManage,
			resourceTenantID: &tenantA,
			wantErr:          nil,
		},
		{
			name:             "dietitian denied for patients of another tenant",
			caller:           Caller{UserID: uuid.New(), Role: models.RoleDietitian, TenantID: &tenantA},
			action:           ActionPatientManage,
			resourceTenantID: &tenantB,
			wantErr:          ErrForbidden,
		},
		{
			name:    "patient cannot manage patients",
			caller:  Caller{UserID: uuid.New(), Role: models.RolePatient, TenantID: &tenantA},
			action:  ActionPatientManage,
			wantErr: ErrForbidden,
		},
		{
			name:    "patient reads own profile",
			caller:  Caller{UserID: uuid.New(), Role: models.RolePatient, TenantID: &tenantA},
			action:  ActionPatientProfile,
			wantErr: nil,
		},
		{
			name:    "dietitian reads own profile",
			caller:  Caller{UserID: uuid.New(), Role: models.RoleDietitian, TenantID: &tenantA},
			action:  ActionDietitianProfile,
			wantErr: nil,
		},
		{
			name:    "admin cannot use dietitian self-service",
			caller:  Caller{UserID: uuid.New(), Role: models.RoleAdmin, TenantID: &tenantA},
			action:  ActionDietitianProfile,
			wantErr: ErrForbidden,
		},
		{
			name:    "unknown action denies everyone",
			caller:  Caller{UserID: uuid.New(), Role: models.RoleSuperAdmin},
			action:  Action("nonsense"),
			wantErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorizer.Check(tt.caller, tt.action, tt.resourceTenantID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
