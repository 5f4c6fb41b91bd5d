// Package authz implements role-based access control across the tenant
// hierarchy. Decisions are made from a fixed policy table keyed by
// (role, action); the role gate and the tenant gate are independent and
// both must pass.
package authz

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
)

// Action identifies an operation subject to authorization.
type Action string

const (
	ActionTenantManage     Action = "tenant:manage"
	ActionDietitianManage  Action = "dietitian:manage"
	ActionDietitianProfile Action = "dietitian:profile"
	ActionPatientManage    Action = "patient:manage"
	ActionPatientProfile   Action = "patient:profile"
)

// ErrForbidden is the only error the authorizer returns. It deliberately
// carries no detail about which gate failed.
var ErrForbidden = errors.New("forbidden")

// Caller is the authenticated identity performing a request.
type Caller struct {
	UserID   uuid.UUID
	Role     models.UserRole
	TenantID *uuid.UUID
}

// Authorizer decides whether a caller may perform an action on a resource
// belonging to resourceTenantID. A nil resourceTenantID means the action
// is not tenant-scoped (or the scope is the caller's own tenant).
type Authorizer interface {
	Check(caller Caller, action Action, resourceTenantID *uuid.UUID) error
}

// policy lists the roles permitted for each action.
var policy = map[Action][]models.UserRole{
	ActionTenantManage:     {models.RoleSuperAdmin},
	ActionDietitianManage:  {models.RoleSuperAdmin, models.RoleAdmin},
	ActionDietitianProfile: {models.RoleDietitian},
	ActionPatientManage:    {models.RoleDietitian},
	ActionPatientProfile:   {models.RolePatient},
}

type tableAuthorizer struct{}

// New returns the policy-table authorizer.
func New() Authorizer {
	return tableAuthorizer{}
}

func (tableAuthorizer) Check(caller Caller, action Action, resourceTenantID *uuid.UUID) error {
	// Role gate
	allowed := false
	for _, role := range policy[action] {
		if caller.Role == role {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrForbidden
	}

	// SUPER_ADMIN bypasses tenant scoping entirely.
	if caller.Role == models.RoleSuperAdmin {
		return nil
	}

	// Tenant gate: when the target resource is tenant-scoped, the caller
	// must belong to a tenant and it must be the same one.
	if resourceTenantID != nil {
		if caller.TenantID == nil || *caller.TenantID != *resourceTenantID {
			return ErrForbidden
		}
	}

	return nil
}
