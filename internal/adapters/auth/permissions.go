package auth

import (
	"context"
	"slices"

	"eventregistration/internal/domain"
)

// Role codes carried in access token claims.
const (
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
)

// roleCapabilities maps a role to the global capabilities it grants.
var roleCapabilities = map[string][]string{
	RoleAdmin:     {domain.CapabilityManageRegistrations},
	RoleOrganizer: {domain.CapabilityManageRegistrations},
}

type rolePermissionChecker struct{}

// NewRolePermissionChecker returns a PermissionChecker that resolves capabilities from the principal's roles.
func NewRolePermissionChecker() domain.PermissionChecker {
	return rolePermissionChecker{}
}

func (rolePermissionChecker) HasCapability(_ context.Context, p *domain.Principal, capability string) bool {
	if p == nil {
		return false
	}
	for _, role := range p.Roles {
		if slices.Contains(roleCapabilities[role], capability) {
			return true
		}
	}
	return false
}

type ownerOccurrencePermissions struct{}

// NewOwnerOccurrencePermissions grants view on any occurrence to any principal, and
// edit/delete/create to the event owner or an admin.
func NewOwnerOccurrencePermissions() domain.OccurrencePermissions {
	return ownerOccurrencePermissions{}
}

func (ownerOccurrencePermissions) Can(_ context.Context, p *domain.Principal, occ *domain.EventOccurrence, action domain.Action) bool {
	if p == nil || occ == nil {
		return false
	}
	if action == domain.ActionView {
		return true
	}
	if slices.Contains(p.Roles, RoleAdmin) {
		return true
	}
	return occ.Event != nil && occ.Event.OwnerID == p.ID
}
