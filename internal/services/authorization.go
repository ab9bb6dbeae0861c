package services

import (
	"context"

	"eventregistration/internal/domain"
)

// Authorizer decides registration access. Every check needs the occurrence-level permission
// and the administrative capability; either one missing denies.
type Authorizer struct {
	occurrences domain.OccurrencePermissions
	permissions domain.PermissionChecker
}

func NewAuthorizer(occurrences domain.OccurrencePermissions, permissions domain.PermissionChecker) *Authorizer {
	return &Authorizer{occurrences: occurrences, permissions: permissions}
}

func (a *Authorizer) CanView(ctx context.Context, p *domain.Principal, occ *domain.EventOccurrence) bool {
	return a.can(ctx, p, occ, domain.ActionView)
}

func (a *Authorizer) CanEdit(ctx context.Context, p *domain.Principal, occ *domain.EventOccurrence) bool {
	return a.can(ctx, p, occ, domain.ActionEdit)
}

func (a *Authorizer) CanDelete(ctx context.Context, p *domain.Principal, occ *domain.EventOccurrence) bool {
	return a.can(ctx, p, occ, domain.ActionDelete)
}

func (a *Authorizer) CanCreate(ctx context.Context, p *domain.Principal, occ *domain.EventOccurrence) bool {
	return a.can(ctx, p, occ, domain.ActionCreate)
}

func (a *Authorizer) can(ctx context.Context, p *domain.Principal, occ *domain.EventOccurrence, action domain.Action) bool {
	if p == nil || occ == nil {
		return false
	}
	return a.occurrences.Can(ctx, p, occ, action) &&
		a.permissions.HasCapability(ctx, p, domain.CapabilityManageRegistrations)
}
