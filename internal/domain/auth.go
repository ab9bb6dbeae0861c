package domain

import (
	"context"
	"time"
)

// CapabilityManageRegistrations is the administrative capability required, in addition to
// occurrence-level permission, for every registration authorization check.
const CapabilityManageRegistrations = "registrations:manage"

// Principal is the acting user of an authenticated request.
type Principal struct {
	ID    string
	Email string
	Roles []string
}

// Action is an operation checked against an event occurrence.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionCreate Action = "create"
)

// TokenIssuer produces unguessable, URL-safe capability tokens for registration links.
type TokenIssuer interface {
	Issue() (string, error)
}

// AccessTokenIssuer issues bearer tokens (JWT) for an authenticated principal.
type AccessTokenIssuer interface {
	Issue(p Principal, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}

// PermissionChecker answers whether a principal holds a global capability.
type PermissionChecker interface {
	HasCapability(ctx context.Context, p *Principal, capability string) bool
}

// OccurrencePermissions answers whether a principal may perform action on an occurrence.
type OccurrencePermissions interface {
	Can(ctx context.Context, p *Principal, occurrence *EventOccurrence, action Action) bool
}
