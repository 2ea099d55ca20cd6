package contracts

import (
	"context"

	"hospital-service/internal/app/services/core/authorization"
)

type Authorizer interface {
	Authorize(ctx context.Context, req authorization.Request) authorization.Decision
	ScopeQuery(ctx context.Context, actor *authorization.Actor, profile authorization.Profile, resource authorization.ResourceType) authorization.Predicate
}

// IdentityResolver resolves the Patient or Doctor profile linked to an actor.
// A missing profile is reported through the returned Profile, not as an error.
type IdentityResolver interface {
	ResolveProfile(ctx context.Context, actor *authorization.Actor) (authorization.Profile, error)
	InvalidateProfile(ctx context.Context, userID string, role authorization.Role) error
}
