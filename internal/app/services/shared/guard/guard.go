// Package guard ties the authorization engine to the identity resolver for the
// usecases: it resolves who is calling, asks for a decision and turns a denial
// into the error returned to the client.
package guard

import (
	"context"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/exceptions"
)

type Guard struct {
	Authorizer       contracts.Authorizer
	IdentityResolver contracts.IdentityResolver
}

func NewGuard(authorizer contracts.Authorizer, identityResolver contracts.IdentityResolver) *Guard {
	return &Guard{
		Authorizer:       authorizer,
		IdentityResolver: identityResolver,
	}
}

// Caller is the actor of the current request together with its resolved profile.
type Caller struct {
	Actor   *authorization.Actor
	Profile authorization.Profile
}

func (c Caller) ActorID() string {
	if c.Actor == nil {
		return ""
	}
	return c.Actor.ID
}

func (c Caller) Is(role authorization.Role) bool {
	return c.Actor != nil && c.Actor.Role == role
}

// Resolve reads the actor from ctx and resolves its profile once per operation.
func (g *Guard) Resolve(ctx context.Context) (Caller, error) {
	actor := authorization.ActorFromContext(ctx)
	profile, err := g.IdentityResolver.ResolveProfile(ctx, actor)
	if err != nil {
		return Caller{}, err
	}
	return Caller{Actor: actor, Profile: profile}, nil
}

// Check returns nil when the caller may act, otherwise the client-facing error.
// resourceName is only used in messages.
func (g *Guard) Check(ctx context.Context, caller Caller, action authorization.Action, resource authorization.ResourceType, target *authorization.Target, resourceName string) error {
	decision := g.Authorizer.Authorize(ctx, authorization.Request{
		Actor:    caller.Actor,
		Profile:  caller.Profile,
		Action:   action,
		Resource: resource,
		Target:   target,
	})
	if !decision.Allowed {
		return exceptions.FromDecision(decision, resourceName)
	}
	return nil
}

func (g *Guard) Scope(ctx context.Context, caller Caller, resource authorization.ResourceType) authorization.Predicate {
	return g.Authorizer.ScopeQuery(ctx, caller.Actor, caller.Profile, resource)
}
