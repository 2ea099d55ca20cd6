package authorization

import (
	"context"

	"hospital-service/internal/pkg/constvars"
)

// WithActor stores the authenticated actor on the request context.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_ACTOR_KEY, actor)
}

// ActorFromContext returns nil for anonymous requests.
func ActorFromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(constvars.CONTEXT_ACTOR_KEY).(*Actor)
	return actor
}
