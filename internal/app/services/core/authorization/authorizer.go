package authorization

import (
	"context"

	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Engine exposes the pure decision functions behind an interface so callers can
// be handed the observed variant.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

func (Engine) Authorize(_ context.Context, req Request) Decision {
	return Authorize(req)
}

func (Engine) ScopeQuery(_ context.Context, actor *Actor, profile Profile, resource ResourceType) Predicate {
	return ScopeQuery(actor, profile, resource)
}

type authorizer interface {
	Authorize(ctx context.Context, req Request) Decision
	ScopeQuery(ctx context.Context, actor *Actor, profile Profile, resource ResourceType) Predicate
}

// ObservedEngine counts every decision and logs denials. It never changes the
// outcome of the wrapped engine.
type ObservedEngine struct {
	inner authorizer
	Log   *zap.Logger
}

func NewObservedEngine(inner authorizer, logger *zap.Logger) *ObservedEngine {
	return &ObservedEngine{inner: inner, Log: logger}
}

func (e *ObservedEngine) Authorize(ctx context.Context, req Request) Decision {
	decision := e.inner.Authorize(ctx, req)
	metrics.AuthorizationDecisions.WithLabelValues(string(req.Resource), string(req.Action), decision.Outcome()).Inc()

	if !decision.Allowed {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		fields := []zap.Field{
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, string(req.Resource)),
			zap.String(constvars.LoggingActionKey, string(req.Action)),
			zap.String(constvars.LoggingReasonKey, string(decision.Reason)),
		}
		if req.Actor != nil {
			fields = append(fields,
				zap.String(constvars.LoggingActorIDKey, req.Actor.ID),
				zap.String(constvars.LoggingActorRoleKey, string(req.Actor.Role)),
			)
		}
		e.Log.Info("authorization denied", append(fields, zap.String("detail", decision.Detail))...)
	}
	return decision
}

func (e *ObservedEngine) ScopeQuery(ctx context.Context, actor *Actor, profile Profile, resource ResourceType) Predicate {
	return e.inner.ScopeQuery(ctx, actor, profile, resource)
}
