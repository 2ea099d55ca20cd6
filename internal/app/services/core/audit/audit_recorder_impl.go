package audit

import (
	"context"
	"sync"
	"time"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/metrics"
	"hospital-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type auditRecorder struct {
	AuditLogRepository contracts.AuditLogRepository
	WriteTimeout       time.Duration
	Log                *zap.Logger
	wg                 sync.WaitGroup
	mu                 sync.Mutex
	draining           bool
}

func NewAuditRecorder(auditLogRepository contracts.AuditLogRepository, writeTimeout time.Duration, logger *zap.Logger) contracts.AuditRecorder {
	return &auditRecorder{
		AuditLogRepository: auditLogRepository,
		WriteTimeout:       writeTimeout,
		Log:                logger,
	}
}

// Record captures the actor and request metadata from ctx and writes the entry in
// the background. The write outlives the request: it is detached from ctx
// cancellation and bounded by WriteTimeout instead.
func (r *auditRecorder) Record(ctx context.Context, action authorization.Action, resource authorization.ResourceType, resourceID string, details map[string]any) {
	entry := &models.AuditLog{
		Action:       string(action),
		ResourceType: string(resource),
		ResourceID:   resourceID,
		Details:      details,
		RequestID:    utils.GetRequestID(ctx),
		IPAddress:    utils.GetClientIP(ctx),
		UserAgent:    utils.GetUserAgent(ctx),
		Timestamp:    time.Now().UTC(),
	}
	if actor := authorization.ActorFromContext(ctx); actor != nil {
		entry.ActorID = actor.ID
		entry.ActorRole = actor.Role.String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draining {
		metrics.AuditWriteFailures.Inc()
		r.Log.Warn("auditRecorder.Record dropped audit log after drain started",
			zap.String(constvars.LoggingRequestIDKey, entry.RequestID),
			zap.String(constvars.LoggingActionKey, entry.Action),
			zap.String(constvars.LoggingResourceTypeKey, entry.ResourceType),
			zap.String(constvars.LoggingResourceIDKey, entry.ResourceID),
		)
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.WriteTimeout)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		r.write(writeCtx, entry)
	}()
}

func (r *auditRecorder) write(ctx context.Context, entry *models.AuditLog) {
	_, err := r.AuditLogRepository.CreateAuditLog(ctx, entry)
	if err != nil {
		metrics.AuditWriteFailures.Inc()
		r.Log.Error("auditRecorder.Record failed to write audit log",
			zap.String(constvars.LoggingRequestIDKey, entry.RequestID),
			zap.String(constvars.LoggingActorIDKey, entry.ActorID),
			zap.String(constvars.LoggingActionKey, entry.Action),
			zap.String(constvars.LoggingResourceTypeKey, entry.ResourceType),
			zap.String(constvars.LoggingResourceIDKey, entry.ResourceID),
			zap.Error(err),
		)
		return
	}
	r.Log.Debug("auditRecorder.Record wrote audit log",
		zap.String(constvars.LoggingRequestIDKey, entry.RequestID),
		zap.String(constvars.LoggingResourceTypeKey, entry.ResourceType),
		zap.String(constvars.LoggingResourceIDKey, entry.ResourceID),
	)
}

// Drain waits for in-flight writes or until ctx is done. Entries recorded
// after Drain is called are dropped.
func (r *auditRecorder) Drain(ctx context.Context) error {
	r.mu.Lock()
	r.draining = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
