package contracts

import (
	"context"

	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/pkg/dto/requests"
)

// AuditRecorder records a committed mutation. Record returns immediately; the
// write happens in the background and its failure never reaches the caller.
type AuditRecorder interface {
	Record(ctx context.Context, action authorization.Action, resource authorization.ResourceType, resourceID string, details map[string]any)
	Drain(ctx context.Context) error
}

type AuditLogRepository interface {
	CreateAuditLog(ctx context.Context, auditLog *models.AuditLog) (string, error)
	FindAll(ctx context.Context, filter *requests.AuditLogFilter, pagination *requests.Pagination) ([]models.AuditLog, int64, error)
}

type AuditLogUsecase interface {
	FindAll(ctx context.Context, filter *requests.AuditLogFilter, pagination *requests.Pagination) ([]models.AuditLog, int64, error)
}
