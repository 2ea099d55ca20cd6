package audit

import (
	"context"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/shared/guard"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
)

type auditLogUsecase struct {
	AuditLogRepository contracts.AuditLogRepository
	Guard              *guard.Guard
}

func NewAuditLogUsecase(auditLogRepository contracts.AuditLogRepository, accessGuard *guard.Guard) contracts.AuditLogUsecase {
	return &auditLogUsecase{
		AuditLogRepository: auditLogRepository,
		Guard:              accessGuard,
	}
}

func (uc *auditLogUsecase) FindAll(ctx context.Context, filter *requests.AuditLogFilter, pagination *requests.Pagination) ([]models.AuditLog, int64, error) {
	caller, err := uc.Guard.Resolve(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.Guard.Check(ctx, caller, authorization.ActionList, authorization.ResourceAuditLog, nil, constvars.ResourceAuditLogs); err != nil {
		return nil, 0, err
	}
	return uc.AuditLogRepository.FindAll(ctx, filter, pagination)
}
