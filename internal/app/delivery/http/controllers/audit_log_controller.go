package controllers

import (
	"net/http"

	"hospital-service/internal/app/contracts"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type AuditLogController struct {
	Log             *zap.Logger
	AuditLogUsecase contracts.AuditLogUsecase
}

func NewAuditLogController(logger *zap.Logger, auditLogUsecase contracts.AuditLogUsecase) *AuditLogController {
	return &AuditLogController{
		Log:             logger,
		AuditLogUsecase: auditLogUsecase,
	}
}

func (ctrl *AuditLogController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID, ok := requestIDFrom(ctrl.Log, w, r, "AuditLogController.FindAll")
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := &requests.AuditLogFilter{
		ActorID:      query.Get(constvars.URLQueryParamActorID),
		ResourceType: query.Get(constvars.URLQueryParamResourceType),
		Action:       query.Get(constvars.URLQueryParamAction),
	}
	pagination := utils.BuildPaginationRequest(r)

	ctrl.Log.Info("AuditLogController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter))

	auditLogs, total, err := ctrl.AuditLogUsecase.FindAll(r.Context(), filter, pagination)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AuditLogUsecase.FindAll", err)
		return
	}

	utils.BuildSuccessResponseWithPagination(w, http.StatusOK, constvars.GetAuditLogsSuccessMessage, paginationOf(r, pagination, total), auditLogs)
}
