package controllers

import (
	"context"
	"errors"
	"net/http"

	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/dto/responses"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func requestIDFrom(log *zap.Logger, w http.ResponseWriter, r *http.Request, caller string) (string, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		log.Error(caller + " requestID not found in context")
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", false
	}
	return requestID, true
}

func urlParamID(log *zap.Logger, w http.ResponseWriter, r *http.Request, requestID, param string) (string, bool) {
	value := chi.URLParam(r, param)
	if err := utils.ValidateUrlParamID(value); err != nil {
		log.Info("Invalid URL parameter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("param", param),
			zap.Error(err))
		utils.BuildErrorResponse(log, w, exceptions.ErrURLParamIDValidation(err, param))
		return "", false
	}
	return value, true
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, requestID, caller string, err error) {
	log.Error("Error in "+caller,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err))

	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

func paginationOf(r *http.Request, pagination *requests.Pagination, total int64) *responses.Pagination {
	return utils.BuildPaginationResponse(int(total), pagination.Page, pagination.PageSize, r.URL.Path)
}

// bindSanitized decodes the body, trims it with sanitize and only then validates it.
func bindSanitized[T any](r *http.Request, sanitize func(*T)) (*T, error) {
	request := new(T)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	sanitize(request)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	return request, nil
}
